package main

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

var _ = Describe("Dimension report", func() {
	dims := []types.Dim{
		{Width: 200, Height: 400},
		{Width: 200, Height: 400},
		{Width: 200, Height: 400},
	}

	It("should summarize pages, pairs and cards", func() {
		var out bytes.Buffer
		report(&out, dims, false)

		Expect(out.String()).To(ContainSubstring("Page 3:"))
		Expect(out.String()).To(ContainSubstring("Cell size: 100.000 x 100.000 points"))
		Expect(out.String()).To(ContainSubstring("Page pairs: 1"))
		Expect(out.String()).To(ContainSubstring("Cards: 8"))
		Expect(out.String()).To(ContainSubstring("Warning: page 3 has no answer page"))
		Expect(out.String()).NotTo(ContainSubstring("Card 001"))
	})

	It("should list mirrored cells when asked", func() {
		var out bytes.Buffer
		report(&out, dims[:2], true)

		Expect(strings.Count(out.String(), "Card 0")).To(Equal(8))
		Expect(out.String()).To(ContainSubstring(
			"Card 001: Q page 1 (col 0, row 0) [0.0 0.0 100.0 100.0] | A page 2 (col 1, row 0) [100.0 0.0 200.0 100.0]"))
		Expect(out.String()).NotTo(ContainSubstring("Warning"))
	})
})
