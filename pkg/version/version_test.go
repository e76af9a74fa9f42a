package version

import (
	"runtime"
	"runtime/debug"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Version", func() {
	stamped := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	It("should prefer injected values", func() {
		info := resolve("1.2.3", "deadbeef", stamped)
		Expect(info.Version).To(Equal("1.2.3"))
		Expect(info.Commit).To(Equal("deadbeef"))
	})

	It("should fall back to the build stamp", func() {
		info := resolve(versionPlaceholder, commitPlaceholder, stamped)
		Expect(info.Version).To(Equal("v1.4.0"))
		Expect(info.Commit).To(Equal("abc123-dirty"))
	})

	It("should report a development build without a stamp", func() {
		info := resolve(versionPlaceholder, commitPlaceholder, &debug.BuildInfo{
			Main: debug.Module{Version: "(devel)"},
		})
		Expect(info.Version).To(Equal("dev"))
		Expect(info.Commit).To(Equal("unknown"))

		info = resolve(versionPlaceholder, commitPlaceholder, nil)
		Expect(info.Version).To(Equal("dev"))
	})

	It("should include the toolchain and platform", func() {
		text := resolve("1.2.3", "deadbeef", nil).String()
		Expect(text).To(HavePrefix("gridcards\n"))
		Expect(text).To(ContainSubstring("Version:  1.2.3"))
		Expect(text).To(ContainSubstring("Go:       " + runtime.Version()))
		Expect(text).To(ContainSubstring("Platform: " + runtime.GOOS + "/" + runtime.GOARCH))
	})
})
