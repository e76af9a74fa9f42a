package anki

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
	"time"
)

// IDs are drawn from [2^30, 2^31), the range Anki add-ons conventionally
// use for deck and note type identifiers.
const (
	MinID int64 = 1 << 30
	MaxID int64 = 1 << 31
)

// IDSource hands out identifiers for the deck and note type of a package.
// Two packages with the same deck ID merge into one deck on import.
type IDSource interface {
	DeckID(deckName string) int64
	NoteTypeID(noteTypeName string) int64
}

// RandomIDs gives every call a fresh identifier, so re-importing a
// regenerated package creates a new deck instead of merging.
type RandomIDs struct {
	rng *rand.Rand
}

func NewRandomIDs() *RandomIDs {
	now := uint64(time.Now().UnixNano())
	return NewSeededRandomIDs(now, rand.Uint64())
}

func NewSeededRandomIDs(seed1, seed2 uint64) *RandomIDs {
	return &RandomIDs{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

func (r *RandomIDs) DeckID(string) int64 {
	return MinID + r.rng.Int64N(MaxID-MinID)
}

func (r *RandomIDs) NoteTypeID(string) int64 {
	return MinID + r.rng.Int64N(MaxID-MinID)
}

// ContentIDs derives identifiers from a seed, normally the hash of the
// source document, so the same input always produces the same package.
type ContentIDs struct {
	Seed string
}

func (c ContentIDs) DeckID(deckName string) int64 {
	return hashID("deck", c.Seed, deckName)
}

func (c ContentIDs) NoteTypeID(noteTypeName string) int64 {
	return hashID("notetype", c.Seed, noteTypeName)
}

func hashID(parts ...string) int64 {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	sum := h.Sum(nil)
	v := binary.BigEndian.Uint64(sum[:8])
	return MinID + int64(v%uint64(MaxID-MinID))
}
