// Package seed owns the current generation seed of a host application.
//
// The seed is plain state held by whoever runs the render loop. Generation
// functions receive it by value and never change it; only the explicit
// triggers on [State] ([State.Reseed] and [State.Set]) replace it.
package seed

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// Default is the seed every host starts with.
const Default uint64 = 42

// MaxRandom bounds freshly drawn seeds to [0, MaxRandom) so they stay short
// enough to read in snapshot file names.
const MaxRandom uint64 = 100000

// State holds the current seed. It is not safe for concurrent writers; hosts
// mutate it from a single event loop.
type State struct {
	current uint64
	entropy io.Reader
}

// New returns a State starting at initial and drawing new seeds from
// crypto/rand.
func New(initial uint64) *State {
	return &State{current: initial, entropy: rand.Reader}
}

// NewWithEntropy is like New but draws new seeds from r.
func NewWithEntropy(initial uint64, r io.Reader) *State {
	return &State{current: initial, entropy: r}
}

// Current returns the active seed.
func (s *State) Current() uint64 { return s.current }

// Set replaces the active seed with v.
func (s *State) Set(v uint64) { s.current = v }

// Reseed replaces the active seed with a value drawn from the entropy
// source. The new seed has no relationship to the previous one. On error the
// current seed is left unchanged.
func (s *State) Reseed() (uint64, error) {
	v, err := draw(s.entropy)
	if err != nil {
		return s.current, err
	}
	s.current = v
	return v, nil
}

// Random draws a single seed from crypto/rand.
func Random() (uint64, error) {
	return draw(rand.Reader)
}

func draw(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("read entropy: %w", err)
	}
	return binary.LittleEndian.Uint64(buf[:]) % MaxRandom, nil
}

// SnapshotName returns the file name for a snapshot of the frame rendered
// with seed, e.g. "mondrian_seed_42.png".
func SnapshotName(prefix string, seed uint64, ext string) string {
	return fmt.Sprintf("%s_seed_%d.%s", prefix, seed, ext)
}
