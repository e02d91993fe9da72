// internal/models/possibility.go
package models

import (
	"math/bits"
	"strings"
)

// Possibility records, for one card, which player indices could still own it.
// It is a bitset sized to the current player count; bit i is player index i.
type Possibility struct {
	words []uint64
	size  int
}

// NewPossibility returns a possibility with every one of size players still live.
func NewPossibility(size int) *Possibility {
	p := &Possibility{}
	for i := 0; i < size; i++ {
		p.Extend(true)
	}
	return p
}

// Len is the number of player slots tracked.
func (p *Possibility) Len() int {
	return p.size
}

func (p *Possibility) Has(i int) bool {
	if i < 0 || i >= p.size {
		return false
	}
	return p.words[i/64]&(1<<(uint(i)%64)) != 0
}

// Remove clears bit i and reports whether it was set.
func (p *Possibility) Remove(i int) bool {
	if !p.Has(i) {
		return false
	}
	p.words[i/64] &^= 1 << (uint(i) % 64)
	return true
}

func (p *Possibility) Count() int {
	n := 0
	for _, w := range p.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Single returns the only live index when exactly one remains.
func (p *Possibility) Single() (int, bool) {
	if p.Count() != 1 {
		return -1, false
	}
	for wi, w := range p.words {
		if w != 0 {
			return wi*64 + bits.TrailingZeros64(w), true
		}
	}
	return -1, false
}

// Collapse leaves only bit i set. Callers must check Has(i) first: collapsing onto a
// cleared bit would revive a dead hypothesis.
func (p *Possibility) Collapse(i int) {
	for wi := range p.words {
		p.words[wi] = 0
	}
	if i >= 0 && i < p.size {
		p.words[i/64] = 1 << (uint(i) % 64)
	}
}

// Extend appends a slot for a newly added player.
func (p *Possibility) Extend(possible bool) {
	if p.size%64 == 0 {
		p.words = append(p.words, 0)
	}
	if possible {
		p.words[p.size/64] |= 1 << (uint(p.size) % 64)
	}
	p.size++
}

// Indices returns the live player indices in ascending order.
func (p *Possibility) Indices() []int {
	out := make([]int, 0, p.Count())
	for wi, w := range p.words {
		for w != 0 {
			out = append(out, wi*64+bits.TrailingZeros64(w))
			w &= w - 1
		}
	}
	return out
}

// Bools returns a copy as one boolean per player index.
func (p *Possibility) Bools() []bool {
	out := make([]bool, p.size)
	for i := range out {
		out[i] = p.Has(i)
	}
	return out
}

func (p *Possibility) String() string {
	var b strings.Builder
	for i := 0; i < p.size; i++ {
		if p.Has(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
