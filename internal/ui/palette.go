package ui

import (
	"fmt"
	"math"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/gdamore/tcell/v2"
)

// fadeSteps is the number of distinct blend amounts a Palette caches.
const fadeSteps = 255

// Palette memoizes fade blends keyed by source colour, target colour and
// blend amount quantized to 1/fadeSteps.
type Palette struct {
	blends *ristretto.Cache[uint64, tcell.Color]
}

// NewPalette creates an empty blend cache.
func NewPalette() (*Palette, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, tcell.Color]{
		NumCounters: 1 << 16,
		MaxCost:     1 << 12,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create blend cache: %w", err)
	}
	return &Palette{blends: cache}, nil
}

// Blend is like the package Blend with t quantized. A nil Palette blends without caching.
func (p *Palette) Blend(from, to tcell.Color, t float64) tcell.Color {
	step := uint64(math.Round(min(max(t, 0), 1) * fadeSteps))
	if p == nil {
		return Blend(from, to, float64(step)/fadeSteps)
	}

	key := blendKey(from, to, step)
	if c, ok := p.blends.Get(key); ok {
		return c
	}
	c := Blend(from, to, float64(step)/fadeSteps)
	p.blends.Set(key, c, 1)
	return c
}

// Close releases the cache.
func (p *Palette) Close() {
	if p != nil {
		p.blends.Close()
	}
}

// blendKey packs two 24-bit colours and the step into one key.
func blendKey(from, to tcell.Color, step uint64) uint64 {
	return rgb24(from)<<32 | rgb24(to)<<8 | step
}

// rgb24 is the colour's 0xRRGGBB value, black when it has none.
func rgb24(c tcell.Color) uint64 {
	hex := c.Hex()
	if hex < 0 {
		return 0
	}
	return uint64(hex)
}
