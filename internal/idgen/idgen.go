// Package idgen produces fixed-length numeric account identifiers.
package idgen

import (
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"smartbank/internal/errors"
)

const (
	DefaultLength      = 10
	defaultMaxAttempts = 1000
)

// Generator draws random digit strings until it finds one that is not taken.
// It is safe for concurrent use.
type Generator struct {
	length      int
	maxAttempts int

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

type Option func(*Generator)

// WithSource makes the generator draw from src, which lets tests replay the
// same identifiers.
func WithSource(src rand.Source) Option {
	return func(g *Generator) {
		g.rng = rand.New(src)
	}
}

// WithMaxAttempts bounds the number of draws per call to Next.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

func New(length int, opts ...Option) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	g := &Generator{
		length:      length,
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

func (g *Generator) Length() int {
	return g.length
}

// Next returns an identifier that is not a member of existing.
func (g *Generator) Next(existing map[string]struct{}) (string, error) {
	if g.exhausted(existing) {
		return "", errors.ErrIdentifierSpaceFull
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		id := g.draw()
		if _, taken := existing[id]; !taken {
			return id, nil
		}
	}

	return "", errors.ErrIdentifierSpaceFull.WithDetails("retry budget spent")
}

// draw must be called with g.mu held.
func (g *Generator) draw() string {
	var b strings.Builder
	b.Grow(g.length)
	for i := 0; i < g.length; i++ {
		b.WriteByte(byte('0' + g.rng.IntN(10)))
	}
	return b.String()
}

// exhausted reports whether existing already holds every possible identifier
// of this length. Only identifiers of the generator's own shape count.
func (g *Generator) exhausted(existing map[string]struct{}) bool {
	if g.length >= 19 {
		return false
	}
	space := int(math.Pow10(g.length))
	if len(existing) < space {
		return false
	}

	taken := 0
	for id := range existing {
		if len(id) == g.length && isDigits(id) {
			taken++
		}
	}
	return taken >= space
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
