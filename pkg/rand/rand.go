package rand

// Credit to https://www.calhoun.io/creating-random-strings-in-go/

import (
	"math/rand"
)

const digits = "0123456789"

// Generator produces random strings and picks. Seed it for repeatable output.
type Generator struct {
	r *rand.Rand
}

func New(seed int64) *Generator {
	return &Generator{r: rand.New(rand.NewSource(seed))}
}

func (g *Generator) StringWithCharset(length int, charset string) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[g.r.Intn(len(charset))]
	}
	return string(b)
}

func (g *Generator) Digits(length int) string {
	return g.StringWithCharset(length, digits)
}

// Pick returns a random element of l, or "" when l is empty
func (g *Generator) Pick(l []string) string {
	if len(l) == 0 {
		return ""
	}
	return l[g.r.Intn(len(l))]
}

// Between returns an int in [lo, hi]
func (g *Generator) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.r.Intn(hi-lo+1)
}
