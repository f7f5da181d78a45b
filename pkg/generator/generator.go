// Package generator produces random passwords from a cryptographically
// secure source.
package generator

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// Character alphabets.
const (
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits    = "0123456789"
	Special   = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// Default length bounds, matching the scorer's defaults.
const (
	DefaultMinLength = 8
	DefaultMaxLength = 128
)

// ValidationError reports generation parameters that cannot be honoured.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Options selects the optional character categories. Lowercase letters are
// always included.
type Options struct {
	Uppercase bool `json:"uppercase"`
	Digits    bool `json:"digits"`
	Special   bool `json:"special"`
}

// AllCategories enables every optional category.
var AllCategories = Options{Uppercase: true, Digits: true, Special: true}

func (o Options) any() bool { return o.Uppercase || o.Digits || o.Special }

// alphabets returns the enabled alphabets, lowercase first.
func (o Options) alphabets() []string {
	out := []string{Lowercase}
	if o.Uppercase {
		out = append(out, Uppercase)
	}
	if o.Digits {
		out = append(out, Digits)
	}
	if o.Special {
		out = append(out, Special)
	}
	return out
}

// Option applies a configuration option to a Generator.
type Option func(*Generator)

// WithMinLength sets the shortest length Generate accepts.
func WithMinLength(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.minLength = n
		}
	}
}

// WithMaxLength sets the longest length Generate accepts.
func WithMaxLength(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxLength = n
		}
	}
}

// WithRandom replaces the random source. It must be cryptographically secure
// outside of tests.
func WithRandom(r io.Reader) Option {
	return func(g *Generator) {
		if r != nil {
			g.rand = r
		}
	}
}

// Generator creates passwords. It is safe for concurrent use as long as its
// random source is.
type Generator struct {
	minLength int
	maxLength int
	rand      io.Reader
}

// New creates a Generator backed by crypto/rand.
func New(opts ...Option) *Generator {
	g := &Generator{
		minLength: DefaultMinLength,
		maxLength: DefaultMaxLength,
		rand:      rand.Reader,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a password of the given length containing at least one
// character from every enabled category.
func (g *Generator) Generate(length int, opts Options) (string, error) {
	if length < g.minLength {
		return "", &ValidationError{Field: "length", Reason: fmt.Sprintf("password length should be at least %d", g.minLength)}
	}
	if length > g.maxLength {
		return "", &ValidationError{Field: "length", Reason: fmt.Sprintf("password length should be at most %d", g.maxLength)}
	}
	if !opts.any() {
		return "", &ValidationError{Field: "categories", Reason: "at least one additional character category must be selected"}
	}

	alphabets := opts.alphabets()
	pool := ""
	for _, a := range alphabets {
		pool += a
	}

	out := make([]byte, 0, length)
	for _, a := range alphabets {
		c, err := g.pick(a)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	for len(out) < length {
		c, err := g.pick(pool)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	if err := g.shuffle(out); err != nil {
		return "", err
	}
	return string(out), nil
}

func (g *Generator) pick(alphabet string) (byte, error) {
	i, err := g.intn(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[i], nil
}

// shuffle is a Fisher-Yates shuffle driven by the secure source.
func (g *Generator) shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := g.intn(i + 1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}

func (g *Generator) intn(n int) (int, error) {
	v, err := rand.Int(g.rand, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("read random source: %w", err)
	}
	return int(v.Int64()), nil
}
