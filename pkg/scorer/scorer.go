// Package scorer rates password strength with a fixed battery of heuristic
// checks and combines them into a total score and a strength tier.
package scorer

import "strings"

// Default scoring configuration constants.
const (
	DefaultMinLength = 8
	DefaultMaxLength = 128
	MaxDisplayScore  = 100
)

// Per-check score ceilings.
const (
	maxLengthScore     = 25
	maxCategoriesScore = 25
	commonPassScore    = 15
	sequencePassScore  = 15
	repeatedCharScore  = 5
	dictionaryScore    = 10
	blacklistScore     = 10
	maxEntropyScore    = 25
	minCategories      = 3
	categoryWeight     = 6.25
	entropyScaleBits   = 100.0
)

// Config is the immutable configuration shared by every evaluation of a Scorer.
type Config struct {
	MinLength int
	MaxLength int
	Blacklist map[string]struct{}
	Corpus    Corpus
}

// Option applies a configuration option to a Scorer.
type Option func(*Config)

// WithLengthBounds sets the accepted password length range.
// Invalid ranges are ignored.
func WithLengthBounds(minLength, maxLength int) Option {
	return func(c *Config) {
		if minLength >= 0 && maxLength > 0 && maxLength >= minLength {
			c.MinLength = minLength
			c.MaxLength = maxLength
		}
	}
}

// WithBlacklist sets the exact-match deny-list. The set is copied.
func WithBlacklist(set map[string]struct{}) Option {
	return func(c *Config) {
		c.Blacklist = make(map[string]struct{}, len(set))
		for pw := range set {
			c.Blacklist[pw] = struct{}{}
		}
	}
}

// WithCorpus replaces the built-in reference lists.
func WithCorpus(corpus Corpus) Option {
	return func(c *Config) {
		c.Corpus = corpus.clone()
	}
}

// Scorer evaluates passwords. It holds no mutable state and is safe for
// concurrent use.
type Scorer struct {
	cfg Config

	// lookup tables derived from cfg.Corpus
	common    map[string]struct{}
	words     []term
	sequences []term
	keyboard  []string
}

// term is a corpus entry lowercased for matching, with its configured
// spelling kept for messages.
type term struct {
	match   string
	display string
}

func newTerms(in []string) []term {
	out := make([]term, 0, len(in))
	for _, s := range in {
		out = append(out, term{match: strings.ToLower(s), display: s})
	}
	return out
}

// New creates a Scorer with defaults overridden by opts.
func New(opts ...Option) *Scorer {
	cfg := Config{
		MinLength: DefaultMinLength,
		MaxLength: DefaultMaxLength,
		Blacklist: map[string]struct{}{},
		Corpus:    DefaultCorpus(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Scorer{
		cfg:       cfg,
		common:    make(map[string]struct{}, len(cfg.Corpus.CommonPasswords)),
		words:     newTerms(cfg.Corpus.DictionaryWords),
		sequences: newTerms(cfg.Corpus.Sequences),
		keyboard:  lowerAll(cfg.Corpus.KeyboardRows),
	}
	for _, pw := range cfg.Corpus.CommonPasswords {
		s.common[strings.ToLower(pw)] = struct{}{}
	}
	return s
}

// Config returns a copy of the scorer configuration.
func (s *Scorer) Config() Config {
	cfg := s.cfg
	cfg.Corpus = s.cfg.Corpus.clone()
	cfg.Blacklist = make(map[string]struct{}, len(s.cfg.Blacklist))
	for pw := range s.cfg.Blacklist {
		cfg.Blacklist[pw] = struct{}{}
	}
	return cfg
}

// Evaluate runs every check against password and returns the combined report.
// It never fails; an empty password simply scores low.
func (s *Scorer) Evaluate(password string) Report {
	classes := classify(password)

	r := Report{
		Length:         s.checkLength(password),
		Categories:     checkCategories(classes),
		CommonPassword: s.checkCommonPassword(password),
		Sequences:      s.checkSequences(password),
		Dictionary:     s.checkDictionary(password),
		Blacklist:      s.checkBlacklist(password),
		Entropy:        entropy(password, classes),
		Classes:        classes,
		PasswordLength: runeLen(password),
	}

	for _, c := range r.Checks() {
		r.TotalScore += c.Result.Score
	}
	r.Strength = Classify(r.TotalScore)
	return r
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(s))
	}
	return out
}
