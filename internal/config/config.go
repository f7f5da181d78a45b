// Package config resolves pwcheck settings from flags, environment variables
// and the YAML config file through viper.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"github.com/sw33tLie/pwcheck/pkg/history"
	"github.com/sw33tLie/pwcheck/pkg/scorer"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Viper keys.
const (
	KeyMinLength         = "min_length"
	KeyMaxLength         = "max_length"
	KeyBlacklistPath     = "blacklist.path"
	KeyBlacklistURL      = "blacklist.url"
	KeyBlacklistJSONPath = "blacklist.json_path"
	KeyCommonPasswords   = "corpus.common_passwords"
	KeyDictionaryWords   = "corpus.dictionary_words"
	KeySequences         = "corpus.sequences"
	KeyHistoryDB         = "history.db"
	KeyHistorySize       = "history.size"
	KeyServerListen      = "server.listen"
	KeyServerUsername    = "server.username"
	KeyServerPassword    = "server.password"
	KeyProxy             = "proxy"
)

type Blacklist struct {
	Path     string
	URL      string
	JSONPath string
}

type Server struct {
	Listen   string
	Username string
	Password string
}

// Config contains the resolved process configuration.
type Config struct {
	MinLength int
	MaxLength int

	Blacklist Blacklist
	// Corpus extends the built-in reference lists.
	Corpus scorer.Corpus

	HistoryDB   string
	HistorySize int

	Server Server
	Proxy  string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyMinLength, scorer.DefaultMinLength)
	v.SetDefault(KeyMaxLength, scorer.DefaultMaxLength)
	v.SetDefault(KeyBlacklistPath, "")
	v.SetDefault(KeyBlacklistURL, "")
	v.SetDefault(KeyBlacklistJSONPath, "")
	v.SetDefault(KeyCommonPasswords, []string{})
	v.SetDefault(KeyDictionaryWords, []string{})
	v.SetDefault(KeySequences, []string{})
	v.SetDefault(KeyHistoryDB, "")
	v.SetDefault(KeyHistorySize, history.DefaultCapacity)
	v.SetDefault(KeyServerListen, ":8080")
	v.SetDefault(KeyServerUsername, "")
	v.SetDefault(KeyServerPassword, "")
	v.SetDefault(KeyProxy, "")
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		MinLength: v.GetInt(KeyMinLength),
		MaxLength: v.GetInt(KeyMaxLength),
		Blacklist: Blacklist{
			Path:     v.GetString(KeyBlacklistPath),
			URL:      v.GetString(KeyBlacklistURL),
			JSONPath: v.GetString(KeyBlacklistJSONPath),
		},
		Corpus: scorer.Corpus{
			CommonPasswords: v.GetStringSlice(KeyCommonPasswords),
			DictionaryWords: v.GetStringSlice(KeyDictionaryWords),
			Sequences:       v.GetStringSlice(KeySequences),
		},
		HistoryDB:   v.GetString(KeyHistoryDB),
		HistorySize: v.GetInt(KeyHistorySize),
		Server: Server{
			Listen:   v.GetString(KeyServerListen),
			Username: v.GetString(KeyServerUsername),
			Password: v.GetString(KeyServerPassword),
		},
		Proxy: v.GetString(KeyProxy),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the length bounds and sizes.
func (c Config) Validate() error {
	if c.MinLength < 1 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, KeyMinLength, c.MinLength)
	}
	if c.MaxLength < c.MinLength {
		return fmt.Errorf("%w: %s (%d) is below %s (%d)", ErrInvalidConfig, KeyMaxLength, c.MaxLength, KeyMinLength, c.MinLength)
	}
	if c.HistorySize < 1 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, KeyHistorySize, c.HistorySize)
	}
	return nil
}

// ScorerOptions translates the configuration into scorer options. The
// blacklist is loaded separately since it may involve I/O.
func (c Config) ScorerOptions(blacklist map[string]struct{}) []scorer.Option {
	return []scorer.Option{
		scorer.WithLengthBounds(c.MinLength, c.MaxLength),
		scorer.WithCorpus(scorer.DefaultCorpus().Extend(c.Corpus)),
		scorer.WithBlacklist(blacklist),
	}
}
