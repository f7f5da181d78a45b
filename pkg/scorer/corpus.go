package scorer

import "strings"

// Corpus holds the reference lists the checks match against.
type Corpus struct {
	CommonPasswords []string
	DictionaryWords []string
	Sequences       []string
	KeyboardRows    []string
}

// DefaultCorpus returns the built-in reference lists.
func DefaultCorpus() Corpus {
	return Corpus{
		CommonPasswords: []string{
			"password", "123456", "12345678", "qwerty", "abc123",
			"letmein", "monkey", "admin", "welcome", "password1",
		},
		DictionaryWords: []string{
			"password", "welcome", "hello", "office", "secret",
			"system", "computer", "internet", "server", "network",
		},
		Sequences: []string{
			"12345", "123456", "1234567", "12345678", "123456789", "1234567890",
			"qwerty", "asdfgh", "zxcvbn", "password", "abcdef",
			"01234", "98765", "9876543210", "fedcba",
		},
		KeyboardRows: []string{"qwertyuiop", "asdfghjkl", "zxcvbn"},
	}
}

// Extend returns a copy of c with the extra entries appended. Entries that
// are blank or already present are skipped.
func (c Corpus) Extend(extra Corpus) Corpus {
	return Corpus{
		CommonPasswords: appendUnique(c.CommonPasswords, extra.CommonPasswords),
		DictionaryWords: appendUnique(c.DictionaryWords, extra.DictionaryWords),
		Sequences:       appendUnique(c.Sequences, extra.Sequences),
		KeyboardRows:    appendUnique(c.KeyboardRows, extra.KeyboardRows),
	}
}

func (c Corpus) clone() Corpus {
	return Corpus{
		CommonPasswords: append([]string(nil), c.CommonPasswords...),
		DictionaryWords: append([]string(nil), c.DictionaryWords...),
		Sequences:       append([]string(nil), c.Sequences...),
		KeyboardRows:    append([]string(nil), c.KeyboardRows...),
	}
}

func appendUnique(base, extra []string) []string {
	out := append([]string(nil), base...)
	seen := make(map[string]struct{}, len(base)+len(extra))
	for _, s := range base {
		seen[s] = struct{}{}
	}
	for _, s := range extra {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
