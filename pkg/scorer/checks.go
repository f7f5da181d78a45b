package scorer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

func runeLen(s string) int { return utf8.RuneCountInString(s) }

func (s *Scorer) checkLength(password string) CheckResult {
	n := runeLen(password)
	switch {
	case n < s.cfg.MinLength:
		return CheckResult{Message: fmt.Sprintf("Password is too short (minimum %d characters)", s.cfg.MinLength)}
	case n > s.cfg.MaxLength:
		return CheckResult{Message: fmt.Sprintf("Password is too long (maximum %d characters)", s.cfg.MaxLength)}
	}

	score := int(float64(n) / float64(s.cfg.MaxLength) * maxLengthScore)
	if score > maxLengthScore {
		score = maxLengthScore
	}
	return CheckResult{
		Passed:  true,
		Message: fmt.Sprintf("Password length (%d) is adequate", n),
		Score:   score,
	}
}

// classify detects ASCII lowercase and uppercase letters and Unicode decimal
// digits; every other rune counts as special.
func classify(password string) Classes {
	var c Classes
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			c.Lower = true
		case r >= 'A' && r <= 'Z':
			c.Upper = true
		case unicode.IsDigit(r):
			c.Digit = true
		default:
			c.Special = true
		}
	}
	return c
}

func checkCategories(c Classes) CheckResult {
	n := c.Count()
	if n < minCategories {
		return CheckResult{
			Message: fmt.Sprintf("Password uses only %d character categories (need at least %d)", n, minCategories),
		}
	}

	var found []string
	if c.Lower {
		found = append(found, "lowercase letters")
	}
	if c.Upper {
		found = append(found, "uppercase letters")
	}
	if c.Digit {
		found = append(found, "numbers")
	}
	if c.Special {
		found = append(found, "special characters")
	}
	return CheckResult{
		Passed:  true,
		Message: fmt.Sprintf("Password uses %d categories: %s", n, strings.Join(found, ", ")),
		Score:   int(float64(n) * categoryWeight),
	}
}

func (s *Scorer) checkCommonPassword(password string) CheckResult {
	if _, ok := s.common[strings.ToLower(password)]; ok {
		return CheckResult{Message: "Password is in the list of common passwords"}
	}
	return CheckResult{Passed: true, Message: "Password is not in the common passwords list", Score: commonPassScore}
}

// checkSequences looks for listed sequences, then keyboard-row trigrams, then
// runs of a repeated character. The first hit decides the result.
func (s *Scorer) checkSequences(password string) CheckResult {
	lower := strings.ToLower(password)

	for _, seq := range s.sequences {
		if seq.match != "" && strings.Contains(lower, seq.match) {
			return CheckResult{Message: fmt.Sprintf("Password contains a common sequence: '%s'", seq.display)}
		}
	}

	if tri, ok := keyboardTrigram(lower, s.keyboard); ok {
		return CheckResult{Message: fmt.Sprintf("Password contains a keyboard sequence: '%s'", tri)}
	}

	if hasRepeatedRun(password, 3) {
		return CheckResult{Message: "Password contains repeated characters (3 or more)", Score: repeatedCharScore}
	}
	return CheckResult{Passed: true, Message: "Password doesn't contain obvious sequences", Score: sequencePassScore}
}

// keyboardTrigram scans rows in order, left to right, and returns the first
// three-key window found in lower.
func keyboardTrigram(lower string, rows []string) (string, bool) {
	for _, row := range rows {
		keys := []rune(row)
		for i := 0; i+3 <= len(keys); i++ {
			tri := string(keys[i : i+3])
			if strings.Contains(lower, tri) {
				return tri, true
			}
		}
	}
	return "", false
}

// hasRepeatedRun reports whether any rune other than a newline occurs at
// least n times in a row.
func hasRepeatedRun(password string, n int) bool {
	var prev rune
	run := 0
	for _, r := range password {
		if r == '\n' {
			run = 0
			continue
		}
		if run > 0 && r == prev {
			run++
		} else {
			run = 1
		}
		prev = r
		if run >= n {
			return true
		}
	}
	return false
}

func (s *Scorer) checkDictionary(password string) CheckResult {
	lower := strings.ToLower(password)
	for _, word := range s.words {
		if runeLen(word.match) > 3 && strings.Contains(lower, word.match) {
			return CheckResult{Message: fmt.Sprintf("Password contains a common dictionary word: '%s'", word.display)}
		}
	}
	return CheckResult{Passed: true, Message: "Password doesn't contain obvious dictionary words", Score: dictionaryScore}
}

func (s *Scorer) checkBlacklist(password string) CheckResult {
	if _, ok := s.cfg.Blacklist[password]; ok {
		return CheckResult{Message: "Password is blacklisted"}
	}
	return CheckResult{Passed: true, Message: "Password is not blacklisted", Score: blacklistScore}
}
