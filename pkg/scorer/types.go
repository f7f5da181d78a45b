package scorer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Check names, in the order Evaluate runs them.
const (
	CheckLength         = "length"
	CheckCategories     = "categories"
	CheckCommonPassword = "common_password"
	CheckSequences      = "sequences"
	CheckDictionary     = "dictionary"
	CheckBlacklist      = "blacklist"
	CheckEntropy        = "entropy"
)

// CheckResult is the outcome of a single rule.
type CheckResult struct {
	Passed  bool   `json:"pass"`
	Message string `json:"message"`
	Score   int    `json:"score"`
}

// EntropyResult carries the continuous entropy estimate and its scaled score.
type EntropyResult struct {
	Bits  float64 `json:"value"`
	Score int     `json:"score"`
}

// Passed reports whether the scaled entropy contributes any points.
func (e EntropyResult) Passed() bool { return e.Score > 0 }

func (e EntropyResult) Message() string {
	return fmt.Sprintf("Password entropy: %.2f bits", e.Bits)
}

// AsCheck flattens the entropy estimate into the common check shape.
func (e EntropyResult) AsCheck() CheckResult {
	return CheckResult{Passed: e.Passed(), Message: e.Message(), Score: e.Score}
}

func (e EntropyResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Passed  bool    `json:"pass"`
		Bits    float64 `json:"value"`
		Message string  `json:"message"`
		Score   int     `json:"score"`
	}{e.Passed(), e.Bits, e.Message(), e.Score})
}

// Classes records which character categories appear in a password.
type Classes struct {
	Lower   bool `json:"lowercase"`
	Upper   bool `json:"uppercase"`
	Digit   bool `json:"digit"`
	Special bool `json:"special"`
}

// Count returns the number of categories present.
func (c Classes) Count() int {
	n := 0
	for _, ok := range []bool{c.Lower, c.Upper, c.Digit, c.Special} {
		if ok {
			n++
		}
	}
	return n
}

// Strength is the tier derived from the total score.
type Strength int

const (
	Weak Strength = iota
	Moderate
	Strong
	VeryStrong
)

// Strengths lists every tier from weakest to strongest.
var Strengths = []Strength{Weak, Moderate, Strong, VeryStrong}

func (s Strength) String() string {
	switch s {
	case Weak:
		return "Weak"
	case Moderate:
		return "Moderate"
	case Strong:
		return "Strong"
	case VeryStrong:
		return "Very Strong"
	}
	return fmt.Sprintf("Strength(%d)", int(s))
}

func (s Strength) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Strength) UnmarshalText(text []byte) error {
	parsed, err := ParseStrength(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStrength accepts the labels produced by String, case-insensitively.
// "VeryStrong" and "very_strong" are accepted as well.
func ParseStrength(label string) (Strength, error) {
	norm := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(label)))
	switch norm {
	case "weak":
		return Weak, nil
	case "moderate":
		return Moderate, nil
	case "strong":
		return Strong, nil
	case "verystrong":
		return VeryStrong, nil
	}
	return Weak, fmt.Errorf("unknown strength %q", label)
}

// Classify maps a total score onto a strength tier.
func Classify(total int) Strength {
	switch {
	case total < 30:
		return Weak
	case total < 60:
		return Moderate
	case total < 80:
		return Strong
	default:
		return VeryStrong
	}
}

// NamedCheck pairs a check name with its result.
type NamedCheck struct {
	Name   string
	Result CheckResult
}

// Report is the full evaluation of one password.
type Report struct {
	Length         CheckResult   `json:"length"`
	Categories     CheckResult   `json:"categories"`
	CommonPassword CheckResult   `json:"common_password"`
	Sequences      CheckResult   `json:"sequences"`
	Dictionary     CheckResult   `json:"dictionary"`
	Blacklist      CheckResult   `json:"blacklist"`
	Entropy        EntropyResult `json:"entropy"`

	Classes        Classes  `json:"classes"`
	PasswordLength int      `json:"password_length"`
	TotalScore     int      `json:"total_score"`
	Strength       Strength `json:"strength"`
}

// Checks returns every check result in evaluation order.
func (r Report) Checks() []NamedCheck {
	return []NamedCheck{
		{CheckLength, r.Length},
		{CheckCategories, r.Categories},
		{CheckCommonPassword, r.CommonPassword},
		{CheckSequences, r.Sequences},
		{CheckDictionary, r.Dictionary},
		{CheckBlacklist, r.Blacklist},
		{CheckEntropy, r.Entropy.AsCheck()},
	}
}

// ClampedScore caps TotalScore at 100 for display on a 0-100 scale.
// The check maxima add up to 125, so TotalScore itself can exceed 100.
func (r Report) ClampedScore() int {
	if r.TotalScore > MaxDisplayScore {
		return MaxDisplayScore
	}
	return r.TotalScore
}
