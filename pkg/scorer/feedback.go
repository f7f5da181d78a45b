package scorer

import "fmt"

// entropyAdviceBits is the entropy below which extra complexity is suggested,
// whatever the entropy check itself scored.
const entropyAdviceBits = 60

// Feedback turns a report into remediation suggestions, one per failed check
// in evaluation order, followed by entropy advice.
func (s *Scorer) Feedback(r Report) []string {
	var out []string

	if !r.Length.Passed {
		if r.PasswordLength < s.cfg.MinLength {
			out = append(out, fmt.Sprintf("Increase password length to at least %d characters", s.cfg.MinLength))
		} else {
			out = append(out, fmt.Sprintf("Decrease password length to maximum %d characters", s.cfg.MaxLength))
		}
	}
	if !r.Categories.Passed {
		out = append(out, "Include a mix of uppercase letters, lowercase letters, numbers, and special characters")
	}
	if !r.CommonPassword.Passed {
		out = append(out, "Avoid using common passwords that are easy to guess")
	}
	if !r.Sequences.Passed {
		out = append(out, "Avoid using sequential characters or keyboard patterns")
	}
	if !r.Dictionary.Passed {
		out = append(out, "Avoid using common dictionary words")
	}
	if !r.Blacklist.Passed {
		out = append(out, "Avoid using blacklisted passwords")
	}
	if r.Entropy.Bits < entropyAdviceBits {
		out = append(out, "Increase complexity by using more character types and length")
	}

	if len(out) == 0 {
		out = append(out, "Your password meets all basic security requirements")
		if r.TotalScore < 80 {
			out = append(out, "For even stronger security, consider increasing length or complexity")
		}
	}
	return out
}
