package scorer

import "github.com/nbutton23/zxcvbn-go"

// maxGuessLen bounds the input handed to zxcvbn, whose cost grows quickly
// with password length.
const maxGuessLen = 50

// Guessability is a pattern-aware strength estimate reported next to the
// heuristic score. It never contributes to Report.TotalScore.
type Guessability struct {
	Score     int     `json:"score"` // 0..4
	Entropy   float64 `json:"entropy"`
	CrackTime string  `json:"crack_time"`
}

// EstimateGuessability runs zxcvbn over the first maxGuessLen runes of
// password. userInputs are extra words (user name, e-mail) to penalise.
func EstimateGuessability(password string, userInputs ...string) Guessability {
	check := password
	if runes := []rune(password); len(runes) > maxGuessLen {
		check = string(runes[:maxGuessLen])
	}
	m := zxcvbn.PasswordStrength(check, userInputs)
	return Guessability{
		Score:     m.Score,
		Entropy:   m.Entropy,
		CrackTime: m.CrackTimeDisplay,
	}
}
