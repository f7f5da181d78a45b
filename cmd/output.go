package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/sw33tLie/pwcheck/pkg/scorer"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"

	barWidth = 40
)

var colorsEnabled = true

var checkLabels = map[string]string{
	scorer.CheckLength:         "Length",
	scorer.CheckCategories:     "Character Categories",
	scorer.CheckCommonPassword: "Common Password",
	scorer.CheckSequences:      "Sequences",
	scorer.CheckDictionary:     "Dictionary Words",
	scorer.CheckBlacklist:      "Blacklist",
	scorer.CheckEntropy:        "Entropy",
}

func colorize(color, s string) string {
	if !colorsEnabled {
		return s
	}
	return color + s + colorReset
}

func strengthColor(s scorer.Strength) string {
	switch s {
	case scorer.Weak:
		return colorRed
	case scorer.Moderate:
		return colorYellow
	case scorer.Strong:
		return colorCyan
	default:
		return colorGreen
	}
}

// scoreBar renders score (0..100) as a fixed-width bar.
func scoreBar(score int) string {
	if score < 0 {
		score = 0
	}
	if score > scorer.MaxDisplayScore {
		score = scorer.MaxDisplayScore
	}
	filled := score * barWidth / scorer.MaxDisplayScore
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}

func printChecks(w io.Writer, r scorer.Report) {
	for _, c := range r.Checks() {
		mark := colorize(colorGreen, "✓")
		if !c.Result.Passed {
			mark = colorize(colorRed, "✗")
		}
		fmt.Fprintf(w, "  %s %-22s %s\n", mark, checkLabels[c.Name], c.Result.Message)
	}
}

func printScore(w io.Writer, r scorer.Report) {
	bar := colorize(strengthColor(r.Strength), scoreBar(r.ClampedScore()))
	fmt.Fprintf(w, "\nScore:    %s %d/%d\n", bar, r.ClampedScore(), scorer.MaxDisplayScore)
	fmt.Fprintf(w, "Strength: %s\n", colorize(strengthColor(r.Strength), r.Strength.String()))
}

func printFeedback(w io.Writer, feedback []string) {
	if len(feedback) == 0 {
		return
	}
	fmt.Fprintln(w, "\nSuggestions:")
	for i, f := range feedback {
		fmt.Fprintf(w, "  %d. %s\n", i+1, f)
	}
}

func printGuessability(w io.Writer, g scorer.Guessability) {
	fmt.Fprintf(w, "\nzxcvbn:   %d/4, crack time %s (%.1f bits)\n", g.Score, g.CrackTime, g.Entropy)
}
