package main

import (
	"flag"
	"fmt"

	"github.com/sw33tLie/pwcheck/pkg/generator"
	"github.com/sw33tLie/pwcheck/pkg/history"
	"github.com/sw33tLie/pwcheck/pkg/scorer"
)

func main() {
	// Usage: go run *.go -password "your password" -length 16

	passwordFlag := flag.String("password", "", "Password to evaluate")
	lengthFlag := flag.Int("length", 16, "Length of the generated password")

	// Parse the command-line flags
	flag.Parse()

	if *passwordFlag == "" {
		fmt.Println("Password is required. Please provide it using -password flag.")
		return
	}

	s := scorer.New(scorer.WithLengthBounds(10, 64))

	report := s.Evaluate(*passwordFlag)
	fmt.Printf("%s: %d (%s)\n", history.Mask(*passwordFlag), report.TotalScore, report.Strength)
	for _, c := range report.Checks() {
		fmt.Println(c.Name, c.Result.Passed, c.Result.Message)
	}
	for _, f := range s.Feedback(report) {
		fmt.Println("-", f)
	}

	// All categories are enabled, lowercase is always included
	pw, err := generator.New().Generate(*lengthFlag, generator.AllCategories)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Suggested replacement:", pw, s.Evaluate(pw).Strength)
}
