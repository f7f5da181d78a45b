package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/pwcheck/pkg/generator"
	"github.com/sw33tLie/pwcheck/pkg/history"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate strong random passwords",
	Long: `Generate random passwords from a cryptographic source. Every enabled
character category appears at least once in each password.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		length, _ := cmd.Flags().GetInt("length")
		count, _ := cmd.Flags().GetInt("count")
		quiet, _ := cmd.Flags().GetBool("quiet")
		noHistory, _ := cmd.Flags().GetBool("no-history")

		opts := generator.Options{}
		opts.Uppercase, _ = cmd.Flags().GetBool("uppercase")
		opts.Digits, _ = cmd.Flags().GetBool("digits")
		opts.Special, _ = cmd.Flags().GetBool("special")

		if count < 1 {
			return fmt.Errorf("count must be at least 1, got %d", count)
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		entries := make([]history.Entry, 0, count)
		for i := 0; i < count; i++ {
			password, err := a.generator.Generate(length, opts)
			if err != nil {
				return err
			}

			report := a.scorer.Evaluate(password)
			entries = append(entries, history.NewEntry(password, report))

			if quiet {
				fmt.Fprintln(w, password)
				continue
			}
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "Generated Password: %s\n", colorize(colorGreen, password))
			printScore(w, report)
			printFeedback(w, a.scorer.Feedback(report))
		}

		if !noHistory {
			a.record(cmd.Context(), entries...)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntP("length", "n", 12, "Password length")
	generateCmd.Flags().IntP("count", "c", 1, "Number of passwords to generate")
	generateCmd.Flags().Bool("uppercase", true, "Include uppercase letters")
	generateCmd.Flags().Bool("digits", true, "Include digits")
	generateCmd.Flags().Bool("special", true, "Include special characters")
	generateCmd.Flags().BoolP("quiet", "q", false, "Print only the generated passwords")
	generateCmd.Flags().Bool("no-history", false, "Do not record generated passwords in the history DB")
}
