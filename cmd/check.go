package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/pwcheck/internal/server"
	"github.com/sw33tLie/pwcheck/pkg/history"
	"github.com/sw33tLie/pwcheck/pkg/scorer"
)

var errEmptyPassword = errors.New("please enter a password to check")

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [password]",
	Short: "Evaluate the strength of a password",
	Long: `Evaluate the strength of a password. When no argument is given the password
is read from the first line of stdin, which keeps it out of the shell history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		noHistory, _ := cmd.Flags().GetBool("no-history")

		password, err := passwordFromArgs(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		report := a.scorer.Evaluate(password)
		out := server.EvaluateResponse{
			Report:       report,
			Feedback:     a.scorer.Feedback(report),
			Guessability: scorer.EstimateGuessability(password),
		}

		if !noHistory {
			a.record(cmd.Context(), history.NewEntry(password, report))
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Password: %s\n\n", history.Mask(password))
		printChecks(w, out.Report)
		printScore(w, out.Report)
		printFeedback(w, out.Feedback)
		printGuessability(w, out.Guessability)
		return nil
	},
}

// passwordFromArgs returns args[0], or the first stdin line without its
// line terminator.
func passwordFromArgs(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		if args[0] == "" {
			return "", errEmptyPassword
		}
		return args[0], nil
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errEmptyPassword
	}
	return password, nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("json", false, "Print the report as JSON")
	checkCmd.Flags().Bool("no-history", false, "Do not record this evaluation in the history DB")
}
