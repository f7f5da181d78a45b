package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/pwcheck/pkg/history"
)

// fileCmd represents the file command
var fileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Evaluate every password listed in a file",
	Long:  "Evaluate every non-blank line of a file and print a summary table with masked passwords.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noHistory, _ := cmd.Flags().GetBool("no-history")

		f, err := os.Open(args[0])
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", args[0])
			}
			return err
		}
		defer f.Close()

		passwords, err := readPasswords(f)
		if err != nil {
			return err
		}
		if len(passwords) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No passwords found in file.")
			return nil
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "#\tPASSWORD\tSCORE\tSTRENGTH\t")

		entries := make([]history.Entry, 0, len(passwords))
		for i, pw := range passwords {
			report := a.scorer.Evaluate(pw)
			entries = append(entries, history.NewEntry(pw, report))
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\t\n", i+1, history.Preview(pw), report.ClampedScore(), report.Strength)
		}

		stats := history.Summarize(entries)
		fmt.Fprintln(w, " \t \t \t \t")
		fmt.Fprintf(w, "AVERAGE\t\t%.1f\t\t\n", stats.Average)
		w.Flush()

		if !noHistory {
			a.record(cmd.Context(), entries...)
		}
		return nil
	},
}

// readPasswords returns the trimmed non-blank lines of r.
func readPasswords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if pw := strings.TrimSpace(sc.Text()); pw != "" {
			out = append(out, pw)
		}
	}
	return out, sc.Err()
}

func init() {
	rootCmd.AddCommand(fileCmd)
	fileCmd.Flags().Bool("no-history", false, "Do not record the evaluations in the history DB")
}
