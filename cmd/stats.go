package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/pwcheck/pkg/history"
	"github.com/sw33tLie/pwcheck/pkg/scorer"
	"github.com/sw33tLie/pwcheck/pkg/storage"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints statistics about the evaluated passwords.",
	Long:  "Prints the number of evaluated passwords, their average score and the strength distribution.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		var stats history.Stats
		err = a.withHistory(func(db *storage.DB) error {
			stats, err = db.Stats(cmd.Context())
			return err
		})
		if err != nil {
			return err
		}

		if stats.Total == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No passwords have been checked yet.")
			return nil
		}

		printStats(cmd.OutOrStdout(), stats)
		return nil
	},
}

func printStats(out io.Writer, stats history.Stats) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "STRENGTH\tPASSWORDS\tSHARE\t")
	for _, s := range scorer.Strengths {
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\t\n", s, stats.Counts[s], stats.Percent(s))
	}
	fmt.Fprintln(w, " \t \t \t")
	fmt.Fprintf(w, "TOTAL\t%d\t\t\n", stats.Total)
	fmt.Fprintf(w, "AVERAGE SCORE\t%.1f\t\t\n", stats.Average)
	w.Flush()
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
