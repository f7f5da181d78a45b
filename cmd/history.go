package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/pwcheck/internal/utils"
	"github.com/sw33tLie/pwcheck/pkg/history"
	"github.com/sw33tLie/pwcheck/pkg/storage"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Interact with the evaluation history DB",
}

// historyListCmd represents the history list command
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent evaluations (masked)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		var entries []history.Entry
		err = a.withHistory(func(db *storage.DB) error {
			entries, err = db.Recent(cmd.Context(), limit)
			return err
		})
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No evaluations recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "CHECKED AT\tPASSWORD\tSCORE\tSTRENGTH\t")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t\n", e.CheckedAt.Local().Format("2006-01-02 15:04:05"), e.Masked, e.Score, e.Strength)
		}
		w.Flush()
		return nil
	},
}

// historyClearCmd represents the history clear command
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded evaluation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		if err := a.withHistory(func(db *storage.DB) error {
			return db.Clear(cmd.Context())
		}); err != nil {
			return err
		}
		utils.Log.Info("History cleared")
		return nil
	},
}

// historyShellCmd represents the history shell command
var historyShellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive sqlite3 shell to the history DB",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		dbPath, err := utils.GetAbsDBPath(a.cfg.HistoryDB)
		if err != nil {
			return err
		}

		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return fmt.Errorf("database file not found: %s", dbPath)
		}

		// Check if sqlite3 is in PATH
		sqlitePath, err := exec.LookPath("sqlite3")
		if err != nil {
			return fmt.Errorf("sqlite3 command not found in your PATH. Please install it to use the history shell")
		}

		fmt.Println("--> Database schema:")
		schemaCmd := exec.Command(sqlitePath, dbPath, ".schema")
		schemaCmd.Stdout = os.Stdout
		schemaCmd.Stderr = os.Stderr
		if err := schemaCmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: couldn't retrieve schema: %v\n", err)
		}
		fmt.Println("\n--> Starting interactive shell... (Ctrl+D to exit)")

		c := exec.Command(sqlitePath, dbPath)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr

		return c.Run()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyShellCmd)
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of entries to show (0 for all)")
}
