package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/sw33tLie/pwcheck/internal/config"
	"github.com/sw33tLie/pwcheck/internal/server"
	"github.com/sw33tLie/pwcheck/internal/utils"
	"github.com/sw33tLie/pwcheck/pkg/history"
	"github.com/sw33tLie/pwcheck/pkg/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pwcheck HTTP API",
	Long: `Start the HTTP JSON API. History is kept in memory unless --persist is set,
in which case evaluations go to the sqlite history DB.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		persist, _ := cmd.Flags().GetBool("persist")

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		var store history.Store = history.NewRing(a.cfg.HistorySize)
		if persist {
			dbPath, err := utils.GetAbsDBPath(a.cfg.HistoryDB)
			if err != nil {
				return err
			}
			db, err := storage.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			store = &lockedStore{db: db, path: dbPath}
			utils.Log.Infof("Recording history to %s", dbPath)
		}

		srv := server.New(a.scorer, a.generator, store, a.cfg.Server.Username, a.cfg.Server.Password)
		return srv.Start(a.cfg.Server.Listen)
	},
}

// lockedStore takes the history DB file lock around every operation so the
// server can share the DB with concurrent CLI invocations.
type lockedStore struct {
	db   *storage.DB
	path string
}

func (s *lockedStore) Record(ctx context.Context, e history.Entry) error {
	return utils.WithLock(s.path, func() error { return s.db.Record(ctx, e) })
}

func (s *lockedStore) Recent(ctx context.Context, limit int) (entries []history.Entry, err error) {
	err = utils.WithLock(s.path, func() error {
		entries, err = s.db.Recent(ctx, limit)
		return err
	})
	return entries, err
}

func (s *lockedStore) Stats(ctx context.Context) (st history.Stats, err error) {
	err = utils.WithLock(s.path, func() error {
		st, err = s.db.Stats(ctx)
		return err
	})
	return st, err
}

func (s *lockedStore) Clear(ctx context.Context) error {
	return utils.WithLock(s.path, func() error { return s.db.Clear(ctx) })
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", ":8080", "HTTP listen address")
	serveCmd.Flags().Bool("persist", false, "Record history to the sqlite DB instead of memory")
	serveCmd.Flags().String("username", "", "Basic auth username (empty disables auth)")
	serveCmd.Flags().String("password", "", "Basic auth password")

	for key, flag := range map[string]string{
		config.KeyServerListen:   "listen",
		config.KeyServerUsername: "username",
		config.KeyServerPassword: "password",
	} {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}
