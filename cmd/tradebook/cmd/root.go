package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradebook/config"
	"github.com/rustyeddy/tradebook/internal/logging"
	"github.com/rustyeddy/tradebook/journal"
	"github.com/rustyeddy/tradebook/session"
)

var rootCmd = &cobra.Command{
	Use:   "tradebook",
	Short: "A personal FX trade journal with pip, P/L and capital replay tools",
	Long: `Tradebook keeps a journal of FX trades and reports on them.

It provides tools for:
  - Recording trades with one or more priced legs
  - Pip and P/L calculation per leg and per trade
  - Replaying the journal against a compounding balance (profit factor)
  - CSV import/export and Org-mode rendering
  - A small HTTP API for reporting front ends`,
	SilenceUsage: true,
}

var (
	cfgFile  string
	dbPath   string
	userFlag string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON); defaults are used when empty")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "user whose trades are visible (overrides config)")
}

// env is what a command needs to talk to the journal. Close releases
// everything in reverse order of acquisition.
type env struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *journal.SQLite
	sessions *session.Provider
	user     string
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.LoadFromFile(cfgFile); err != nil {
			return nil, err
		}
	}
	if dbPath != "" {
		cfg.Journal.DBPath = dbPath
	}
	if userFlag != "" {
		cfg.Session.UserID = userFlag
	}
	return cfg, nil
}

func openEnv() (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	store, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	ttl, err := cfg.Session.ParseTTL()
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("session ttl: %w", err)
	}
	sessions := session.NewProvider()
	sessions.Subscribe(func(s session.Session, ok bool) {
		if ok {
			log.Debug("session started", zap.String("user_id", s.UserID), zap.String("session_id", s.ID))
		} else {
			log.Debug("session ended")
		}
	})
	sess, err := sessions.SignIn(cfg.Session.UserID, ttl)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &env{cfg: cfg, log: log, store: store, sessions: sessions, user: sess.UserID}, nil
}

func (e *env) Close() {
	_ = e.sessions.SignOut()
	_ = e.sessions.Close()
	_ = e.store.Close()
	_ = e.log.Sync()
}
