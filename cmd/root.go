package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/config"
	"github.com/theirongolddev/subtrack/internal/logging"
	"github.com/theirongolddev/subtrack/internal/store"
	"github.com/theirongolddev/subtrack/internal/tracker"
)

var (
	flagDataDir   string
	flagEphemeral bool
	flagQuiet     bool
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "subtrack",
	Short: "Subscription spending tracker",
	Long:  "Track recurring subscriptions, monthly spend across two currencies, and upcoming billing dates.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,

	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "Keep state in memory only")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// session bundles everything a command needs: config, logger and a loaded
// tracker. Close releases the backing store.
type session struct {
	cfg     config.Config
	log     *zap.Logger
	tracker *tracker.Tracker
	money   cli.Formatter
	closeFn func() error
}

func (s *session) Close() {
	if s.closeFn == nil {
		return
	}
	if err := s.closeFn(); err != nil {
		s.log.Warn("closing store", zap.Error(err))
	}
	_ = s.log.Sync()
}

// openSession is the shared startup path used by all commands. A store that
// cannot be opened is replaced by an in-memory one so the command still runs.
func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:   cfg,
		log:   log,
		money: cli.NewFormatter(cfg.Currency),
	}

	var kv store.KV
	if flagEphemeral {
		kv = store.NewMemory()
	} else {
		dataDir := cfg.DataDir()
		if flagDataDir != "" {
			dataDir = flagDataDir
		}
		db, err := store.Open(filepath.Join(dataDir, store.DBName))
		if err != nil {
			log.Warn("store unavailable, changes will not be saved", zap.String("dir", dataDir), zap.Error(err))
			kv = store.NewMemory()
		} else {
			kv = db
			s.closeFn = db.Close
		}
	}

	s.tracker = tracker.New(kv, tracker.WithLogger(log))
	return s, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("config [log]: %w", err)
	}
	switch {
	case flagVerbose:
		level = zap.DebugLevel
	case flagQuiet:
		level = zap.ErrorLevel
	}
	return logging.New(level, os.Stderr), nil
}
