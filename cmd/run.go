package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizz/internal/app"
	"github.com/abhisek/quizz/internal/bank"
	"github.com/abhisek/quizz/internal/config"
	"github.com/abhisek/quizz/internal/export"
	"github.com/abhisek/quizz/internal/history"
	"github.com/abhisek/quizz/internal/logging"
	"github.com/abhisek/quizz/internal/persist"
	"github.com/abhisek/quizz/internal/screen"
	screenhistory "github.com/abhisek/quizz/internal/screens/history"
	"github.com/abhisek/quizz/internal/session"
	"github.com/abhisek/quizz/internal/store"
)

// startupTimeout bounds the housekeeping done before the first render.
const startupTimeout = 5 * time.Second

// env holds everything a command needs once flags and config are resolved.
type env struct {
	cfg     *config.Config
	log     *zap.Logger
	bank    *bank.Bank
	state   *persist.Adapter
	events  store.EventRepo // nil in ephemeral mode
	closers []func()
}

// setup loads config, opens the log and the store, loads the bank and prunes
// stale state keys. The caller must call close.
func setup(cmd *cobra.Command) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath, cmd.Flags())
	if err != nil {
		return nil, err
	}

	log, closeLog, err := logging.New(logging.Options{File: cfg.Log.File, Level: cfg.Log.Level})
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	e := &env{cfg: cfg, log: log, closers: []func(){closeLog}}

	b, err := bank.Load(cfg.Bank)
	if err != nil {
		e.close()
		return nil, err
	}
	e.bank = b

	var kv persist.KV
	if cfg.Ephemeral {
		kv = persist.NewMemoryKV()
	} else {
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			e.close()
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			e.close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		e.events = st.EventRepo()
		e.closers = append(e.closers, func() { st.Close() })
		kv = st.KVRepo()
	}
	e.state = persist.New(kv, persist.WithLogger(log))

	ctx, cancel := context.WithTimeout(cmd.Context(), startupTimeout)
	defer cancel()
	if _, err := e.state.PruneStale(ctx); err != nil {
		log.Warn("prune stale state", zap.Error(err))
	}

	log.Info("started",
		zap.String("command", cmd.Name()),
		zap.String("version", version),
		zap.String("config", cfg.File),
		zap.Bool("ephemeral", cfg.Ephemeral),
		zap.Int("questions", b.Count()))
	return e, nil
}

// close releases resources in reverse order of acquisition.
func (e *env) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

// session restores the stored attempt or starts a fresh one.
func (e *env) session() *session.Session {
	opts := []session.Option{
		session.WithSaver(e.state),
		session.WithLogger(e.log),
	}
	if e.events != nil {
		opts = append(opts, session.WithRecorder(history.NewRecorder(e.events, e.bank, e.log)))
	}

	if st, ok := e.state.Load(); ok {
		return session.Restore(e.bank, st, opts...)
	}
	return session.New(e.bank, opts...)
}

// exportTo writes the session's answers under the configured directory.
func (e *env) exportTo(s *session.Session, path string) (string, error) {
	if path == "" {
		path = e.cfg.Export.Dir
	}
	st := s.State()
	written, err := export.WriteFile(path, e.bank.All(), st.Answers, e.cfg.LineEnding())
	if err != nil {
		e.log.Warn("export", zap.Error(err))
		return "", err
	}
	e.log.Info("exported", zap.String("path", written))
	return written, nil
}

// historyLoader returns nil in ephemeral mode.
func (e *env) historyLoader() screenhistory.Loader {
	if e.events == nil {
		return nil
	}
	return func(ctx context.Context) ([]history.Entry, error) {
		return history.Recent(ctx, e.events, e.bank, store.QueryOpts{})
	}
}

// resolveDBPath returns the database path using --db / QUIZZ_DB from config
// first, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// runApp builds the session and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	s := e.session()
	return app.Run(app.Options{
		Session: s,
		Export:  screen.ExportFunc(func() (string, error) { return e.exportTo(s, "") }),
		History: e.historyLoader(),
		Logger:  e.log,
	})
}
