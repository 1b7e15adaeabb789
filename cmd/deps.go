package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/abhisek/learntype/internal/coaching"
	"github.com/abhisek/learntype/internal/llm"
	"github.com/abhisek/learntype/internal/logging"
	"github.com/abhisek/learntype/internal/metrics"
	"github.com/abhisek/learntype/internal/questionbank"
	"github.com/abhisek/learntype/internal/session"
	"github.com/abhisek/learntype/internal/store"
)

// dbPath returns the configured database path, or the XDG default.
func dbPath() (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func openStore() (*store.Store, error) {
	p, err := dbPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// newLogger builds the process logger. The terminal UI owns stderr, so
// interactive commands log to a file next to the database unless log.file
// says otherwise.
func newLogger(interactive bool) (*zap.Logger, error) {
	var outputs []string
	switch {
	case cfg.Log.File != "":
		outputs = []string{cfg.Log.File}
	case interactive:
		p, err := dbPath()
		if err != nil {
			return nil, err
		}
		outputs = []string{filepath.Join(filepath.Dir(p), "learntype.log")}
	}
	return logging.New(cfg.Log.Level, cfg.Log.Format, outputs...)
}

func loadBank() (*questionbank.Bank, error) {
	if cfg.Bank.File == "" {
		return questionbank.Default(), nil
	}
	return questionbank.LoadFile(cfg.Bank.File)
}

func newEngine() (*session.Engine, error) {
	bank, err := loadBank()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.FollowupPolicy()
	if err != nil {
		return nil, err
	}
	return session.NewEngine(bank, session.WithPolicy(policy)), nil
}

// newCoach builds the coaching service. Without an LLM provider every note
// comes from the type catalog.
func newCoach(ctx context.Context, engine *session.Engine, st *store.Store, m *metrics.Metrics, logger *zap.Logger) (*coaching.Coach, error) {
	deps := llm.Deps{Logger: logger}
	if st != nil {
		deps.Recorder = st.EventRepo()
	}
	if m != nil {
		deps.Observer = m
	}
	provider, err := llm.NewProvider(ctx, cfg.LLM, deps)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		logger.Info("no LLM provider configured, coaching notes come from the type catalog")
	}
	return coaching.New(provider, engine.Catalog(), coaching.DefaultConfig(), logger), nil
}
