package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/learntype/internal/app"
	"github.com/abhisek/learntype/internal/journal"
	"github.com/abhisek/learntype/internal/screen"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the quiz in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd)
	},
}

// runQuiz opens the store, builds the services, and launches the TUI.
func runQuiz(cmd *cobra.Command) error {
	ctx := cmd.Context()

	logger, err := newLogger(true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	engine, err := newEngine()
	if err != nil {
		return err
	}
	coach, err := newCoach(ctx, engine, st, nil, logger)
	if err != nil {
		return err
	}

	logger.Info("starting terminal quiz", zap.String("bank_version", engine.Bank().Version()))
	return app.Run(ctx, screen.Services{
		Engine:  engine,
		Journal: journal.New(st.EventRepo(), st.ResultRepo(), nil, logger),
		Coach:   coach,
		Logger:  logger,
	})
}
