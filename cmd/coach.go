package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/learntype/internal/journal"
)

var coachCmd = &cobra.Command{
	Use:   "coach <session-id>",
	Short: "Write a coaching note for a recorded result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		asJSON, _ := cmd.Flags().GetBool("json")

		logger, err := newLogger(false)
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

		j := journal.New(st.EventRepo(), st.ResultRepo(), nil, logger)
		entry, err := j.Result(ctx, args[0])
		if err != nil {
			return fmt.Errorf("load result %s: %w", args[0], err)
		}

		coach, err := newCoach(ctx, engine, st, nil, logger)
		if err != nil {
			return err
		}
		note, err := coach.Note(ctx, entry.Result)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, note)
		}
		fmt.Fprintln(out, note.Headline)
		fmt.Fprintln(out)
		fmt.Fprintln(out, note.Message)
		if len(note.NextSteps) > 0 {
			fmt.Fprintln(out, "\nNext steps:")
			for _, step := range note.NextSteps {
				fmt.Fprintf(out, "  - %s\n", step)
			}
		}
		fmt.Fprintf(out, "\n(source: %s)\n", note.Source)
		return nil
	},
}

func init() {
	coachCmd.Flags().Bool("json", false, "Print JSON")
}
