package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/learntype/internal/diagnosis"
	"github.com/abhisek/learntype/internal/journal"
)

var replayCmd = &cobra.Command{
	Use:   "replay <session-id>",
	Short: "Recompute a recorded session's result from its answers",
	Long: "replay rebuilds a session from the answers recorded for it and classifies it " +
		"again with the current bank, catalog and follow-up policy.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		engine, err := newEngine()
		if err != nil {
			return err
		}

		j := journal.New(st.EventRepo(), st.ResultRepo(), nil, nil)
		s, err := j.Replay(cmd.Context(), engine, args[0])
		if err != nil {
			return fmt.Errorf("replay %s: %w", args[0], err)
		}
		res, err := engine.Complete(s)
		if err != nil {
			return fmt.Errorf("classify %s: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, res)
		}
		fmt.Fprintf(out, "Session:   %s\n", s.ID)
		if s.UserID != "" {
			fmt.Fprintf(out, "User:      %s\n", s.UserID)
		}
		fmt.Fprintf(out, "Answers:   %d\n", len(s.Answers))
		printResult(out, res)
		return nil
	},
}

func init() {
	replayCmd.Flags().Bool("json", false, "Print JSON")
}

func printResult(out io.Writer, res *diagnosis.Result) {
	fmt.Fprintf(out, "Primary:   %s\n", res.PrimaryName)
	if res.HasSecondary() {
		fmt.Fprintf(out, "Secondary: %s\n", res.SecondaryName)
	}
	fmt.Fprintf(out, "Confidence: %d%%\n", res.Confidence)
	fmt.Fprintln(out, "\nTrait scores:")
	for _, e := range res.TraitScores.Ranked() {
		fmt.Fprintf(out, "  %-24s %+d\n", e.Dimension, e.Score)
	}
	fmt.Fprintln(out, "\nType scores:")
	for _, c := range res.TypeScores {
		fmt.Fprintf(out, "  %-24s %.1f\n", c.Type, c.Score())
	}
}
