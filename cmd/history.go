package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learntype/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history <nickname>",
	Short: "Show past results for a nickname",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		j := journal.New(st.EventRepo(), st.ResultRepo(), nil, nil)
		entries, err := j.History(cmd.Context(), args[0], limit)
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, entries)
		}
		if len(entries) == 0 {
			fmt.Fprintf(out, "No results for %s.\n", args[0])
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-16s  %-11s  %-11s  %4s  %s\n",
			"Session", "Completed", "Primary", "Secondary", "Conf", "Answers")
		fmt.Fprintln(out, strings.Repeat("\u2500", 96))
		for _, e := range entries {
			r := e.Result
			fmt.Fprintf(out, "%-36s  %-16s  %-11s  %-11s  %3d%%  %d\n",
				e.SessionID,
				r.CompletedAt.Local().Format("2006-01-02 15:04"),
				r.PrimaryName,
				r.SecondaryName,
				r.Confidence,
				r.AnsweredCount,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "Maximum number of results to show")
	historyCmd.Flags().Bool("json", false, "Print JSON")
}
