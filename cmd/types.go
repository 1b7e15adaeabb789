package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learntype/internal/diagnosis"
)

var typesCmd = &cobra.Command{
	Use:   "types [id]",
	Short: "List the learning types, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		catalog := diagnosis.DefaultCatalog()
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			if asJSON {
				return writeJSON(out, catalog.Types())
			}
			fmt.Fprintf(out, "%-12s  %-22s  %s\n", "ID", "Name", "Description")
			fmt.Fprintln(out, strings.Repeat("\u2500", 90))
			for _, t := range catalog.Types() {
				fmt.Fprintf(out, "%-12s  %-22s  %s\n", t.ID, t.DisplayName+" ("+t.ScientificName+")", t.Description)
			}
			return nil
		}

		id, err := diagnosis.ParseTypeID(args[0])
		if err != nil {
			return err
		}
		t, _ := catalog.Type(id)
		if asJSON {
			return writeJSON(out, t)
		}
		printType(out, t)
		return nil
	},
}

func init() {
	typesCmd.Flags().Bool("json", false, "Print JSON")
}

func printType(out io.Writer, t diagnosis.Type) {
	fmt.Fprintf(out, "%s (%s)\n", t.DisplayName, t.ScientificName)
	fmt.Fprintln(out, t.Description)
	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(out, "\n%s:\n", title)
		for _, it := range items {
			fmt.Fprintf(out, "  - %s\n", it)
		}
	}
	list("Characteristics", t.Characteristics)
	list("Strengths", t.Strengths)
	list("Weaknesses", t.Weaknesses)
	list("Recommended strategies", t.Strategies)

	fmt.Fprintln(out, "\nCoaching:")
	fmt.Fprintf(out, "  Communication: %s\n", t.Coaching.CommunicationStyle)
	fmt.Fprintf(out, "  Motivation:    %s\n", t.Coaching.MotivationApproach)
	fmt.Fprintf(out, "  Learning:      %s\n", t.Coaching.LearningStyle)

	mult := t.Multipliers()
	dims := make([]string, 0, len(mult))
	for d := range mult {
		dims = append(dims, d)
	}
	sort.Strings(dims)
	fmt.Fprintln(out, "\nScoring multipliers:")
	for _, d := range dims {
		fmt.Fprintf(out, "  %-24s %.1f\n", d, mult[d])
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
