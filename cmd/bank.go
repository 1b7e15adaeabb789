package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/learntype/internal/bankfetch"
	"github.com/abhisek/learntype/internal/questionbank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect, validate and install question banks",
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a bank file against the schema and the bank rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := questionbank.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: bank %s is valid (%d core, %d follow-up questions)\n",
			args[0], b.Version(), b.CoreCount(), len(b.FollowupQuestions()))
		return nil
	},
}

var bankExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the active bank as YAML",
	Long:  "export prints the bank in use (the built-in bank unless --bank is set) as a document that bank validate accepts.",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBank()
		if err != nil {
			return err
		}
		data, err := questionbank.Marshal(b)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var bankFetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Download, verify and install a question bank",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		checksums, _ := cmd.Flags().GetString("checksums")
		dest, _ := cmd.Flags().GetString("out")
		force, _ := cmd.Flags().GetBool("force")

		if dest == "" {
			dest = cfg.Bank.File
		}
		if dest == "" {
			dir, err := os.UserConfigDir()
			if err != nil {
				return fmt.Errorf("resolve config dir: %w", err)
			}
			dest = filepath.Join(dir, "learntype", "bank.yaml")
		}

		logger, err := newLogger(false)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		f := bankfetch.New(bankfetch.WithLogger(logger))
		out := cmd.OutOrStdout()
		res, err := f.Fetch(cmd.Context(), bankfetch.Request{
			URL:          args[0],
			ChecksumsURL: checksums,
			Dest:         dest,
			Force:        force,
		}, func(p bankfetch.Progress) {
			fmt.Fprintln(out, p.Message)
		})
		if errors.Is(err, bankfetch.ErrNotNewer) {
			fmt.Fprintln(out, "The installed bank is already up to date. Use --force to replace it.")
			return nil
		}
		if err != nil {
			return err
		}

		if cfg.Bank.File != res.Path {
			fmt.Fprintf(out, "Set LEARNTYPE_BANK_FILE=%s or pass --bank %s to use it.\n", res.Path, res.Path)
		}
		return nil
	},
}

func init() {
	bankFetchCmd.Flags().String("checksums", "", "URL of a checksums.txt to verify the download against")
	bankFetchCmd.Flags().String("out", "", "Install path (default bank.file, else the user config dir)")
	bankFetchCmd.Flags().Bool("force", false, "Install even if the installed bank is the same or newer")

	bankCmd.AddCommand(bankValidateCmd)
	bankCmd.AddCommand(bankExportCmd)
	bankCmd.AddCommand(bankFetchCmd)
}
