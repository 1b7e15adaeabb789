package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/abhisek/learntype/internal/config"
)

// cfg is loaded before any command runs.
var cfg *config.Config

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"db":            "db",
	"log.level":     "log-level",
	"log.format":    "log-format",
	"log.file":      "log-file",
	"bank.file":     "bank",
	"followup.mode": "followup-mode",
	"followup.max":  "followup-max",
	"llm.provider":  "llm-provider",
	"server.addr":   "addr",
	"redis.addr":    "redis-addr",
}

var rootCmd = &cobra.Command{
	Use:   "learntype",
	Short: "Learning-type diagnosis quiz",
	Long: "learntype asks a short adaptive quiz and tells you which of six learning types " +
		"fits you best, in the terminal or over HTTP.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd)
	},
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default learntype.yaml in the user config dir or working dir)")
	pf.String("env-file", "", "Env file to load before reading LEARNTYPE_* variables (default .env)")
	pf.String("db", "", "Path to SQLite database file")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: console or json")
	pf.String("log-file", "", "Write logs to this file")
	pf.String("bank", "", "Question bank file (YAML or JSON); default is the built-in bank")
	pf.String("followup-mode", "", "Follow-up policy: progressive or first-match")
	pf.Int("followup-max", 0, "Maximum follow-up questions per session (0 = no cap)")
	pf.String("llm-provider", "", "LLM provider for coaching notes: none, anthropic, openai, gemini, openrouter")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(coachCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")

	opts := config.Options{
		ConfigFile: configFile,
		EnvFile:    envFile,
		Flags:      bindings(cmd),
	}
	loaded, err := config.Load(opts)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// bindings returns the flags of cmd that were set on the command line.
func bindings(cmd *cobra.Command) map[string]*pflag.Flag {
	out := make(map[string]*pflag.Flag, len(flagKeys))
	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			out[key] = f
		}
	}
	return out
}
