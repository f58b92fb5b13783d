package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skilleval",
	Short: "AI-generated technical skill assessments",
	Long: "skilleval builds a technical assessment from a role, level and tech stack, " +
		"scores the answers with an LLM and reports per-skill results.",
	SilenceUsage: true,
}

// Execute runs the root command. Interrupts cancel in-flight LLM calls.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SKILLEVAL_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: skilleval.yaml in the user config dir or working directory)")
	rootCmd.PersistentFlags().String("user", defaultUser(), "User the profiles and attempts belong to")

	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(attemptCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// defaultUser returns $SKILLEVAL_USER, then $USER, then "local".
func defaultUser() string {
	for _, k := range []string{"SKILLEVAL_USER", "USER"} {
		if u := os.Getenv(k); u != "" {
			return u
		}
	}
	return "local"
}
