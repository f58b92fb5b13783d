package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/skilleval/internal/analytics"
	"github.com/abhisek/skilleval/internal/reportview"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Summarize the current user's assessment history",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		attempts, err := env.store.AttemptRepo().ListByUser(cmd.Context(), env.user)
		if err != nil {
			return fmt.Errorf("list attempts: %w", err)
		}
		summary := analytics.Summarize(attempts)

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		}
		lipgloss.Println(reportview.Summary(summary, reportview.DefaultWidth))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current user's profiles and attempts as JSON",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		output, _ := cmd.Flags().GetString("output")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		profiles, err := env.store.ProfileRepo().ListByUser(ctx, env.user)
		if err != nil {
			return fmt.Errorf("list profiles: %w", err)
		}
		attempts, err := env.store.AttemptRepo().ListByUser(ctx, env.user)
		if err != nil {
			return fmt.Errorf("list attempts: %w", err)
		}

		var w io.Writer = os.Stdout
		if output != "" && output != "-" {
			f, ferr := os.Create(output)
			if ferr != nil {
				return fmt.Errorf("create export file: %w", ferr)
			}
			defer func() {
				if cerr := f.Close(); err == nil && cerr != nil {
					err = fmt.Errorf("close export file: %w", cerr)
				}
			}()
			w = f
		}

		if err := analytics.WriteExport(w, profiles, attempts, time.Now()); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		if output != "" && output != "-" {
			fmt.Fprintf(os.Stderr, "Exported %d profiles and %d attempts to %s\n", len(profiles), len(attempts), output)
		}
		return nil
	},
}

func init() {
	analyticsCmd.Flags().Bool("json", false, "Print the summary as JSON")
	exportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
}
