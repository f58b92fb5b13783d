package cmd

import (
	"fmt"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/skilleval/internal/assess"
	"github.com/abhisek/skilleval/internal/reportview"
	"github.com/abhisek/skilleval/internal/screens/take"
)

var attemptCmd = &cobra.Command{
	Use:   "attempt",
	Short: "Take tests and review results",
}

var attemptStartCmd = &cobra.Command{
	Use:   "start <test-id>",
	Short: "Open a new attempt of a test",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		svc, err := env.service(ctx, serviceOpts{})
		if err != nil {
			return err
		}
		a, err := svc.Start(ctx, args[0], env.user)
		if err != nil {
			return fmt.Errorf("start attempt: %w", err)
		}
		fmt.Println(a.ID)
		return nil
	},
}

var attemptSubmitCmd = &cobra.Command{
	Use:   "submit <attempt-id>",
	Short: "Score answers for an attempt and show the report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("answers")
		answers, err := readAnswersFile(path)
		if err != nil {
			return err
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		rules, _ := cmd.Flags().GetBool("rules")
		ctx := cmd.Context()
		svc, err := env.service(ctx, serviceOpts{score: true, rules: rules})
		if err != nil {
			return err
		}

		a, err := svc.Submit(ctx, args[0], answers)
		if err != nil {
			return fmt.Errorf("submit attempt: %w", err)
		}
		_, test, err := svc.Detail(ctx, a.ID)
		if err != nil {
			return fmt.Errorf("load test: %w", err)
		}
		return printResult(cmd, env, a, test)
	},
}

var attemptTakeCmd = &cobra.Command{
	Use:   "take <test-id>",
	Short: "Answer a test interactively and submit it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		rules, _ := cmd.Flags().GetBool("rules")
		ctx := cmd.Context()
		svc, err := env.service(ctx, serviceOpts{score: true, rules: rules})
		if err != nil {
			return err
		}

		a, err := svc.Start(ctx, args[0], env.user)
		if err != nil {
			return fmt.Errorf("start attempt: %w", err)
		}
		_, test, err := svc.Detail(ctx, a.ID)
		if err != nil {
			return fmt.Errorf("load test: %w", err)
		}

		fmt.Printf("Attempt %s: %d questions, about %d min.\n\n", a.ID, len(test.Questions), test.Metadata.TotalTime)
		answers, err := take.Run(ctx, test.Questions)
		if err != nil {
			return fmt.Errorf("attempt %s left open: %w", a.ID, err)
		}

		fmt.Println("Scoring answers...")
		a, err = svc.Submit(ctx, a.ID, answers)
		if err != nil {
			return fmt.Errorf("submit attempt: %w", err)
		}
		return printResult(cmd, env, a, test)
	},
}

func printResult(cmd *cobra.Command, env *appEnv, a *assess.Attempt, test *assess.Test) error {
	lipgloss.Println(reportview.Report(a, test, reportview.DefaultWidth))
	if show, _ := cmd.Flags().GetBool("metrics"); show {
		fmt.Println()
		return env.metrics.WriteText(os.Stdout)
	}
	return nil
}

var attemptShowCmd = &cobra.Command{
	Use:   "show <attempt-id>",
	Short: "Show an attempt's report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		svc, err := env.service(ctx, serviceOpts{})
		if err != nil {
			return err
		}
		a, test, err := svc.Detail(ctx, args[0])
		if err != nil {
			return fmt.Errorf("get attempt: %w", err)
		}
		lipgloss.Println(reportview.Report(a, test, reportview.DefaultWidth))
		return nil
	},
}

var attemptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the current user's attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		attempts, err := env.store.AttemptRepo().ListByUser(cmd.Context(), env.user)
		if err != nil {
			return fmt.Errorf("list attempts: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Println("No attempts yet.")
			return nil
		}

		fmt.Printf("%-36s  %-36s  %-16s  %s\n", "ID", "Test", "Started", "Score")
		fmt.Println(strings.Repeat("─", 100))
		for _, a := range attempts {
			score := "in progress"
			if a.Completed && a.Score != nil {
				score = fmt.Sprintf("%d%%", *a.Score)
			}
			fmt.Printf("%-36s  %-36s  %-16s  %s\n",
				a.ID, a.TestID, a.StartTime.Local().Format("2006-01-02 15:04"), score)
		}
		return nil
	},
}

func init() {
	attemptSubmitCmd.Flags().StringP("answers", "a", "", "JSON file of answers ([{\"questionId\":..,\"answer\":..}]), or - for stdin")
	_ = attemptSubmitCmd.MarkFlagRequired("answers")

	for _, c := range []*cobra.Command{attemptSubmitCmd, attemptTakeCmd} {
		c.Flags().Bool("metrics", false, "Print scoring metrics in Prometheus text format")
		c.Flags().Bool("rules", false, "Score offline by matching reference answers instead of calling the LLM")
	}

	attemptCmd.AddCommand(attemptStartCmd)
	attemptCmd.AddCommand(attemptSubmitCmd)
	attemptCmd.AddCommand(attemptTakeCmd)
	attemptCmd.AddCommand(attemptShowCmd)
	attemptCmd.AddCommand(attemptListCmd)
}
