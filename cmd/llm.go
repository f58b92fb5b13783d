package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/skilleval/internal/llm"
	"github.com/abhisek/skilleval/internal/store"
	"github.com/abhisek/skilleval/internal/ui/theme"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM calls, token usage and cost",
}

// usageTable returns a bordered table with styled headers and numeric
// columns from rightCol onward aligned right.
func usageTable(rightCol int, headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true).Foreground(theme.Secondary)
			}
			if col >= rightCol {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		events, err := env.store.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No LLM events found.")
			return nil
		}

		t := usageTable(4, "ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
		for _, e := range events {
			ok := theme.Correct.Render("✓")
			if !e.Success {
				ok = theme.Incorrect.Render("✗")
			}
			t.Row(
				strconv.Itoa(e.ID),
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				truncate(e.Model, 28),
				strconv.Itoa(e.InputTokens),
				strconv.Itoa(e.OutputTokens),
				strconv.FormatInt(e.LatencyMs, 10),
				ok,
			)
		}
		lipgloss.Println(t.String())
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		e, err := env.store.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "ID:        %d\n", e.ID)
		fmt.Fprintf(&b, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&b, "Provider:  %s\n", e.Provider)
		fmt.Fprintf(&b, "Model:     %s\n", e.Model)
		fmt.Fprintf(&b, "Purpose:   %s\n", e.Purpose)
		fmt.Fprintf(&b, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Fprintf(&b, "Latency:   %dms\n", e.LatencyMs)
		if e.Success {
			fmt.Fprintf(&b, "Success:   %s\n", theme.Correct.Render("yes"))
		} else {
			fmt.Fprintf(&b, "Success:   %s\n", theme.Incorrect.Render("no"))
			fmt.Fprintf(&b, "Error:     %s\n", e.ErrorMessage)
		}

		writeBody(&b, "Request", e.RequestBody)
		writeBody(&b, "Response", e.ResponseBody)
		lipgloss.Print(b.String())
		return nil
	},
}

func writeBody(b *strings.Builder, title, body string) {
	b.WriteString("\n")
	b.WriteString(theme.Section.Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", 60)))
	b.WriteString("\n")
	if body == "" {
		b.WriteString(theme.Hint.Render("(not captured)"))
	} else {
		b.WriteString(body)
	}
	b.WriteString("\n")
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage by purpose and estimated cost by model",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		events := env.store.EventRepo()
		stats, err := events.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		byPurpose := usageTable(1, "Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
		var calls, in, out int
		for _, st := range stats {
			byPurpose.Row(st.Purpose,
				strconv.Itoa(st.Calls),
				strconv.Itoa(st.InputTokens),
				strconv.Itoa(st.OutputTokens),
				strconv.Itoa(st.InputTokens+st.OutputTokens),
				strconv.FormatInt(st.AvgLatencyMs, 10))
			calls += st.Calls
			in += st.InputTokens
			out += st.OutputTokens
		}
		byPurpose.Row("TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), strconv.Itoa(in+out), "")

		lipgloss.Println(theme.Section.Render("Usage by purpose"))
		lipgloss.Println(byPurpose.String())

		models, err := events.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(models) == 0 {
			return nil
		}

		byModel := usageTable(1, "Model", "Calls", "Input", "Output", "Cost")
		var totalCost float64
		var unknown []string
		for _, mu := range models {
			cost := "?"
			if pricing := llm.LookupCost(mu.Model); pricing != nil {
				c := pricing.Cost(mu.InputTokens, mu.OutputTokens)
				totalCost += c
				cost = formatCost(c)
			} else {
				unknown = append(unknown, mu.Model)
			}
			byModel.Row(truncate(mu.Model, 32),
				strconv.Itoa(mu.Calls),
				strconv.Itoa(mu.InputTokens),
				strconv.Itoa(mu.OutputTokens),
				cost)
		}
		label := "TOTAL"
		if len(unknown) > 0 {
			label = "TOTAL (partial)"
		}
		byModel.Row(label, "", "", "", formatCost(totalCost))

		fmt.Println()
		lipgloss.Println(theme.Section.Render("Estimated cost (USD)"))
		lipgloss.Println(byModel.String())
		if len(unknown) > 0 {
			fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
		}
		return nil
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (question-gen, refine, answer-eval)")
	llmListCmd.Flags().Duration("since", 0, "Only show events newer than this, e.g. 24h")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
