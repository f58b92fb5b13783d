package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/skilleval/internal/reportview"
)

var generateCmd = &cobra.Command{
	Use:   "generate <profile-id>",
	Short: "Generate the test for a profile",
	Long: "Generate the test for a profile. A profile has at most one test; " +
		"running generate again shows the existing one.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		svc, err := env.service(ctx, serviceOpts{generate: true})
		if err != nil {
			return err
		}

		test, created, err := svc.GenerateTest(ctx, args[0])
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(test)
		}

		if !created {
			fmt.Println("Profile already has a test.")
			fmt.Println()
		}
		lipgloss.Println(reportview.TestOverview(test, reportview.DefaultWidth))
		fmt.Printf("\nNext: skilleval attempt take %s\n", test.ID)
		return nil
	},
}

func init() {
	generateCmd.Flags().Bool("json", false, "Print the full test, including answers, as JSON")
}
