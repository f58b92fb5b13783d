package cmd

import (
	"fmt"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/skilleval/internal/blueprint"
	"github.com/abhisek/skilleval/internal/reportview"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Browse and use built-in profile templates",
}

// loadCatalog returns the catalog from --catalog, or the built-in one.
func loadCatalog(cmd *cobra.Command) (*blueprint.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		return blueprint.Builtin()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return blueprint.LoadCatalog(f)
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		role, _ := cmd.Flags().GetString("role")

		catalog, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		templates := catalog.Search(search, role)
		if len(templates) == 0 {
			fmt.Println("No matching templates.")
			return nil
		}

		fmt.Printf("%-24s  %-28s  %-7s  %-5s  %s\n", "Name", "Role", "Level", "Min", "Stack")
		fmt.Println(strings.Repeat("─", 100))
		for _, t := range templates {
			fmt.Printf("%-24s  %-28s  %-7s  %-5d  %s\n",
				t.Name, truncate(t.Role, 28), t.Level, t.Duration, strings.Join(t.TechStack, ", "))
		}
		return nil
	},
}

var templateUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Create a profile from a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		t, ok := catalog.Get(args[0])
		if !ok {
			return fmt.Errorf("template %q not found; see `skilleval template list`", args[0])
		}

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
		created, err := svc.CreateProfile(ctx, env.user, t.Instantiate(env.user))
		if err != nil {
			return fmt.Errorf("create profile: %w", err)
		}

		lipgloss.Println(reportview.Profile(created))
		fmt.Printf("\nNext: skilleval generate %s\n", created.ID)
		return nil
	},
}

func init() {
	templateCmd.PersistentFlags().String("catalog", "", "YAML template catalog to use instead of the built-in one")

	templateListCmd.Flags().StringP("search", "s", "", "Match role or technology")
	templateListCmd.Flags().String("role", "", "Match role")

	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateUseCmd)
}
