package cmd

import (
	"fmt"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/skilleval/internal/blueprint"
	"github.com/abhisek/skilleval/internal/reportview"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Create and inspect requirement profiles",
}

var profileCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a requirement profile from flags or a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profileFromFlags(cmd)
		if err != nil {
			return err
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
		created, err := svc.CreateProfile(ctx, env.user, p)
		if err != nil {
			return fmt.Errorf("create profile: %w", err)
		}

		lipgloss.Println(reportview.Profile(created))
		fmt.Printf("\nNext: skilleval generate %s\n", created.ID)
		return nil
	},
}

// profileFromFlags reads --file when given, then lets individual flags
// override its fields.
func profileFromFlags(cmd *cobra.Command) (blueprint.Profile, error) {
	var p blueprint.Profile
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return p, fmt.Errorf("read profile file: %w", err)
		}
		if err := yaml.Unmarshal(data, &p); err != nil {
			return p, fmt.Errorf("parse profile file: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("role") {
		p.Role, _ = flags.GetString("role")
	}
	if flags.Changed("level") || p.Level == "" {
		level, _ := flags.GetString("level")
		p.Level = blueprint.Level(strings.ToLower(level))
	}
	if flags.Changed("stack") {
		p.TechStack, _ = flags.GetStringSlice("stack")
	}
	if flags.Changed("types") || len(p.QuestionTypes) == 0 {
		types, _ := flags.GetStringSlice("types")
		p.QuestionTypes = blueprint.ParseQuestionTypes(types)
	}
	if flags.Changed("duration") || p.Duration == 0 {
		p.Duration, _ = flags.GetInt("duration")
	}
	if flags.Changed("refine") {
		p.Refinement, _ = flags.GetString("refine")
	}
	return p, nil
}

var profileShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a requirement profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		p, err := env.store.ProfileRepo().Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		lipgloss.Println(reportview.Profile(p))
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the current user's profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		profiles, err := env.store.ProfileRepo().ListByUser(cmd.Context(), env.user)
		if err != nil {
			return fmt.Errorf("list profiles: %w", err)
		}
		if len(profiles) == 0 {
			fmt.Println("No profiles yet. Create one with `skilleval profile create` or `skilleval template use`.")
			return nil
		}

		fmt.Printf("%-36s  %-28s  %-7s  %-5s  %s\n", "ID", "Role", "Level", "Min", "Stack")
		fmt.Println(strings.Repeat("─", 100))
		for _, p := range profiles {
			fmt.Printf("%-36s  %-28s  %-7s  %-5d  %s\n",
				p.ID, truncate(p.Role, 28), p.Level, p.Duration, strings.Join(p.TechStack, ", "))
		}
		return nil
	},
}

func init() {
	f := profileCreateCmd.Flags()
	f.StringP("file", "f", "", "YAML profile file (role, experience_level, tech_stack, question_types, duration, refinement)")
	f.String("role", "", "Target role, e.g. \"Backend Developer\"")
	f.String("level", string(blueprint.LevelMid), "Experience level: junior, mid or senior")
	f.StringSlice("stack", nil, "Technologies to assess, comma separated")
	f.StringSlice("types", []string{"mcq", "theory"}, "Question types: mcq, coding, theory, scenario")
	f.Int("duration", 30, "Assessment length in minutes (15-180)")
	f.String("refine", "", "Free-text guidance for question generation")

	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileListCmd)
}
