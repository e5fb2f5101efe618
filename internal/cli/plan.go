package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"taskplanner/internal/config"
	"taskplanner/pkg/plan"
	"taskplanner/pkg/planner"
)

var jsonOutput bool

var (
	titleColor    = color.New(color.FgCyan, color.Bold)
	priorityColor = map[string]*color.Color{
		plan.PriorityLow:      color.New(color.FgHiBlack),
		plan.PriorityMedium:   color.New(color.FgBlue),
		plan.PriorityHigh:     color.New(color.FgYellow),
		plan.PriorityCritical: color.New(color.FgRed, color.Bold),
	}
)

var planCmd = &cobra.Command{
	Use:   "plan <goal>",
	Short: "Create a plan for a goal and print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		gen, err := loadGenerator(cfg)
		if err != nil {
			return fmt.Errorf("configure provider: %w", err)
		}

		p, err := planner.New(gen).CreatePlan(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		}
		printPlan(p)
		return nil
	},
}

func init() {
	planCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the plan as JSON")
}

func printPlan(p *plan.Plan) {
	titleColor.Println(p.Title)
	fmt.Println(p.Description)
	fmt.Printf("Estimated duration: %d days\n\n", p.EstimatedDurationDays)

	for i, t := range p.Tasks {
		pc, ok := priorityColor[t.Priority]
		if !ok {
			pc = priorityColor[plan.PriorityMedium]
		}
		fmt.Printf("%2d. %s [%s, %.1fh, day %d]\n", i, t.Title, pc.Sprint(t.Priority), t.EstimatedHours, t.DeadlineDays)
		if len(t.Dependencies) > 0 {
			fmt.Printf("    depends on: %s\n", joinInts(t.Dependencies))
		}
	}

	if path := plan.CriticalPath(p.Tasks); len(path) > 0 {
		fmt.Printf("\nCritical path: %s\n", joinInts(path))
	}
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, " -> ")
}
