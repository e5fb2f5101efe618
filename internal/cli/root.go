// Package cli implements the planner command line: a server mode and a
// one-shot planning mode.
package cli

import (
	"github.com/spf13/cobra"

	"taskplanner/internal/config"
	"taskplanner/pkg/provider"
)

var configPath string

// rootCmd is the root command for planner.
var rootCmd = &cobra.Command{
	Use:     "planner",
	Version: "dev",
	Short:   "AI-powered task planner",
	Long: `planner breaks free-text goals into validated, dependency-ordered
project plans: tasks with estimated effort, priority, deadlines, and a
computed critical path.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// SetVersion overrides the build version shown by --version.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to HCL config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(planCmd)
}

// loadGenerator builds the configured generation backend.
func loadGenerator(cfg *config.Config) (provider.Generator, error) {
	return provider.New(provider.Options{
		Kind:   cfg.Provider.Kind,
		Model:  cfg.Provider.Model,
		APIKey: cfg.Provider.APIKey,
	})
}
