package cli

import (
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"taskplanner/internal/api"
	"taskplanner/internal/config"
	"taskplanner/internal/db"
	"taskplanner/pkg/plan"
	"taskplanner/pkg/planner"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the planning API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		gen, err := loadGenerator(cfg)
		if err != nil {
			return fmt.Errorf("configure provider: %w", err)
		}
		log.Printf("planner: provider %q", cfg.Provider.Kind)

		ctx := cmd.Context()
		var store plan.Store
		if cfg.Database.URL != "" {
			pool, err := db.Connect(ctx, cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer pool.Close()

			pg := plan.NewPgStore(pool)
			if err := pg.EnsureTables(ctx); err != nil {
				return fmt.Errorf("ensure tables: %w", err)
			}
			store = pg
		} else {
			log.Printf("planner: no database configured, plans are in-memory only")
			store = plan.NewMemStore()
		}

		server := api.New(planner.New(gen), store)
		log.Printf("planner: listening on %s", cfg.Server.Listen)
		return http.ListenAndServe(cfg.Server.Listen, server)
	},
}
