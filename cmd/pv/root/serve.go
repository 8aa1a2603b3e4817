package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vova2plova/Progressivity/internal/api"
	"github.com/vova2plova/Progressivity/internal/engine"
	"github.com/vova2plova/Progressivity/internal/storage"
	"github.com/vova2plova/Progressivity/pkg/config"
	"github.com/vova2plova/Progressivity/pkg/logger"
)

func newServeCmd() *cobra.Command {
	var seedDemo bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API for the web client. Configuration comes from the
environment: SERVER_PORT, STORE_DRIVER (sqlite|memory), PV_DB_PATH,
LOG_LEVEL, SEED_DEMO, OWNER_ID.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.Log.Level)

			var store storage.Store
			switch cfg.Store.Driver {
			case "memory":
				store = storage.NewMemoryStore()
			default:
				path := cfg.Store.Path
				if path == "" {
					path, err = storage.ResolveDBPath()
					if err != nil {
						return err
					}
				}
				store, err = storage.OpenSQLite(ctx, path)
				if err != nil {
					return err
				}
			}
			defer func() { _ = store.Close() }()

			svc := engine.NewService(store)
			if seedDemo || cfg.Store.SeedDemo {
				if err := svc.Seed(ctx, cfg.OwnerID); err != nil {
					return err
				}
				log.Info("seeded demo data", "owner", cfg.OwnerID)
			}

			log.Info("starting progressivity",
				"port", cfg.Server.Port,
				"store", cfg.Store.Driver,
				"log_level", cfg.Log.Level,
			)
			return api.Serve(ctx, svc, cfg.OwnerID, cfg.Server.Port, log)
		},
	}

	cmd.Flags().BoolVar(&seedDemo, "seed", false, "Seed demo data before serving")

	return cmd
}
