package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"quill/cmd/fx/account_fx"
	"quill/cmd/fx/compose_fx"
	"quill/cmd/fx/config_fx"
	"quill/cmd/fx/controllers_fx"
	"quill/cmd/fx/db_fx"
	"quill/cmd/fx/document_fx"
	"quill/cmd/fx/export_fx"
	"quill/cmd/fx/llm_fx"
	"quill/cmd/fx/memcache_fx"
	"quill/cmd/fx/payment_service_fx"
	"quill/cmd/fx/persona_fx"
	"quill/cmd/fx/storage_fx"
	"quill/internal/config"
	"quill/internal/infra"
)

func main() {
	root := &cobra.Command{
		Use:          "quill",
		Short:        "Marketing copy writing assistant API",
		SilenceUsage: true,
	}
	serve := serveCmd()
	root.RunE = serve.RunE
	root.AddCommand(serve, migrateCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(
				config_fx.Module,
				fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
					return &fxevent.ZapLogger{Logger: log.Named("fx")}
				}),
				db_fx.Module,
				memcache_fx.Module,
				storage_fx.Module,
				llm_fx.Module,
				account_fx.Module,
				document_fx.Module,
				persona_fx.Module,
				compose_fx.Module,
				export_fx.Module,
				payment_service_fx.Module,
				controllers_fx.Module,

				fx.Invoke(StartServer),
			)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log, err := infra.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			db, err := infra.InitPostgresql(ctx, cfg, log)
			if err != nil {
				return err
			}
			if db == nil {
				return errors.New("DATABASE_URL is required to migrate")
			}
			defer infra.ClosePostgresql(db, log)

			if err := infra.Migrate(ctx, db); err != nil {
				log.Error("migration failed", zap.Error(err))
				return err
			}
			log.Info("migration complete")
			return nil
		},
	}
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
