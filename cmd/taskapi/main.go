package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AlibekovAA/task-manager/internal/common/bootstrap"
	"github.com/AlibekovAA/task-manager/internal/common/config"
	"github.com/AlibekovAA/task-manager/internal/common/db"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
	srv "github.com/AlibekovAA/task-manager/internal/common/server"
)

const serviceName = "taskapi"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Multi-tenant task management API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.LogDir, serviceName, cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer log.Close()

			ctx := cmd.Context()

			if migrate && cfg.StoreDriver == config.StoreDriverPostgres {
				if err := runMigrations(ctx, log, cfg.DatabaseURL, db.MigrateUp); err != nil {
					return err
				}
			}

			app, err := bootstrap.NewApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer app.Close()

			server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), app.Handler)

			return srv.Run(ctx, server, log, func(ctx context.Context) error {
				log.Info("stopping auth rate limiter")
				app.AuthLimiter.Stop()
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Manage the database schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(db.MigrateUp), string(db.MigrateDown), string(db.MigrateStatus)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadMigrate()
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.LogDir, serviceName, cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer log.Close()

			return runMigrations(cmd.Context(), log, cfg.DatabaseURL, db.MigrateCommand(args[0]))
		},
	}
	return cmd
}

func runMigrations(ctx context.Context, log *logger.Logger, databaseURL string, command db.MigrateCommand) error {
	sqlDB, err := db.OpenSQL(databaseURL)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return db.Migrate(ctx, log, sqlDB, command)
}
