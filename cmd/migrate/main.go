package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"interview-agent/internal/config"
	"interview-agent/internal/database"
	"interview-agent/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		logger.Get().Error("Migration command failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the interview records schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.DB.Driver, "driver", cfg.DB.Driver, "database driver (sqlite or oracle)")
	root.PersistentFlags().StringVar(&cfg.DB.DSN, "dsn", cfg.DB.DSN, "database connection string")

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, dialect, err := database.Open(cmd.Context(), cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(cmd.Context(), db, dialect); err != nil {
				return err
			}
			logger.Get().Info("Schema is up to date", zap.String("driver", dialect.Name))
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List applied migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, _, err := database.Open(cmd.Context(), cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := database.AppliedMigrations(cmd.Context(), db)
			if err != nil {
				return err
			}
			done := make(map[int]bool, len(applied))
			out := cmd.OutOrStdout()
			for _, m := range applied {
				done[m.Version] = true
				fmt.Fprintf(out, "%4d  %-32s applied %s\n", m.Version, m.Name, m.AppliedAt.Format("2006-01-02 15:04:05"))
			}
			for _, m := range database.Migrations {
				if !done[m.Version] {
					fmt.Fprintf(out, "%4d  %-32s pending\n", m.Version, m.Name)
				}
			}
			return nil
		},
	})

	return root
}
