// Package main applies or rolls back the embedded postgres migrations.
package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/pageza/chefcourse/backend/config"
	"github.com/pageza/chefcourse/backend/internal/database"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the database schema",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&dsn, "db", os.Getenv("DATABASE_URL"),
		"Postgres connection URL (defaults to DATABASE_URL, then DB_* settings)")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, log, err := connect(dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := database.MigrateUp(cmd.Context(), db, log)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Println("No pending migrations")
				return nil
			}
			for _, name := range applied {
				fmt.Printf("Applied %s\n", name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rollback",
		Short: "Roll back the last applied migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, log, err := connect(dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			name, err := database.Rollback(cmd.Context(), db, log)
			if errors.Is(err, database.ErrNoMigrations) {
				fmt.Println("No migrations to rollback")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("Rolled back %s\n", name)
			return nil
		},
	})
	return cmd
}

// connect opens dsn, or the DSN built from the usual configuration when dsn
// is empty.
func connect(dsn string) (*sql.DB, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if dsn == "" {
		if err != nil {
			return nil, nil, fmt.Errorf("load config: %w", err)
		}
		dsn = cfg.PostgresDSN()
	}
	if cfg == nil {
		cfg = &config.Config{LogLevel: "info", LogFormat: "text"}
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, config.NewLogger(cfg, os.Stderr), nil
}
