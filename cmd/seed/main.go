// Package main seeds a database with demo users, recipes and a course.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pageza/chefcourse/backend/config"
	"github.com/pageza/chefcourse/backend/internal/database"
	"github.com/pageza/chefcourse/backend/internal/events"
	"github.com/pageza/chefcourse/backend/internal/seed"
	"github.com/pageza/chefcourse/backend/internal/service"
)

func main() {
	var password string

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Seed demo data",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := config.NewLogger(cfg, os.Stderr)

			db, err := database.Open(cfg, log)
			if err != nil {
				return err
			}
			if err := database.Migrate(cmd.Context(), db, log); err != nil {
				return err
			}

			tokens, err := service.NewTokenService(cfg.JWTSecret, time.Hour)
			if err != nil {
				return err
			}
			var nop events.NopPublisher
			_, err = seed.Run(cmd.Context(), seed.Services{
				Auth:    service.NewAuthService(db, tokens, nop, log),
				Chefs:   service.NewChefService(db, nop, log),
				Recipes: service.NewRecipeService(db, nop, log),
				Courses: service.NewCourseService(db, nop, log),
			}, password, log)
			if seed.IsAlreadySeeded(err) {
				fmt.Println("Database already seeded")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Println("Seed complete")
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", seed.DefaultPassword, "Password for every seeded account")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
