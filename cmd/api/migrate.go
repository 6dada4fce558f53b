package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yigit/studentsvc/internal/bootstrap"
	"github.com/yigit/studentsvc/internal/db"
)

func makeMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context())
		},
	}
}

func runMigrate(ctx context.Context) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}

	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return err
	}
	defer database.Close()

	return bootstrap.RunMigrations(ctx, database.Pool, lgr)
}
