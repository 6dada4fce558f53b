package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yigit/studentsvc/internal/pkg/logger"
	"github.com/yigit/studentsvc/internal/server"
)

func makeServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	srv, err := server.NewServer(ctx, configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		return err
	}

	logger.Info().Msg("Application finished gracefully.")
	return nil
}
