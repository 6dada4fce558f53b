package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yigit/studentsvc/internal/config"
	"github.com/yigit/studentsvc/internal/pkg/logger"
)

// @title Student Records API
// @version 1.0
// @description CRUD API for student records: name, age, semester grades, teacher and room.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http

var configPath string

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "studentsvc",
		Short: "Student records service",
		// Running without a subcommand starts the server
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the YAML config file")

	rootCmd.AddCommand(makeServeCommand())
	rootCmd.AddCommand(makeMigrateCommand())
	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// Use the default logger setup by the logger package's init
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
