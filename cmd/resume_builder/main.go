// Package main provides the resume_builder CLI and REST API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/logging"
)

var (
	// Global flags
	configPath string
	logLevel   string
	devLog     bool

	// Set by PersistentPreRunE
	appConfig *config.Config
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Resume builder CLI and REST API server",
	Long: `resume_builder edits, versions, renders and exports resumes.

The live resume, saved versions, cover letters and tracked applications are
kept in one store (sqlite by default). Use "serve" to expose them over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		appConfig = cfg

		level := cfg.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		logger, err = logging.New(level, devLog)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&devLog, "dev-log", false, "Human-readable console logs")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
