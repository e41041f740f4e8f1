package main

import (
	"fmt"
	"os"

	"github.com/fekuna/kitmed-catalog-service/config"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	envFile string

	cfg       *config.Config
	appLogger logger.ZapLogger
)

var rootCmd = &cobra.Command{
	Use:   "kitmed",
	Short: "KITMED catalog service",
	Long: `kitmed runs the KITMED medical-equipment catalog: the public catalog
and RFP cart API, the admin back-office API and its maintenance tasks.

Configuration is read from the environment (and an optional .env file).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Configuration
		if err := godotenv.Load(envFile); err != nil && envFile != ".env" {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
		var err error
		cfg, err = config.LoadEnv()
		if err != nil {
			return err
		}

		// 2. Initialize Logger
		logConfig := &logger.ZapLoggerConfig{
			IsDevelopment:     false,
			Encoding:          cfg.Logger.Encoding,
			Level:             cfg.Logger.Level,
			DisableCaller:     cfg.Logger.DisableCaller,
			DisableStacktrace: cfg.Logger.DisableStacktrace,
			FilePath:          cfg.Logger.FilePath,
			MaxSize:           cfg.Logger.MaxSize,
			MaxBackups:        cfg.Logger.MaxBackups,
			MaxAge:            cfg.Logger.MaxAge,
		}
		if cfg.IsDevelopment() {
			logConfig.IsDevelopment = true
			logConfig.Encoding = "console"
			logConfig.Level = "debug"
		}
		if verbose {
			logConfig.Level = "debug"
		}
		appLogger = logger.NewZapLogger(logConfig)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appLogger != nil {
			_ = appLogger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	rootCmd.AddCommand(serveCmd, migrateCmd, importCmd, createAdminCmd, reindexCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
