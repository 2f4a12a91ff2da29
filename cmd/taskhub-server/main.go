package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/existflow/taskhub/internal/config"
	"github.com/existflow/taskhub/internal/logger"
	"github.com/existflow/taskhub/server"
)

var (
	configPath string
	listenAddr string
	dbURL      string
	logConsole bool
)

var rootCmd = &cobra.Command{
	Use:   "taskhub-server",
	Short: "TaskHub API server",
	Long: `TaskHub is a multi-user project and task tracker. The server
exposes the HTTP API backed by SQLite or PostgreSQL.`,
	RunE: runServe,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	rootCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "Listen address (overrides config)")
	rootCmd.Flags().StringVarP(&dbURL, "database", "d", "", "Database URL or SQLite path (overrides config)")
	rootCmd.Flags().BoolVar(&logConsole, "log-console", false, "Also log to stderr")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	if cmd.Flags().Changed("log-console") {
		cfg.LogConsole = logConsole
	}

	logConfig := logger.DefaultConfig()
	logConfig.Level = logger.ParseLevel(cfg.LogLevel)
	logConfig.FilePath = cfg.LogFile
	logConfig.Console = cfg.LogConsole
	if err := logger.Init(logConfig); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Close()

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			logger.Error("Error closing server", logger.F("error", err))
		}
	}()

	logger.Info("Server starting",
		logger.F("addr", cfg.ListenAddr), logger.F("access_policy", cfg.AccessPolicy))
	fmt.Printf("TaskHub server listening on %s\n", cfg.ListenAddr)

	return srv.Start(cfg.ListenAddr)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
