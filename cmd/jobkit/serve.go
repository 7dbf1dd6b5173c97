package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobkit/internal/config"
	"github.com/jonathan/jobkit/internal/llm"
	"github.com/jonathan/jobkit/internal/server"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for generating and listing job packages.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	var cfg config.Config
	if serveConfigPath != "" {
		loadedCfg, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		Provider:  string(llm.ProviderOllama),
		OutputDir: "job-packages",
	})
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	srv, err := server.New(server.Config{
		Port:                servePort,
		Provider:            cfg.Provider,
		Model:               cfg.Model,
		OllamaHost:          cfg.OllamaHost,
		GeminiAPIKey:        geminiKey(cfg),
		OutputDir:           cfg.OutputDir,
		MaxArtifactAttempts: cfg.MaxArtifactAttempts,
		TransportRetries:    cfg.TransportRetries,
		CompletionTimeout:   time.Duration(cfg.CompletionTimeoutSeconds) * time.Second,
		DatabaseURL:         cfg.DatabaseURL,
		Verbose:             cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
