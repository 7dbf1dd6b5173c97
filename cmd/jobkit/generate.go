package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobkit/internal/config"
	"github.com/jonathan/jobkit/internal/db"
	"github.com/jonathan/jobkit/internal/ingestion"
	"github.com/jonathan/jobkit/internal/llm"
	"github.com/jonathan/jobkit/internal/pipeline"
	"github.com/jonathan/jobkit/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a job application package",
	Long: `Runs the full pipeline for one job: prompt building -> completion -> validation and repair -> fit scoring -> package write.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runGenerate,
}

var (
	genConfigPath  string
	genResume      string
	genJob         string
	genJobURL      string
	genCompany     string
	genTitle       string
	genLocation    string
	genSeniority   string
	genProvider    string
	genModel       string
	genOutputDir   string
	genAttempts    int
	genRetries     int
	genTimeoutSecs int
	genUseBrowser  bool
	genVerbose     bool
	genDatabaseURL string
)

func init() {
	generateCmd.Flags().StringVar(&genConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	generateCmd.Flags().StringVarP(&genResume, "resume", "r", "", "Path to resume text file")
	generateCmd.Flags().StringVarP(&genJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	generateCmd.Flags().StringVar(&genJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	generateCmd.Flags().StringVarP(&genCompany, "company", "c", "", "Company name")
	generateCmd.Flags().StringVarP(&genTitle, "title", "t", "", "Job title")
	generateCmd.Flags().StringVar(&genLocation, "location", "", "Job location (optional)")
	generateCmd.Flags().StringVar(&genSeniority, "seniority", "", "Seniority hint: junior, mid, or senior (optional)")

	generateCmd.Flags().StringVar(&genProvider, "provider", "", "Completion provider: ollama or gemini (default ollama)")
	generateCmd.Flags().StringVarP(&genModel, "model", "m", "", "Model name (default llama3)")
	generateCmd.Flags().StringVarP(&genOutputDir, "output", "o", "", "Output directory for job packages (default job-packages)")

	generateCmd.Flags().IntVar(&genAttempts, "max-attempts", 0, "Generation attempts per artifact")
	generateCmd.Flags().IntVar(&genRetries, "transport-retries", 0, "Extra tries after a transport failure")
	generateCmd.Flags().IntVar(&genTimeoutSecs, "timeout", 0, "Per-call completion timeout in seconds")

	generateCmd.Flags().BoolVar(&genUseBrowser, "use-browser", false, "Use headless browser for SPA job pages (requires Chrome)")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print detailed debug information")
	generateCmd.Flags().StringVar(&genDatabaseURL, "db-url", "", "PostgreSQL connection URL for run history (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var cfg config.Config
	if genConfigPath != "" {
		loadedCfg, err := config.LoadConfig(genConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if genVerbose {
			fmt.Printf("Loaded config from: %s\n", genConfigPath)
		}
	}

	// CLI flags take priority over config file values.
	if cmd.Flags().Changed("resume") {
		cfg.Resume = genResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = genJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = genJobURL
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider = genProvider
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = genModel
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = genOutputDir
	}
	if cmd.Flags().Changed("max-attempts") {
		cfg.MaxArtifactAttempts = genAttempts
	}
	if cmd.Flags().Changed("transport-retries") {
		cfg.TransportRetries = genRetries
	}
	if cmd.Flags().Changed("timeout") {
		cfg.CompletionTimeoutSeconds = genTimeoutSecs
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = genUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = genVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = genDatabaseURL
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		Provider:  string(llm.ProviderOllama),
		OutputDir: "job-packages",
	})

	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}
	if genCompany == "" || genTitle == "" {
		return fmt.Errorf("--company and --title are required")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	resumeText, err := ingestion.ReadTextFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	var jobText string
	if cfg.JobURL != "" {
		fmt.Printf("Fetching job posting from %s...\n", cfg.JobURL)
		jobText, err = ingestion.FromURL(ctx, cfg.JobURL, ingestion.FetchOptions{
			UseBrowser: cfg.UseBrowser,
			Verbose:    cfg.Verbose,
		})
	} else {
		jobText, err = ingestion.ReadTextFile(cfg.Job)
	}
	if err != nil {
		return fmt.Errorf("failed to load job posting: %w", err)
	}

	client, err := llm.NewClient(ctx, &llm.Config{
		Provider: llm.Provider(cfg.Provider),
		Model:    cfg.Model,
		Host:     cfg.OllamaHost,
		APIKey:   geminiKey(cfg),
	})
	if err != nil {
		return fmt.Errorf("failed to create completion client: %w", err)
	}
	defer func() { _ = client.Close() }()

	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without run history...\n")
		} else {
			defer database.Close()
		}
	}

	opts := pipeline.RunOptions{
		Request: types.JobRequest{
			ResumeText:     resumeText,
			JobDescription: jobText,
			Company:        genCompany,
			Title:          genTitle,
			Location:       genLocation,
			SeniorityHint:  genSeniority,
		},
		Client:              client,
		OutputDir:           cfg.OutputDir,
		MaxArtifactAttempts: cfg.MaxArtifactAttempts,
		TransportRetries:    cfg.TransportRetries,
		CompletionTimeout:   time.Duration(cfg.CompletionTimeoutSeconds) * time.Second,
		Database:            database,
		Verbose:             cfg.Verbose,
	}

	pkg, err := pipeline.Generate(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Fit: %.0f/100 (%s)\n", pkg.Fit.Score, pkg.Fit.Label)
	return nil
}

// geminiKey resolves the Gemini API key from config or environment.
func geminiKey(cfg config.Config) string {
	if cfg.GeminiAPIKey != "" {
		return cfg.GeminiAPIKey
	}
	return os.Getenv("GEMINI_API_KEY")
}
