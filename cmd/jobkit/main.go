// Package main provides the entry point for the job package generator CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobkit",
	Short: "Job application package generator",
	Long:  "Jobkit generates a tailored resume, cover letter, and short answers for a job posting using a local language model, validates them against guardrails, and writes a versioned package to disk.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
