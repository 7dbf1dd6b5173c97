package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobkit/internal/packaging"
)

var (
	packagesDir   string
	packagesLimit int
)

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "List generated job packages",
	Long:  `Lists complete job packages in the output directory, newest first.`,
	RunE:  runPackages,
}

func init() {
	packagesCmd.Flags().StringVarP(&packagesDir, "output", "o", "job-packages", "Output directory to list")
	packagesCmd.Flags().IntVarP(&packagesLimit, "limit", "n", 10, "Maximum number of packages to show (0 for all)")
	rootCmd.AddCommand(packagesCmd)
}

func runPackages(_ *cobra.Command, _ []string) error {
	entries, err := packaging.ListPackages(packagesDir, packagesLimit)
	if err != nil {
		return fmt.Errorf("failed to list packages: %w", err)
	}
	if len(entries) == 0 {
		fmt.Printf("No packages found in %s\n", packagesDir)
		return nil
	}

	for _, entry := range entries {
		meta := entry.Meta
		fmt.Printf("%s\n", meta.ID)
		fmt.Printf("  %s at %s, fit %.0f/100 (%s)\n", meta.Title, meta.Company, meta.FitScore, meta.FitLabel)
		fmt.Printf("  created %s, model %s\n", meta.CreatedAt.Format("2006-01-02 15:04"), meta.Model)
	}
	return nil
}
