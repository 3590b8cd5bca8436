// Package main provides the entry point for the resume relevance CLI
// and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "relevance_agent",
	Short: "Resume relevance scoring engine",
	Long:  "Relevance Agent scores how well candidate resumes match job descriptions, producing weighted component scores, verdicts, skill-gap analysis and narrative feedback.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
