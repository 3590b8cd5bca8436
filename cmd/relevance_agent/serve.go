package main

import (
	"github.com/spf13/cobra"

	"github.com/vivekkumar2004/resume-relevance/internal/config"
	"github.com/vivekkumar2004/resume-relevance/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Start the REST API server exposing evaluation, batch ranking, keyword mining, skill-gap and feedback endpoints.",
	RunE:  runServe,
}

var (
	serveConfigFile  string
	servePort        int
	serveAPIKey      string
	serveDatabaseURL string
)

func init() {
	serveCmd.Flags().StringVarP(&serveConfigFile, "config", "c", "", "Path to JSON config file")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(serveConfigFile, config.Config{
		Port:        servePort,
		APIKey:      serveAPIKey,
		DatabaseURL: serveDatabaseURL,
	})
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		DatabaseURL:    cfg.DatabaseURL,
		APIKey:         cfg.APIKey,
		EmbeddingModel: cfg.EmbeddingModel,
		Weights:        weightsFrom(cfg),
	})
	if err != nil {
		return err
	}

	return srv.Start()
}
