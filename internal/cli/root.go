package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"docqa/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Document search and question answering over named indexes",
	Long: `docqa indexes documents (typed text, uploaded files, scraped URLs) into
named collections and answers questions by BM25 retrieval plus an OpenAI
completion.

Example usage:
  docqa serve                      # Run the HTTP API
  docqa ingest ./docs --index kb   # Bulk-ingest a folder`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; production sets real environment variables.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("skipping .env: %v", err)
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "docqa.yaml", "config file")
}
