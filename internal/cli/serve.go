package cli

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"docqa/internal/adapter/analyzer"
	"docqa/internal/adapter/chunker"
	"docqa/internal/adapter/extract"
	"docqa/internal/adapter/fs"
	"docqa/internal/adapter/llm"
	"docqa/internal/adapter/retriever"
	"docqa/internal/adapter/store"
	"docqa/internal/server"
	"docqa/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Start the HTTP server exposing document save/get/delete/list/search,
question answering, URL scanning, and file upload per index.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.OpenAI.APIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set - ask requests will fail at the completion call")
	}

	addr := cfg.Server.Addr
	if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
		addr = flagAddr
	}

	if err := os.MkdirAll(cfg.Store.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	registry := store.NewRegistry(cfg.Store.DataDir)
	defer registry.Close()

	tokenizer := analyzer.NewTokenizer(cfg.Index.Stemming)
	bm25 := retriever.NewBM25Retriever(tokenizer, cfg.Index.K1, cfg.Index.B)
	wordChunker := chunker.NewWordChunker(cfg.Index.ChunkWords, cfg.Index.CleanHeaderFooter)
	walker := fs.NewWalker(cfg.Index.Includes, cfg.Index.Excludes)
	generator := llm.NewOpenAIGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Timeout)
	extractor := extract.NewHTMLExtractor(cfg.Scan.FetchTimeout)

	ingestUC := usecase.NewIngestUseCase(registry, wordChunker, tokenizer, walker)
	askUC := usecase.NewAskUseCase(registry, bm25, generator, cfg.Retrieve.TopK, cfg.Ask.WordBudget)

	srv := server.NewServer(registry, ingestUC, askUC, extractor, cfg.Store.DataDir)

	log.Printf("docqa listening on %s (data dir %s)", addr, cfg.Store.DataDir)
	if err := http.ListenAndServe(addr, srv.Routes()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
