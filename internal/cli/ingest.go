package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"docqa/internal/adapter/analyzer"
	"docqa/internal/adapter/chunker"
	"docqa/internal/adapter/fs"
	"docqa/internal/adapter/store"
	"docqa/internal/usecase"
)

var ingestIndex string

var ingestCmd = &cobra.Command{
	Use:   "ingest [folder]",
	Short: "Bulk-ingest a folder of documents into an index",
	Long: `Convert every file in the folder into bounded word chunks and write
them to the named index.

Examples:
  docqa ingest ./docs --index kb
  docqa ingest /var/export --index support`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestIndex, "index", "", "target index name (required)")
	ingestCmd.MarkFlagRequired("index")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	folder := args[0]
	info, err := os.Stat(folder)
	if err != nil {
		return fmt.Errorf("folder does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", folder)
	}

	registry := store.NewRegistry(cfg.Store.DataDir)
	defer registry.Close()

	tokenizer := analyzer.NewTokenizer(cfg.Index.Stemming)
	wordChunker := chunker.NewWordChunker(cfg.Index.ChunkWords, cfg.Index.CleanHeaderFooter)
	walker := fs.NewWalker(cfg.Index.Includes, cfg.Index.Excludes)
	ingestUC := usecase.NewIngestUseCase(registry, wordChunker, tokenizer, walker)

	files, err := walker.Walk(folder)
	if err != nil {
		return fmt.Errorf("failed to walk folder: %w", err)
	}
	if len(files) == 0 {
		fmt.Println("No files to ingest.")
		return nil
	}

	bar := progressbar.Default(int64(len(files)), "ingesting")
	total := 0
	for _, path := range files {
		chunks, err := ingestUC.IngestFile(ingestIndex, path)
		if err != nil {
			return err
		}
		total += len(chunks)
		bar.Add(1)
	}

	fmt.Printf("Ingested %d files into %q (%d chunks)\n", len(files), ingestIndex, total)
	return nil
}
