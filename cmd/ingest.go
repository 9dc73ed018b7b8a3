package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashikiranbs2006/yoru-chatbot/internal/indexer"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/progress"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/vectordb"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [docs.json]",
	Short: "Chunk, embed, and index an extracted-documents file",
	Long: `Reads a JSON array of {name, text} documents (the output of the PDF
text extractor), splits each into overlapping chunks, embeds them, and
writes the vectors into the persistent index.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	store, err := vectordb.NewChromemStore(cfg.Collection, embedder)
	if err != nil {
		return fmt.Errorf("creating vector store: %w", err)
	}

	// Re-ingesting over an existing index is safe: chunk ids are
	// content-addressed, so unchanged chunks overwrite themselves.
	if err := store.Load(ctx, cfg.DataDir); err == nil && store.Count() > 0 {
		fmt.Printf("Loaded existing index with %d chunks\n", store.Count())
	}

	reporter := progress.NewReporter()
	pipeline := indexer.NewPipeline(embedder, store, cfg)

	started := false
	pipeline.SetProgressFunc(func(processed, total int, chunkID string) {
		if !started {
			reporter.Start(total)
			started = true
		}
		reporter.Update(processed, fmt.Sprintf("Embedding %s", chunkID))
	})

	result, err := pipeline.Run(ctx, args[0])
	if started {
		reporter.Finish()
	}
	if err != nil {
		return err
	}

	fmt.Printf("Ingestion complete: %d documents (%d skipped), %d chunks in %d batches, %s\n",
		result.DocsLoaded, result.DocsSkipped, result.ChunksTotal, result.BatchesSent, result.Duration.Round(time.Millisecond))
	return nil
}
