package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashikiranbs2006/yoru-chatbot/internal/catalog"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/chat"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/server"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/vectordb"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the notes assistant HTTP server",
	Long:  `Starts the yoru HTTP server exposing the chat, retrieval probe, file lookup, and library tree endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort != 0 {
			cfg.Port = servePort
		}

		embedder, err := createEmbedderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		store, err := vectordb.NewChromemStore(cfg.Collection, embedder)
		if err != nil {
			return fmt.Errorf("creating vector store: %w", err)
		}
		if err := store.Load(context.Background(), cfg.DataDir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load vector store from %s: %v\n", cfg.DataDir, err)
			fmt.Fprintf(os.Stderr, "Answers will be empty. Run `yoru ingest` first.\n")
		}

		cat, err := catalog.Load(cfg.CatalogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load catalog %s: %v\n", cfg.CatalogFile, err)
			cat = catalog.New(nil)
		}

		llmProvider, err := createLLMProviderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}

		classifier := chat.NewClassifier(llmProvider, cfg.Model)
		answerer := chat.NewAnswerer(embedder, store, llmProvider, cfg.Model, cfg.TopK)
		engine := chat.NewEngine(classifier, answerer, llmProvider, cfg.Model, cat, cfg.Subjects)

		srv := server.New(server.Config{
			Port:     cfg.Port,
			FilesDir: cfg.FilesDir,
			AllowAll: true,
		}, engine, embedder, store, cat)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "yoru server v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Chunks indexed: %d\n", store.Count())
		fmt.Fprintf(os.Stderr, "  Catalog entries: %d\n", cat.Len())

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
