package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashikiranbs2006/yoru-chatbot/internal/catalog"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/chat"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/vectordb"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one question from the command line",
	Long:  `Runs a single question through the full chat pipeline and prints the answer, without starting the HTTP server.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().Bool("json", false, "output the full response as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	jsonOutput, _ := cmd.Flags().GetBool("json")

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
	if err := store.Load(ctx, cfg.DataDir); err != nil {
		return fmt.Errorf("loading vector store from %s: %w\nRun `yoru ingest` first to build the index", cfg.DataDir, err)
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

	resp := engine.Respond(ctx, args[0])

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Println(resp.Answer)
	if resp.SourceLabel != nil {
		fmt.Printf("\nSource: %s", *resp.SourceLabel)
		if resp.SourceLink != nil {
			fmt.Printf(" (%s)", *resp.SourceLink)
		}
		fmt.Println()
	}
	return nil
}
