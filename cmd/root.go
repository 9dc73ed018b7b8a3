package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "yoru",
	Short: "RAG chatbot over your course notes",
	Long: `Yoru ingests course notes into a semantic vector index and answers
student questions strictly from that material. It can send whole notes
files on request, answer academic questions with grounded citations,
and serve everything over HTTP.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// API keys conventionally live in a local .env file.
		_ = godotenv.Load()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".yoru.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
