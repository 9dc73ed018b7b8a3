package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashikiranbs2006/yoru-chatbot/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter .yoru.yml config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil {
			return fmt.Errorf("%s already exists; remove it first to re-initialize", cfgFile)
		}

		cfg := config.DefaultConfig()
		if err := cfg.Save(cfgFile); err != nil {
			return err
		}

		fmt.Printf("Wrote %s\n", cfgFile)
		fmt.Println("Set GEMINI_API_KEY (or OPENAI_API_KEY) and run `yoru ingest <docs.json>`.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
