package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashikiranbs2006/yoru-chatbot/internal/catalog"
)

var treeOutput string

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Build the library tree from the file catalog",
	Long: `Derives the nested folder/file library view from the flat file catalog.
Prints it to stdout, or writes it to a file with --output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cat, err := catalog.Load(cfg.CatalogFile)
		if err != nil {
			return err
		}

		if treeOutput != "" {
			if err := cat.WriteTree(treeOutput); err != nil {
				return err
			}
			fmt.Printf("Wrote library tree for %d files to %s\n", cat.Len(), treeOutput)
			return nil
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cat.Tree())
	},
}

func init() {
	treeCmd.Flags().StringVarP(&treeOutput, "output", "o", "", "write the tree to a file instead of stdout")
	rootCmd.AddCommand(treeCmd)
}
