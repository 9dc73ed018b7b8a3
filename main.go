package main

import (
	"os"

	"github.com/shashikiranbs2006/yoru-chatbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
