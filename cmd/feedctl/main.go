package main

import (
	"fmt"
	"os"

	"github.com/Kalefullycode/roots-tech-news-sub000/cmd/feedctl/internal/commands"
)

var version = "dev"

func main() {
	if err := commands.NewRootCommand(commands.DefaultOptions(version)).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
