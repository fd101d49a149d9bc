package main

import (
	"os"

	"github.com/good-yellow-bee/innohub/cmd/innoctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
