package main

import (
	"os"

	"github.com/agenthands/cscan/cmd/cscan/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		os.Exit(1)
	}
}
