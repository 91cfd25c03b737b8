package main

import (
	"os"

	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
