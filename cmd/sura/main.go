package main

import (
	"os"

	"github.com/esabling477/sura-trading/cmd/sura/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
