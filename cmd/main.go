package main

import (
	"os"

	"github.com/soundprediction/embedlink/cmd/embedlink"
)

func main() {
	if err := embedlink.Execute(); err != nil {
		os.Exit(1)
	}
}
