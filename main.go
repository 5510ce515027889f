package main

import (
	"os"

	"github.com/shawnthye/swift-palette/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
