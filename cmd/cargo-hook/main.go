package main

import (
	"os"

	"github.com/bianoble/cargo-hook/cmd/cargo-hook/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
