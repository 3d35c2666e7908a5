package main

import (
	"os"

	"github.com/bianoble/skin-studio/cmd/skin-studio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
