package main

import (
	"os"

	"github.com/migranta/oraudit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
