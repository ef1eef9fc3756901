package main

import (
	"os"

	"github.com/msto63/exprfront/cmd/exprfront/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
