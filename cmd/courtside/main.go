package main

import (
	"os"

	"github.com/courtside-app/courtside/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
