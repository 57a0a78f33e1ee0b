package main

import (
	"os"

	"github.com/wayli-app/firelens/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
