package main

import (
	"os"

	"github.com/aayushsolanki40/report-pilot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
