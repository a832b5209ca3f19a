package main

import (
	"os"

	"github.com/stacksolutions/estimator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
