package main

import (
	"fmt"
	"os"

	"github.com/example/projstate/internal/cli"
)

func main() {
	rootCmd := cli.RootCmd()
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
