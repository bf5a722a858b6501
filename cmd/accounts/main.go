package main

import (
	"os"

	"accounts-server/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(cli.DefaultDeps()).Execute(); err != nil {
		os.Exit(1)
	}
}
