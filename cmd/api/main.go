package main

import (
	"os"

	"coin-wallet-service/cmd/api/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
