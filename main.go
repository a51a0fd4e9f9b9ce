package main

import (
	"os"

	"github.com/machinae/jrpc-go/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
