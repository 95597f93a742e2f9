package main

import (
	"fmt"
	"os"

	"todo/internal/cli"
)

func main() {
	factory := NewBackendFactory(getEnvironment())

	root := cli.NewRootCommand(factory.Open)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
