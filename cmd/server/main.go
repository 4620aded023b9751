// Package main provides the entry point for the TokenTasks server.
package main

import (
	"log"

	"tokentasks/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
