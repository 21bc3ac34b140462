// Package main provides the entry point for the docsearch-mcp CLI.
package main

import (
	"os"

	"github.com/aman-cerp/docsearch-mcp/cmd/docsearch-mcp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
