// Command askdoc answers questions from your own documents through a
// three-agent retrieval pipeline coordinated over MCP.
package main

import (
	"os"

	"github.com/custodia-labs/askdoc-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
