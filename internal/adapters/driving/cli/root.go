// Package cli provides the askdoc command line interface.
// It implements a driving adapter following hexagonal architecture
// principles.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	verboseFlag   bool
	configDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "askdoc",
	Short: "Ask questions about your documents",
	Long: `askdoc answers questions from your own documents.

It parses txt, md, pdf, docx, pptx, and csv files, chunks and embeds
their text, and answers queries through a three-agent pipeline
(ingestion, retrieval, answer) coordinated over MCP.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config", "", "config directory (default ~/.askdoc)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
