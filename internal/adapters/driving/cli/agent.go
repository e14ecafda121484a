package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdoc-cli/internal/agents/answer"
	"github.com/custodia-labs/askdoc-cli/internal/agents/ingestion"
	"github.com/custodia-labs/askdoc-cli/internal/agents/retrieval"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/normalisers"
	"github.com/custodia-labs/askdoc-cli/internal/normalisers/csvfile"
	"github.com/custodia-labs/askdoc-cli/internal/normalisers/docx"
	"github.com/custodia-labs/askdoc-cli/internal/normalisers/pdf"
	"github.com/custodia-labs/askdoc-cli/internal/normalisers/plaintext"
	"github.com/custodia-labs/askdoc-cli/internal/normalisers/pptx"
	"github.com/custodia-labs/askdoc-cli/internal/postprocessors/chunker"
	"github.com/custodia-labs/askdoc-cli/internal/vectorindex/flat"
)

// agentCmd runs one of the pipeline agents as an MCP stdio server.
// The coordinator launches these as subprocesses; the command is
// hidden because users never invoke it directly.
var agentCmd = &cobra.Command{
	Use:       "agent [name]",
	Short:     "Run a pipeline agent over stdio (internal)",
	Hidden:    true,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"ingestion", "retrieval", "answer"},
	RunE:      runAgent,
}

func init() {
	rootCmd.AddCommand(agentCmd)
}

func runAgent(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	ctx := cmd.Context()

	switch name := args[0]; name {
	case "ingestion":
		store, err := newChunkStore(settings)
		if err != nil {
			return err
		}
		server, err := ingestion.NewServer(newNormaliserRegistry(), chunker.New(), store)
		if err != nil {
			return err
		}
		return server.Run(ctx)

	case "retrieval":
		store, err := newChunkStore(settings)
		if err != nil {
			return err
		}
		server, err := retrieval.NewServer(store, flat.New(), func() (driven.EmbeddingService, error) {
			return newEmbeddingService(settings)
		})
		if err != nil {
			return err
		}
		defer server.Close()
		return server.Run(ctx)

	case "answer":
		llm, err := newLLMService(settings)
		if err != nil {
			return err
		}
		defer llm.Close()
		server, err := answer.NewServer(llm)
		if err != nil {
			return err
		}
		return server.Run(ctx)

	default:
		return fmt.Errorf("unknown agent %q (want ingestion, retrieval, or answer)", name)
	}
}

// newNormaliserRegistry registers every supported document format.
func newNormaliserRegistry() *normalisers.Registry {
	registry := normalisers.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(pdf.New())
	registry.Register(docx.New())
	registry.Register(pptx.New())
	registry.Register(csvfile.New())
	return registry
}
