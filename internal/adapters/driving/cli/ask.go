package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

var (
	askDocs    []string
	askSources bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and print the answer",
	Long: `Starts the agent pipeline, ingests the given documents, answers one
question, and exits. Useful for scripting.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringSliceVarP(&askDocs, "docs", "d", nil, "documents to answer from (required)")
	askCmd.Flags().BoolVar(&askSources, "sources", false, "also print the context chunks the answer is based on")
	askCmd.MarkFlagRequired("docs") //nolint:errcheck
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	coord, llm, err := newCoordinator(settings)
	if err != nil {
		return err
	}
	defer llm.Close()

	ctx := cmd.Context()
	if err := coord.Startup(ctx); err != nil {
		return fmt.Errorf("starting agents: %w", err)
	}
	defer func() {
		if err := coord.Shutdown(); err != nil {
			logger.Warn("Shutting down agents: %v", err)
		}
	}()

	if !coord.ProcessDocuments(ctx, askDocs) {
		return fmt.Errorf("processing documents failed (run with --verbose for details)")
	}

	result := coord.AnswerQuery(ctx, args[0])
	cmd.Println(result.Answer)

	if askSources && len(result.Context) > 0 {
		cmd.Println()
		cmd.Printf("Sources (%d):\n", len(result.Context))
		for i, chunk := range result.Context {
			cmd.Printf("[%d] %s\n", i+1, chunk)
		}
	}
	return nil
}
