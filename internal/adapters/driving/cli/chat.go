package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdoc-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/askdoc-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
	"github.com/custodia-labs/askdoc-cli/internal/watcher"
)

var (
	chatDocs      []string
	chatWatch     bool
	chatNoHistory bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat over your documents",
	Long: `Starts the agent pipeline and opens an interactive chat.

Documents passed with --docs are ingested and indexed on startup;
queries are answered from their content only.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringSliceVarP(&chatDocs, "docs", "d", nil, "documents to ingest on startup")
	chatCmd.Flags().BoolVarP(&chatWatch, "watch", "w", false, "flag the index as stale when a document changes on disk")
	chatCmd.Flags().BoolVar(&chatNoHistory, "no-history", false, "do not load or save chat history")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
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

	ports := &tui.Ports{Pipeline: coord}

	if !chatNoHistory {
		history, err := sqlite.NewHistoryStore(settings.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening chat history: %w", err)
		}
		defer history.Close()
		ports.History = history
	}

	if chatWatch && len(chatDocs) > 0 {
		w, err := watcher.New(nil)
		if err != nil {
			return fmt.Errorf("creating document watcher: %w", err)
		}
		defer w.Close()
		ports.Watch = w
	}

	app, err := tui.NewApp(ports, chatDocs, settings.Chat.HistoryLimit)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running chat interface: %w", err)
	}
	return nil
}
