package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdoc-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past chat messages",
	RunE:  runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all chat history",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of messages to show")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory() (*sqlite.HistoryStore, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return sqlite.NewHistoryStore(settings.Storage.DataDir)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	messages, err := store.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	if len(messages) == 0 {
		cmd.Println("No chat history.")
		return nil
	}

	for _, m := range messages {
		speaker := "askdoc"
		if m.Role == domain.RoleUser {
			speaker = "you"
		}
		cmd.Printf("[%s] %s: %s\n", m.CreatedAt.Local().Format("2006-01-02 15:04"), speaker, m.Content)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	cmd.Println("Chat history cleared.")
	return nil
}
