package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/askdoc-cli/internal/adapters/driven/agent/mcpclient"
	configfile "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/config/file"
	openaiembed "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/embedding/openai"
	openaillm "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/llm/openai"
	storagefile "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/askdoc-cli/internal/coordinator"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// loadSettings reads the config file and environment overlay.
func loadSettings() (*configfile.Settings, error) {
	return configfile.Load(configDirFlag)
}

// newLLMService builds the hosted chat model client, used both for
// planning in the coordinator and by the answer agent.
func newLLMService(settings *configfile.Settings) (driven.LLMService, error) {
	if settings.API.Key == "" {
		return nil, errors.New("no API key configured: set ASKDOC_API_KEY (or DEEPSEEK_API_KEY) or api.key in " + settings.Path())
	}
	return openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.API.Key,
		BaseURL: settings.API.BaseURL,
		Model:   settings.API.ChatModel,
	})
}

// newEmbeddingService builds the embedding client for the retrieval
// agent.
func newEmbeddingService(settings *configfile.Settings) (driven.EmbeddingService, error) {
	if settings.Embedding.Key == "" {
		return nil, errors.New("no embedding API key configured: set ASKDOC_API_KEY or embedding.key in " + settings.Path())
	}
	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:  settings.Embedding.Key,
		BaseURL: settings.Embedding.BaseURL,
		Model:   settings.Embedding.Model,
	})
}

// newChunkStore opens the shared chunk store under the data directory.
func newChunkStore(settings *configfile.Settings) (driven.ChunkStore, error) {
	return storagefile.NewChunkStore(filepath.Join(settings.Storage.DataDir, storagefile.DefaultFileName))
}

// agentArgs are the persistent flags to propagate to agent
// subprocesses so they resolve the same config.
func agentArgs() []string {
	var args []string
	if configDirFlag != "" {
		args = append(args, "--config", configDirFlag)
	}
	if verboseFlag {
		args = append(args, "--verbose")
	}
	return args
}

// newCoordinator wires the planner model and the agent launcher. The
// launcher re-executes this binary with `agent <name>`.
func newCoordinator(settings *configfile.Settings) (*coordinator.Coordinator, driven.LLMService, error) {
	llm, err := newLLMService(settings)
	if err != nil {
		return nil, nil, err
	}

	launcher, err := mcpclient.NewLauncher("", agentArgs()...)
	if err != nil {
		llm.Close()
		return nil, nil, fmt.Errorf("creating agent launcher: %w", err)
	}

	coord, err := coordinator.New(launcher, llm)
	if err != nil {
		llm.Close()
		return nil, nil, err
	}
	return coord, llm, nil
}
