package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentCmd_IsHidden(t *testing.T) {
	assert.True(t, agentCmd.Hidden)
}

func TestNewNormaliserRegistry(t *testing.T) {
	registry := newNormaliserRegistry()

	exts := registry.SupportedExtensions()
	for _, want := range []string{".txt", ".md", ".pdf", ".docx", ".pptx", ".csv"} {
		assert.Contains(t, exts, want)
	}
}

func TestRunAgent_UnknownAgent(t *testing.T) {
	t.Setenv("ASKDOC_API_KEY", "sk-test")
	configDirFlag = t.TempDir()
	defer func() { configDirFlag = "" }()

	err := runAgent(agentCmd, []string{"bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown agent")
}
