package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".pdf"}, New().SupportedExtensions())
}

func TestNormalise_MissingFile(t *testing.T) {
	n := New()
	_, err := n.Normalise(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))
	assert.Error(t, err)
}

func TestNormalise_NotAPDF(t *testing.T) {
	n := New()
	path := filepath.Join(t.TempDir(), "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not pdf"), 0600))

	_, err := n.Normalise(context.Background(), path)
	assert.Error(t, err)
}
