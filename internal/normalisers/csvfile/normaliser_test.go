package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".csv"}, New().SupportedExtensions())
}

func TestNormalise(t *testing.T) {
	n := New()
	path := writeCSV(t, "name,age\nalice,30\nbob,7\n")

	got, err := n.Normalise(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "name   age\nalice  30\nbob    7", got)
}

func TestNormalise_RaggedRows(t *testing.T) {
	n := New()
	path := writeCSV(t, "a,b,c\n1,2\n")

	got, err := n.Normalise(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, got, "a  b  c")
	assert.Contains(t, got, "1  2")
}

func TestNormalise_Empty(t *testing.T) {
	n := New()
	path := writeCSV(t, "")

	got, err := n.Normalise(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNormalise_MissingFile(t *testing.T) {
	n := New()
	_, err := n.Normalise(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestNormalise_Malformed(t *testing.T) {
	n := New()
	path := writeCSV(t, "a,\"unterminated\n")

	_, err := n.Normalise(context.Background(), path)
	assert.Error(t, err)
}
