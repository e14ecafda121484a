package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// writeDocx builds a minimal OOXML container holding the given
// document.xml body.
func writeDocx(t *testing.T, documentXML string) string {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "doc.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))
	return path
}

const sampleDocument = `<?xml version="1.0"?>
<document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <body>
    <p><r><t>First paragraph.</t></r></p>
    <p><r><t>Second </t></r><r><t>paragraph.</t></r></p>
  </body>
</document>`

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".docx"}, New().SupportedExtensions())
}

func TestNormalise(t *testing.T) {
	n := New()
	path := writeDocx(t, sampleDocument)

	got, err := n.Normalise(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", got)
}

func TestNormalise_NoDocumentXML(t *testing.T) {
	n := New()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "empty.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))

	got, err := n.Normalise(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNormalise_NotAZip(t *testing.T) {
	n := New()
	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0600))

	_, err := n.Normalise(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_MalformedXML(t *testing.T) {
	n := New()
	path := writeDocx(t, "<body><p>unterminated")

	_, err := n.Normalise(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
