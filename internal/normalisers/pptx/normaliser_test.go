package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// writePptx builds a minimal OOXML container with one XML part per
// slide body, named ppt/slides/slideN.xml in the given map order.
func writePptx(t *testing.T, slides map[int]string) string {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for num, body := range slides {
		f, err := w.Create(fmt.Sprintf("ppt/slides/slide%d.xml", num))
		require.NoError(t, err)
		_, err = f.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "deck.pptx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))
	return path
}

func slideBody(lines ...string) string {
	var sb bytes.Buffer
	sb.WriteString(`<sld><cSld><spTree><sp><txBody>`)
	for _, line := range lines {
		sb.WriteString(`<p><r><t>` + line + `</t></r></p>`)
	}
	sb.WriteString(`</txBody></sp></spTree></cSld></sld>`)
	return sb.String()
}

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".pptx"}, New().SupportedExtensions())
}

func TestNormalise(t *testing.T) {
	n := New()
	path := writePptx(t, map[int]string{
		1: slideBody("Title slide"),
		2: slideBody("Point one", "Point two"),
	})

	got, err := n.Normalise(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Title slide\nPoint one\nPoint two", got)
}

func TestNormalise_SlideOrderIsNumeric(t *testing.T) {
	n := New()
	// slide10 sorts before slide2 lexically; numeric order must win
	path := writePptx(t, map[int]string{
		10: slideBody("last"),
		2:  slideBody("first"),
	})

	got, err := n.Normalise(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "first\nlast", got)
}

func TestNormalise_NoSlides(t *testing.T) {
	n := New()
	path := writePptx(t, map[int]string{})

	got, err := n.Normalise(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNormalise_NotAZip(t *testing.T) {
	n := New()
	path := filepath.Join(t.TempDir(), "broken.pptx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0600))

	_, err := n.Normalise(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
