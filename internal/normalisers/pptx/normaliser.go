// Package pptx normalises PPTX presentations by reading the drawing
// XML of each slide inside the OOXML zip container.
package pptx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// slidePattern matches slide part names like ppt/slides/slide12.xml.
var slidePattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// Normaliser handles PPTX presentations.
type Normaliser struct{}

// New creates a new PPTX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".pptx"}
}

// Normalise extracts the text runs of every slide in slide order,
// one shape per line.
func (n *Normaliser) Normalise(_ context.Context, path string) (string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open pptx %s: %w", path, domain.ErrInvalidInput)
	}
	defer reader.Close()

	slides, err := collectSlides(&reader.Reader)
	if err != nil {
		return "", fmt.Errorf("extract pptx text %s: %w", path, err)
	}

	return strings.TrimSpace(strings.Join(slides, "\n")), nil
}

// slideFile pairs a slide's number with its zip entry.
type slideFile struct {
	number int
	file   *zip.File
}

// collectSlides extracts text from each slide part, ordered by slide
// number. Part order inside the zip is not reliable.
func collectSlides(reader *zip.Reader) ([]string, error) {
	var parts []slideFile
	for _, file := range reader.File {
		m := slidePattern.FindStringSubmatch(file.Name)
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		parts = append(parts, slideFile{number: num, file: file})
	}

	sort.Slice(parts, func(i, j int) bool {
		return parts[i].number < parts[j].number
	})

	texts := make([]string, 0, len(parts))
	for _, part := range parts {
		rc, err := part.file.Open()
		if err != nil {
			return nil, domain.ErrInvalidInput
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, domain.ErrInvalidInput
		}

		text, err := parseSlideXML(content)
		if err != nil {
			return nil, err
		}
		if text != "" {
			texts = append(texts, text)
		}
	}

	return texts, nil
}

// slideXML mirrors the parts of the drawing XML we care about: every
// paragraph (a:p) holds runs (a:r) holding text (a:t).
type slideXML struct {
	Paragraphs []slideParagraph `xml:"cSld>spTree>sp>txBody>p"`
}

type slideParagraph struct {
	Runs []slideRun `xml:"r"`
}

type slideRun struct {
	Text string `xml:"t"`
}

// parseSlideXML extracts the visible text of one slide, one
// paragraph per line.
func parseSlideXML(content []byte) (string, error) {
	var slide slideXML
	if err := xml.Unmarshal(content, &slide); err != nil {
		return "", domain.ErrInvalidInput
	}

	var result strings.Builder
	for _, para := range slide.Paragraphs {
		var line strings.Builder
		for _, run := range para.Runs {
			line.WriteString(run.Text)
		}
		if line.Len() == 0 {
			continue
		}
		if result.Len() > 0 {
			result.WriteString("\n")
		}
		result.WriteString(line.String())
	}

	return strings.TrimSpace(result.String()), nil
}
