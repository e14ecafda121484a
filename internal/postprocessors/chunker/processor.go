// Package chunker provides a recursive text chunking processor.
// Text is split preferring larger semantic boundaries first:
// paragraphs, then lines, then words, falling back to raw character
// cuts only when a single word exceeds the chunk size. Consecutive
// chunks share a fixed overlap.
package chunker

import "strings"

// DefaultChunkSize is the default maximum characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters
// between consecutive chunks.
const DefaultChunkOverlap = 200

// separators, largest boundary first. The empty string means raw
// character cuts.
var separators = []string{"\n\n", "\n", " ", ""}

// Processor splits text into bounded, overlapping chunks.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the maximum chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Overlap must leave room for new content in each chunk
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Split divides text into chunks of at most the configured size.
// Whitespace-only fragments are dropped; every returned chunk is
// trimmed of surrounding whitespace.
func (p *Processor) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return p.splitRecursive(text, separators)
}

// splitRecursive splits text on the first separator that appears in
// it, recurses into fragments still over the size limit, and merges
// adjacent small fragments back into chunks with overlap.
func (p *Processor) splitRecursive(text string, seps []string) []string {
	sep := seps[len(seps)-1]
	rest := seps
	for i, s := range seps {
		if s == "" || strings.Contains(text, s) {
			sep = s
			rest = seps[i+1:]
			break
		}
	}

	var fragments []string
	for _, frag := range splitOn(text, sep) {
		if len(frag) <= p.chunkSize {
			fragments = append(fragments, frag)
			continue
		}
		if len(rest) == 0 {
			// No finer boundary left: hard character cuts
			fragments = append(fragments, p.cut(frag)...)
			continue
		}
		fragments = append(fragments, p.splitRecursive(frag, rest)...)
	}

	return p.merge(fragments)
}

// splitOn splits text on sep, keeping the separator attached to the
// preceding fragment so merged chunks reconstruct the original text.
// An empty sep yields the text as a single fragment.
func splitOn(text, sep string) []string {
	if sep == "" {
		return []string{text}
	}

	parts := strings.Split(text, sep)
	out := make([]string, 0, len(parts))
	for i, part := range parts {
		if i < len(parts)-1 {
			part += sep
		}
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// cut slices an oversized fragment into raw character windows with
// overlap. Used only when a single unbroken run exceeds the chunk size.
func (p *Processor) cut(text string) []string {
	step := p.chunkSize - p.overlap
	if step <= 0 {
		step = p.chunkSize
	}

	runes := []rune(text)
	out := make([]string, 0, len(runes)/step+1)
	for start := 0; start < len(runes); start += step {
		end := start + p.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return out
}

// merge packs consecutive fragments into chunks of at most chunkSize,
// carrying the configured overlap from the tail of each chunk into
// the next.
func (p *Processor) merge(fragments []string) []string {
	var chunks []string
	var window []string
	total := 0

	flush := func() {
		if len(window) == 0 {
			return
		}
		joined := strings.TrimSpace(strings.Join(window, ""))
		if joined != "" {
			chunks = append(chunks, joined)
		}
	}

	for _, frag := range fragments {
		if total+len(frag) > p.chunkSize && len(window) > 0 {
			flush()
			// Retain the tail of the window as overlap
			for total > p.overlap || (total+len(frag) > p.chunkSize && total > 0) {
				total -= len(window[0])
				window = window[1:]
			}
		}
		window = append(window, frag)
		total += len(frag)
	}
	flush()

	return chunks
}
