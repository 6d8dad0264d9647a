// Package chunker splits document text into ordered, overlapping
// pieces, the unit of retrieval.
package chunker

import "strings"

// DefaultChunkSize is the default window size in characters.
const DefaultChunkSize = 500

// DefaultOverlap is the default number of overlapping characters
// between consecutive pieces. Overlap guards against losing context at
// piece boundaries during retrieval.
const DefaultOverlap = 50

// Chunker splits text into overlapping pieces, preferring to cut at
// sentence or paragraph boundaries when one falls in the second half
// of the window.
type Chunker struct {
	size    int
	overlap int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the window size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithOverlap sets the overlap between pieces in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		size:    DefaultChunkSize,
		overlap: DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must leave room for forward progress
	if c.overlap >= c.size {
		c.overlap = c.size / 4
	}

	return c
}

// Piece is one bounded slice of the input text. Offsets are rune
// offsets into the original text; Start < End, and offsets never
// decrease across consecutive pieces.
type Piece struct {
	// Text is the piece content.
	Text string

	// Index is the ordinal position in emission order.
	Index int

	// Start is the rune offset where the piece begins.
	Start int

	// End is the rune offset where the piece ends.
	End int
}

// Split scans the text in windows of the configured size. Within each
// window it cuts at the last sentence terminator past the window
// midpoint, else at the last paragraph break past the midpoint, else
// at the raw window boundary. After emitting a piece the start offset
// advances to end-overlap. Whitespace-only pieces are dropped.
func (c *Chunker) Split(text string) []Piece {
	runes := []rune(text)
	total := len(runes)
	if total == 0 {
		return nil
	}

	pieces := make([]Piece, 0, total/(c.size-c.overlap)+1)
	start := 0
	index := 0

	for start < total {
		end := start + c.size
		if end >= total {
			end = total
		} else {
			end = c.cutPoint(runes, start, end)
		}

		content := string(runes[start:end])
		if strings.TrimSpace(content) != "" {
			pieces = append(pieces, Piece{
				Text:  content,
				Index: index,
				Start: start,
				End:   end,
			})
			index++
		}

		if end >= total {
			break
		}

		next := end - c.overlap
		if next <= start {
			// Overlap would stall the scan
			next = end
		}
		start = next
	}

	return pieces
}

// cutPoint finds the preferred cut inside the window [start, end).
// A boundary only wins when it falls past the window midpoint, so
// pieces never shrink below half the configured size.
func (c *Chunker) cutPoint(runes []rune, start, end int) int {
	window := runes[start:end]
	mid := c.size / 2

	// Last sentence terminator in the window
	for i := len(window) - 1; i > mid; i-- {
		if window[i] == '.' {
			return start + i + 1
		}
	}

	// Last paragraph break in the window
	for i := len(window) - 1; i > mid; i-- {
		if window[i] == '\n' && window[i-1] == '\n' {
			return start + i + 1
		}
	}

	return end
}
