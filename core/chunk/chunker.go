// Package chunk splits document content into word-window pieces for
// embedding. Uses a simple whitespace tokenizer (words ~ tokens); pieces
// carry their index and word count so exports keep provenance.
package chunk

import "strings"

// DefaultSize is the piece size used when none is configured.
const DefaultSize = 512

// Piece is one contiguous window of document content.
type Piece struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Words int    `json:"words"`
}

// Chunker splits text into fixed-size word windows.
type Chunker struct {
	Size int // words per piece
}

// New creates a Chunker with the given piece size, defaulting when size <= 0.
func New(size int) *Chunker {
	if size <= 0 {
		size = DefaultSize
	}
	return &Chunker{Size: size}
}

// Split cuts the input into pieces of at most Size words.
// Empty or whitespace-only input yields no pieces.
func (c *Chunker) Split(text string) []Piece {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var pieces []Piece
	for i := 0; i < len(words); i += c.Size {
		end := i + c.Size
		if end > len(words) {
			end = len(words)
		}
		pieces = append(pieces, Piece{
			Index: len(pieces),
			Text:  strings.Join(words[i:end], " "),
			Words: end - i,
		})
	}
	return pieces
}
