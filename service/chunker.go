package service

import (
	"strings"

	"github.com/tieubaoca/docstudy-be/types"
)

// whitespaceLookback bounds how far back from a window boundary the
// chunker searches for a whitespace break.
const whitespaceLookback = 50

var DefaultChunkingConfig = types.ChunkingConfig{
	TargetSize: 600,
	Overlap:    100,
}

// ChunkerService splits extracted document text into fixed-size
// overlapping chunks. It runs once per document at ingestion time.
type ChunkerService struct {
	targetSize int // target size of each chunk in bytes
	overlap    int // bytes shared between adjacent chunks
}

// NewChunkerService creates a new chunker. Invalid values fall back to
// the defaults so a misconfigured deployment still produces usable chunks.
func NewChunkerService(config types.ChunkingConfig) *ChunkerService {
	targetSize := config.TargetSize
	overlap := config.Overlap
	if targetSize <= 0 {
		targetSize = DefaultChunkingConfig.TargetSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= targetSize {
		overlap = targetSize / 5
	}
	return &ChunkerService{
		targetSize: targetSize,
		overlap:    overlap,
	}
}

// ChunkText splits text into overlapping windows of the target size.
// Each window advances by targetSize-overlap from the previous one and
// the final window is truncated to the remaining text. When a window
// boundary would split a word, the chunker prefers the last whitespace
// within the lookback range. Chunk indices are assigned in emission
// order starting at 0 and start offsets are strictly increasing, so the
// concatenation of chunks minus their overlaps reconstructs the text
// exactly. Empty text yields no chunks.
func (s *ChunkerService) ChunkText(text string) []types.Chunk {
	if len(text) == 0 {
		return nil
	}

	var chunks []types.Chunk
	start := 0
	for start < len(text) {
		end := start + s.targetSize
		if end >= len(text) {
			chunks = append(chunks, types.Chunk{
				Index:       len(chunks),
				Content:     text[start:],
				StartOffset: start,
				EndOffset:   len(text),
			})
			break
		}

		// Quality heuristic: avoid cutting a word in half at the
		// boundary when a whitespace exists within the lookback.
		if !isWhitespace(text[end]) && !isWhitespace(text[end-1]) {
			lookStart := end - whitespaceLookback
			if lookStart < start {
				lookStart = start
			}
			if idx := strings.LastIndexAny(text[lookStart:end], " \t\n\r"); idx != -1 {
				candidate := lookStart + idx + 1
				// Only accept the break if the chunk still makes
				// progress past the overlap region.
				if candidate > start+s.overlap {
					end = candidate
				}
			}
		}

		chunks = append(chunks, types.Chunk{
			Index:       len(chunks),
			Content:     text[start:end],
			StartOffset: start,
			EndOffset:   end,
		})
		start = end - s.overlap
	}

	return chunks
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
