package rag

import "strings"

const (
	// DefaultChunkWords is the fixed window size, in whitespace tokens.
	DefaultChunkWords = 200
	// DefaultOverlapWords is how many tokens consecutive windows share so
	// context survives chunk boundaries.
	DefaultOverlapWords = 40
)

// ChunkText splits text into fixed-size overlapping word windows. The last
// window may be shorter. An overlap >= the chunk size is clamped so the
// walk always advances.
func ChunkText(text string, chunkWords, overlapWords int) []string {
	if chunkWords <= 0 {
		chunkWords = DefaultChunkWords
	}
	if overlapWords < 0 {
		overlapWords = 0
	}
	if overlapWords >= chunkWords {
		overlapWords = chunkWords / 2
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := chunkWords - overlapWords
	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + chunkWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}
