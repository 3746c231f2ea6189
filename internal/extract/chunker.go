package extract

import (
	"unicode"

	"jobscout/internal/types"
)

// Chunk splits text into word-boundary-aligned segments of at most
// maxWords words each. Boundaries are placed at the start of a word, so
// no word is ever split and concatenating all chunks reconstructs the
// source exactly. The trailing chunk holds the remainder and may be
// smaller than maxWords. A text of maxWords words or fewer yields a
// single chunk equal to the whole text; a text with no words yields
// no chunks.
func Chunk(text string, maxWords int) []types.ResumeChunk {
	if maxWords < 1 {
		maxWords = 1
	}

	var chunks []types.ResumeChunk
	start := 0
	words := 0
	inWord := false

	for i, r := range text {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			// A new word begins here. Cut before it if the current
			// chunk is already full.
			if words == maxWords {
				chunks = append(chunks, types.ResumeChunk{
					Index:     len(chunks),
					Text:      text[start:i],
					WordCount: words,
				})
				start = i
				words = 0
			}
			inWord = true
			words++
		}
	}

	if words > 0 {
		chunks = append(chunks, types.ResumeChunk{
			Index:     len(chunks),
			Text:      text[start:],
			WordCount: words,
		})
	}

	return chunks
}
