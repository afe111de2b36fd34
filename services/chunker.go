package services

import (
	"fmt"
	"regexp"
	"strings"
)

// ChunkStrategy selects how split boundaries are chosen. The contract is the
// same for every strategy: an ordered sequence of overlapping substrings.
type ChunkStrategy string

const (
	StrategyRecursive ChunkStrategy = "recursive"
	StrategySentence  ChunkStrategy = "sentence"
	StrategyFixed     ChunkStrategy = "fixed"
)

// ChunkingService splits raw text into overlapping chunks
type ChunkingService struct {
	maxChunkSize   int
	overlap        int
	minChunkSize   int
	sentenceRegex  *regexp.Regexp
	paragraphRegex *regexp.Regexp
}

// NewChunkingService creates a new chunking service
func NewChunkingService(maxChunkSize, overlap, minChunkSize int) *ChunkingService {
	return &ChunkingService{
		maxChunkSize:   maxChunkSize,
		overlap:        overlap,
		minChunkSize:   minChunkSize,
		sentenceRegex:  regexp.MustCompile(`[.!?]+[\s]+`),
		paragraphRegex: regexp.MustCompile(`\n\n+`),
	}
}

// ChunkText splits text with the given strategy. Identical input and
// parameters always produce identical chunk sequences. Empty input yields an
// empty sequence.
func (cs *ChunkingService) ChunkText(text string, strategy ChunkStrategy) ([]string, error) {
	if len(strings.TrimSpace(text)) == 0 {
		return []string{}, nil
	}

	switch strategy {
	case StrategyRecursive, "":
		return cs.chunkRecursive(text), nil
	case StrategySentence:
		return cs.chunkByUnits(cs.splitSentences(text), " "), nil
	case StrategyFixed:
		return cs.chunkFixed(text), nil
	}
	return nil, fmt.Errorf("unknown chunk strategy %q", strategy)
}

// chunkRecursive packs paragraphs first and falls back to sentence packing
// for paragraphs that alone exceed the chunk size.
func (cs *ChunkingService) chunkRecursive(text string) []string {
	paragraphs := filterEmpty(cs.paragraphRegex.Split(text, -1))

	units := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if len(p) <= cs.maxChunkSize {
			units = append(units, p)
			continue
		}
		units = append(units, cs.splitSentences(p)...)
	}

	return cs.chunkByUnits(units, "\n\n")
}

// chunkByUnits greedily packs units into chunks up to maxChunkSize, carrying
// an overlap tail from the previous chunk into the next.
func (cs *ChunkingService) chunkByUnits(units []string, sep string) []string {
	var chunks []string
	current := new(strings.Builder)
	hasNew := false

	flush := func() {
		if current.Len() == 0 || !hasNew {
			return
		}
		chunks = append(chunks, current.String())
		tail := cs.overlapTail(current.String())
		current = new(strings.Builder)
		current.WriteString(tail)
		hasNew = false
	}

	for _, unit := range units {
		unit = strings.TrimSpace(unit)
		if len(unit) == 0 {
			continue
		}

		if current.Len() > 0 && current.Len()+len(sep)+len(unit) > cs.maxChunkSize && current.Len() >= cs.minChunkSize {
			flush()
		}

		if current.Len() > 0 {
			current.WriteString(sep)
		}

		// A single unit larger than the chunk size gets hard-split
		if len(unit) > cs.maxChunkSize {
			for _, piece := range cs.chunkFixed(unit) {
				current.WriteString(piece)
				hasNew = true
				flush()
			}
			continue
		}
		current.WriteString(unit)
		hasNew = true
	}

	flush()
	return chunks
}

// chunkFixed splits on raw character counts, stepping size-overlap per chunk.
func (cs *ChunkingService) chunkFixed(text string) []string {
	step := cs.maxChunkSize - cs.overlap
	if step <= 0 {
		step = cs.maxChunkSize
	}

	var chunks []string
	for i := 0; i < len(text); i += step {
		end := i + cs.maxChunkSize
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[i:end])
		if end == len(text) {
			break
		}
	}
	return chunks
}

// overlapTail returns the trailing overlap-sized slice of a chunk, extended
// back to a sentence boundary when one falls inside the window.
func (cs *ChunkingService) overlapTail(text string) string {
	if cs.overlap <= 0 {
		return ""
	}
	if len(text) <= cs.overlap {
		return text
	}

	tail := text[len(text)-cs.overlap:]
	if loc := cs.sentenceRegex.FindStringIndex(tail); loc != nil {
		return tail[loc[1]:]
	}
	return tail
}

func (cs *ChunkingService) splitSentences(text string) []string {
	return filterEmpty(cs.sentenceRegex.Split(text, -1))
}

// filterEmpty removes empty strings from slice
func filterEmpty(slice []string) []string {
	result := make([]string, 0, len(slice))
	for _, s := range slice {
		if len(strings.TrimSpace(s)) > 0 {
			result = append(result, s)
		}
	}
	return result
}
