package services

import (
	"strings"
	"testing"
)

func TestChunkTextEmptyInput(t *testing.T) {
	cs := NewChunkingService(100, 20, 10)
	for _, input := range []string{"", "   ", "\n\n\t"} {
		chunks, err := cs.ChunkText(input, StrategyRecursive)
		if err != nil {
			t.Fatalf("chunk error: %v", err)
		}
		if len(chunks) != 0 {
			t.Fatalf("expected no chunks for %q, got %d", input, len(chunks))
		}
	}
}

func TestChunkTextUnknownStrategy(t *testing.T) {
	cs := NewChunkingService(100, 20, 10)
	if _, err := cs.ChunkText("some text", ChunkStrategy("semantic")); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestChunkTextDeterministic(t *testing.T) {
	cs := NewChunkingService(80, 15, 10)
	text := "First sentence here. Second sentence follows. Third one is a bit longer than the others. Fourth closes it out."

	first, err := cs.ChunkText(text, StrategySentence)
	if err != nil {
		t.Fatalf("chunk error: %v", err)
	}
	second, err := cs.ChunkText(text, StrategySentence)
	if err != nil {
		t.Fatalf("chunk error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("chunk %d differs:\n%q\n%q", i, first[i], second[i])
		}
	}
}

func TestChunkFixedRespectsSizeAndOverlap(t *testing.T) {
	cs := NewChunkingService(10, 4, 1)
	text := strings.Repeat("abcdef", 10)

	chunks, err := cs.ChunkText(text, StrategyFixed)
	if err != nil {
		t.Fatalf("chunk error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 10 {
			t.Fatalf("chunk %d exceeds max size: %d", i, len(c))
		}
	}
	// Consecutive chunks share the overlap window
	for i := 1; i < len(chunks); i++ {
		prevTail := chunks[i-1][len(chunks[i-1])-4:]
		if !strings.HasPrefix(chunks[i], prevTail) {
			t.Fatalf("chunk %d does not start with previous tail %q: %q", i, prevTail, chunks[i])
		}
	}
	// Rebuilding from steps must reproduce the input
	var rebuilt strings.Builder
	for i, c := range chunks {
		if i == len(chunks)-1 {
			rebuilt.WriteString(c)
		} else {
			rebuilt.WriteString(c[:10-4])
		}
	}
	if rebuilt.String() != text {
		t.Fatal("fixed chunks do not cover the input")
	}
}

func TestChunkRecursiveCoversAllParagraphs(t *testing.T) {
	cs := NewChunkingService(120, 20, 10)
	text := "Paragraph one talks about the first topic in a couple of sentences. It keeps going for a while.\n\nParagraph two is short.\n\nParagraph three wraps up the document with a final thought about everything discussed so far."

	chunks, err := cs.ChunkText(text, StrategyRecursive)
	if err != nil {
		t.Fatalf("chunk error: %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	joined := strings.Join(chunks, " ")
	for _, phrase := range []string{"first topic", "Paragraph two is short", "final thought"} {
		if !strings.Contains(joined, phrase) {
			t.Fatalf("chunks lost content %q", phrase)
		}
	}
}

func TestChunkNoOverlapOnlyFinalChunk(t *testing.T) {
	cs := NewChunkingService(50, 20, 5)
	text := "Alpha sentence goes here. Beta sentence goes here. Gamma sentence goes here."

	chunks, err := cs.ChunkText(text, StrategySentence)
	if err != nil {
		t.Fatalf("chunk error: %v", err)
	}
	// The final chunk must carry new content, not just the previous tail.
	for i := 1; i < len(chunks); i++ {
		if strings.HasSuffix(chunks[i-1], chunks[i]) {
			t.Fatalf("chunk %d is only the tail of its predecessor: %q", i, chunks[i])
		}
	}
}
