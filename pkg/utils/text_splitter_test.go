package utils

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	t.Run("short text returns single chunk", func(t *testing.T) {
		chunks := SplitText("hello world", 1000, 200)
		if len(chunks) != 1 || chunks[0] != "hello world" {
			t.Errorf("expected single unchanged chunk, got %v", chunks)
		}
	})

	t.Run("long text is chunked with overlap", func(t *testing.T) {
		text := strings.Repeat("a", 250)
		chunks := SplitText(text, 100, 20)

		if len(chunks) < 3 {
			t.Fatalf("expected at least 3 chunks, got %d", len(chunks))
		}
		for i, c := range chunks[:len(chunks)-1] {
			if len(c) != 100 {
				t.Errorf("chunk %d has length %d, want 100", i, len(c))
			}
		}
	})

	t.Run("adjacent chunks share overlap", func(t *testing.T) {
		// Distinct runes let us verify the boundary bytes repeat.
		var sb strings.Builder
		for i := 0; i < 300; i++ {
			sb.WriteRune(rune('a' + i%26))
		}
		chunks := SplitText(sb.String(), 100, 20)

		tail := chunks[0][80:]
		head := chunks[1][:20]
		if tail != head {
			t.Errorf("overlap mismatch: tail %q vs head %q", tail, head)
		}
	})

	t.Run("overlap larger than chunk size falls back to full step", func(t *testing.T) {
		text := strings.Repeat("x", 50)
		chunks := SplitText(text, 10, 10)
		if len(chunks) != 5 {
			t.Errorf("expected 5 chunks, got %d", len(chunks))
		}
	})

	t.Run("multibyte runes are not split", func(t *testing.T) {
		text := strings.Repeat("héllo ", 50)
		chunks := SplitText(text, 40, 10)
		for i, c := range chunks {
			if !strings.HasPrefix(strings.Join(chunks, ""), chunks[0]) {
				t.Fatalf("chunk %d corrupted: %q", i, c)
			}
			if strings.ContainsRune(c, '�') {
				t.Errorf("chunk %d contains replacement rune: %q", i, c)
			}
		}
	})
}
