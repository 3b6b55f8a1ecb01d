package memory

import (
	"context"
	"sync"
	"testing"
)

func TestSessionRegistry(t *testing.T) {
	ctx := context.Background()
	r := NewSessionRegistry()

	t.Run("miss on unknown session", func(t *testing.T) {
		if _, found := r.Get(ctx, "nope"); found {
			t.Error("expected miss for unknown session")
		}
	})

	t.Run("ingestions accumulate", func(t *testing.T) {
		r.RecordIngestion(ctx, "s1", "a.txt", 3)
		r.RecordIngestion(ctx, "s1", "b.pdf", 5)

		stats, found := r.Get(ctx, "s1")
		if !found {
			t.Fatal("expected stats after ingestion")
		}
		if stats.Chunks != 8 {
			t.Errorf("chunks = %d, want 8", stats.Chunks)
		}
		if len(stats.Documents) != 2 || stats.Documents[1] != "b.pdf" {
			t.Errorf("documents = %v", stats.Documents)
		}
		if stats.LastUploadAt.IsZero() {
			t.Error("last upload time not set")
		}
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		r.RecordIngestion(ctx, "s2", "other.txt", 1)

		s1, _ := r.Get(ctx, "s1")
		s2, _ := r.Get(ctx, "s2")
		if s1.Chunks == s2.Chunks {
			t.Error("stats leaked across sessions")
		}
	})
}

func TestSessionRegistryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	r := NewSessionRegistry()

	// Writers model the event-bus consumer, readers the stats endpoint.
	// Run with -race.
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				r.RecordIngestion(ctx, "shared", "file.txt", 1)
			}
		}()
	}
	for rd := 0; rd < 4; rd++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				if stats, found := r.Get(ctx, "shared"); found {
					_ = len(stats.Documents)
					_ = stats.Chunks
				}
			}
		}()
	}
	wg.Wait()

	stats, found := r.Get(ctx, "shared")
	if !found {
		t.Fatal("expected stats after concurrent ingestion")
	}
	if stats.Chunks != 1000 {
		t.Errorf("chunks = %d, want 1000 (lost updates)", stats.Chunks)
	}
	if len(stats.Documents) != 1000 {
		t.Errorf("documents = %d, want 1000", len(stats.Documents))
	}
}

func TestSessionRegistryGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	r := NewSessionRegistry()
	r.RecordIngestion(ctx, "s1", "a.txt", 2)

	first, _ := r.Get(ctx, "s1")
	first.Chunks = 999
	first.Documents[0] = "mutated"
	first.Documents = append(first.Documents, "extra")

	second, _ := r.Get(ctx, "s1")
	if second.Chunks != 2 {
		t.Errorf("stored chunks corrupted by caller mutation: %d", second.Chunks)
	}
	if len(second.Documents) != 1 || second.Documents[0] != "a.txt" {
		t.Errorf("stored documents corrupted by caller mutation: %v", second.Documents)
	}
}
