package memory

import (
	"context"
	"sync"
	"time"

	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// SessionRegistry keeps ingestion stats in process memory. Entries expire
// after an hour of inactivity, matching the lifetime of a working session.
// The consumer goroutine writes while request handlers read, so Get hands
// out copies and the read-modify-write in RecordIngestion holds a lock.
type SessionRegistry struct {
	mu    sync.Mutex
	cache *cache.Cache
}

var _ contract.SessionRegistry = &SessionRegistry{}

func NewSessionRegistry() *SessionRegistry {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRegistry{
		cache: c,
	}
}

func (r *SessionRegistry) Get(ctx context.Context, sessionId string) (*entity.SessionStats, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(sessionId)
}

// get returns a copy of the cached stats. Callers must hold r.mu.
func (r *SessionRegistry) get(sessionId string) (*entity.SessionStats, bool) {
	x, found := r.cache.Get(sessionId)
	if !found {
		return nil, false
	}

	stored := x.(*entity.SessionStats)
	stats := *stored
	stats.Documents = append([]string(nil), stored.Documents...)
	return &stats, true
}

func (r *SessionRegistry) RecordIngestion(ctx context.Context, sessionId, filename string, chunks int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, found := r.get(sessionId)
	if !found {
		stats = &entity.SessionStats{SessionId: sessionId}
	}

	stats.Documents = append(stats.Documents, filename)
	stats.Chunks += chunks
	stats.LastUploadAt = time.Now()

	r.cache.Set(sessionId, stats, cache.DefaultExpiration)
}
