package redisstore

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "doc-chat:session:"
	statsTTL  = 24 * time.Hour
)

// SessionRegistry persists ingestion stats in Redis so they survive process
// restarts. Write failures are logged and swallowed; the registry is a
// best-effort view.
type SessionRegistry struct {
	client *redis.Client
}

var _ contract.SessionRegistry = &SessionRegistry{}

func NewSessionRegistry(client *redis.Client) *SessionRegistry {
	return &SessionRegistry{
		client: client,
	}
}

func (r *SessionRegistry) Get(ctx context.Context, sessionId string) (*entity.SessionStats, bool) {
	raw, err := r.client.Get(ctx, keyPrefix+sessionId).Bytes()
	if err != nil {
		return nil, false
	}

	var stats entity.SessionStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		log.Printf("[WARN] corrupt session stats for %s: %v", sessionId, err)
		return nil, false
	}
	return &stats, true
}

// RecordIngestion is a plain GET/SET read-modify-write. Concurrent writers
// to the same session can lose an update; acceptable for a best-effort
// stats view. Use WATCH or a Lua script here if the counts ever need to be
// exact.
func (r *SessionRegistry) RecordIngestion(ctx context.Context, sessionId, filename string, chunks int) {
	stats, found := r.Get(ctx, sessionId)
	if !found {
		stats = &entity.SessionStats{SessionId: sessionId}
	}

	stats.Documents = append(stats.Documents, filename)
	stats.Chunks += chunks
	stats.LastUploadAt = time.Now()

	raw, err := json.Marshal(stats)
	if err != nil {
		log.Printf("[WARN] marshal session stats for %s: %v", sessionId, err)
		return
	}
	if err := r.client.Set(ctx, keyPrefix+sessionId, raw, statsTTL).Err(); err != nil {
		log.Printf("[WARN] persist session stats for %s: %v", sessionId, err)
	}
}
