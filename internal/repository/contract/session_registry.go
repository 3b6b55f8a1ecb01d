package contract

import (
	"context"

	"doc-chat-be/internal/entity"
)

// SessionRegistry records per-session ingestion stats. Implementations are
// in-memory (go-cache) or Redis-backed depending on configuration.
type SessionRegistry interface {
	Get(ctx context.Context, sessionId string) (*entity.SessionStats, bool)
	RecordIngestion(ctx context.Context, sessionId, filename string, chunks int)
}
