package contract

import (
	"context"

	"doc-chat-be/internal/entity"
)

type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	SearchSimilar(ctx context.Context, embedding []float32, limit int, sessionId string) ([]*entity.DocumentChunk, error)
	CountBySession(ctx context.Context, sessionId string) (int64, error)
	DeleteBySession(ctx context.Context, sessionId string) error
}
