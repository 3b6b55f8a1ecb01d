package service

import (
	"context"

	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/pkg/apperror"
	"doc-chat-be/internal/repository/contract"
)

type ISessionService interface {
	GetStats(ctx context.Context, sessionId string) (*dto.SessionStatsResponse, error)
}

type sessionService struct {
	registry  contract.SessionRegistry
	chunkRepo contract.DocumentChunkRepository
}

func NewSessionService(registry contract.SessionRegistry, chunkRepo contract.DocumentChunkRepository) ISessionService {
	return &sessionService{
		registry:  registry,
		chunkRepo: chunkRepo,
	}
}

// GetStats serves the registry view; when the registry has expired the
// entry, it falls back to counting chunks in the vector store.
func (ss *sessionService) GetStats(ctx context.Context, sessionId string) (*dto.SessionStatsResponse, error) {
	if sessionId == "" {
		return nil, apperror.BadRequest("No session id provided.")
	}

	if stats, found := ss.registry.Get(ctx, sessionId); found {
		t := stats.LastUploadAt
		return &dto.SessionStatsResponse{
			SessionId:    stats.SessionId,
			Documents:    stats.Documents,
			Chunks:       stats.Chunks,
			LastUploadAt: &t,
		}, nil
	}

	count, err := ss.chunkRepo.CountBySession(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	return &dto.SessionStatsResponse{
		SessionId: sessionId,
		Documents: []string{},
		Chunks:    int(count),
	}, nil
}
