package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/pkg/apperror"
)

type fakeRegistry struct {
	stats map[string]*entity.SessionStats
}

func (f *fakeRegistry) Get(ctx context.Context, sessionId string) (*entity.SessionStats, bool) {
	s, ok := f.stats[sessionId]
	return s, ok
}

func (f *fakeRegistry) RecordIngestion(ctx context.Context, sessionId, filename string, chunks int) {}

type fakeChunkRepo struct {
	count int64
}

func (f *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	return nil
}

func (f *fakeChunkRepo) SearchSimilar(ctx context.Context, embedding []float32, limit int, sessionId string) ([]*entity.DocumentChunk, error) {
	return nil, nil
}

func (f *fakeChunkRepo) CountBySession(ctx context.Context, sessionId string) (int64, error) {
	return f.count, nil
}

func (f *fakeChunkRepo) DeleteBySession(ctx context.Context, sessionId string) error {
	return nil
}

func TestGetStatsFromRegistry(t *testing.T) {
	uploaded := time.Now()
	registry := &fakeRegistry{stats: map[string]*entity.SessionStats{
		"s1": {SessionId: "s1", Documents: []string{"a.txt"}, Chunks: 7, LastUploadAt: uploaded},
	}}
	svc := NewSessionService(registry, &fakeChunkRepo{count: 999})

	resp, err := svc.GetStats(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, 7, resp.Chunks, "registry entry wins over the store count")
	assert.Equal(t, []string{"a.txt"}, resp.Documents)
	require.NotNil(t, resp.LastUploadAt)
	assert.True(t, resp.LastUploadAt.Equal(uploaded))
}

func TestGetStatsFallsBackToStoreCount(t *testing.T) {
	svc := NewSessionService(&fakeRegistry{stats: map[string]*entity.SessionStats{}}, &fakeChunkRepo{count: 12})

	resp, err := svc.GetStats(context.Background(), "expired-session")
	require.NoError(t, err)

	assert.Equal(t, 12, resp.Chunks)
	assert.Empty(t, resp.Documents)
	assert.Nil(t, resp.LastUploadAt)
}

func TestGetStatsRequiresSessionId(t *testing.T) {
	svc := NewSessionService(&fakeRegistry{}, &fakeChunkRepo{})

	_, err := svc.GetStats(context.Background(), "")

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}
