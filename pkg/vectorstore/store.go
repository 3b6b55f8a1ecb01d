package vectorstore

import (
	"context"
	"fmt"
	"log"

	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/repository/contract"
	"doc-chat-be/pkg/embedding"
)

// DefaultTopK is the number of snippets returned per retrieval.
const DefaultTopK = 5

// Store is the session-scoped vector store: it embeds chunks on the way in
// and runs similarity search on the way out. Safe for concurrent use; the
// database provides session-scoped consistency.
type Store struct {
	embedder embedding.EmbeddingProvider
	repo     contract.DocumentChunkRepository
	logger   *log.Logger
}

func NewStore(embedder embedding.EmbeddingProvider, repo contract.DocumentChunkRepository, logger *log.Logger) *Store {
	return &Store{
		embedder: embedder,
		repo:     repo,
		logger:   logger,
	}
}

// AddDocuments embeds the chunks and persists them under the session.
// Returns the number of chunks stored.
func (s *Store) AddDocuments(ctx context.Context, sessionID, filename string, chunks []string) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	entities := make([]*entity.DocumentChunk, 0, len(chunks))
	for i, chunk := range chunks {
		res, err := s.embedder.Generate(ctx, chunk, embedding.TaskRetrievalDocument)
		if err != nil {
			return 0, fmt.Errorf("embedding chunk %d of %s: %w", i, filename, err)
		}
		entities = append(entities, &entity.DocumentChunk{
			SessionId:      sessionID,
			Filename:       filename,
			Content:        chunk,
			EmbeddingValue: res.Embedding.Values,
			ChunkIndex:     i,
		})
	}

	if err := s.repo.CreateBulk(ctx, entities); err != nil {
		return 0, fmt.Errorf("storing chunks for %s: %w", filename, err)
	}

	s.logger.Printf("[VECTORSTORE] stored %d chunks for session=%s file=%s", len(entities), sessionID, filename)
	return len(entities), nil
}

// Retrieve embeds the query and returns the most similar chunk contents for
// the session. Implements the agent's Retriever contract.
func (s *Store) Retrieve(ctx context.Context, sessionID, query string) ([]string, error) {
	res, err := s.embedder.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	chunks, err := s.repo.SearchSimilar(ctx, res.Embedding.Values, DefaultTopK, sessionID)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	snippets := make([]string, len(chunks))
	for i, c := range chunks {
		snippets[i] = c.Content
	}
	return snippets, nil
}
