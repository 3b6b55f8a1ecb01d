package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is one embedded piece of an uploaded document, scoped to the
// session it was uploaded under.
type DocumentChunk struct {
	Id             uuid.UUID
	SessionId      string
	Filename       string
	Content        string
	EmbeddingValue []float32
	ChunkIndex     int
	CreatedAt      time.Time
}
