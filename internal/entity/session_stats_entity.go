package entity

import "time"

// SessionStats tracks what has been ingested under one session. It is a
// best-effort view kept in the session registry; the vector store remains
// the source of truth for chunk counts.
type SessionStats struct {
	SessionId    string    `json:"session_id"`
	Documents    []string  `json:"documents"`
	Chunks       int       `json:"chunks"`
	LastUploadAt time.Time `json:"last_upload_at"`
}
