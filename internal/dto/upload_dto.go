package dto

import "time"

type UploadResponse struct {
	Status      string `json:"status"`
	Filename    string `json:"filename"`
	ChunksAdded int    `json:"chunks_added"`
	Message     string `json:"message"`
}

// DocumentIngestedMessage is the event payload published after a document is
// embedded successfully.
type DocumentIngestedMessage struct {
	SessionId   string    `json:"session_id"`
	Filename    string    `json:"filename"`
	ChunksAdded int       `json:"chunks_added"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
