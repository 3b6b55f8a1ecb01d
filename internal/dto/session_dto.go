package dto

import "time"

type SessionStatsResponse struct {
	SessionId    string     `json:"session_id"`
	Documents    []string   `json:"documents"`
	Chunks       int        `json:"chunks"`
	LastUploadAt *time.Time `json:"last_upload_at,omitempty"`
}
