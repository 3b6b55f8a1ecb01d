package agent

import (
	"doc-chat-be/internal/constant"
	"doc-chat-be/pkg/llm"
)

// State is the unit of data threaded through the graph for one request.
// It is created fresh per request and discarded after the response is
// extracted; session continuity lives entirely in the vector store.
type State struct {
	// Messages is append-only within one traversal. Generation nodes add
	// messages, nothing removes them.
	Messages []llm.Message

	// SessionID scopes retrieval. Set once at entry, immutable afterward.
	SessionID string

	// UseRAG selects the path in the routing node. Immutable after entry.
	UseRAG bool

	// SystemPrompt is the caller-supplied instruction, defaulted at entry.
	SystemPrompt string

	// Context is populated by exactly one of the retrieval or web-search
	// nodes. Absent on the direct path.
	Context string
}

// NewState builds the per-request state. An empty systemPrompt falls back to
// the default assistant persona.
func NewState(sessionID, message, systemPrompt string, useRAG bool) *State {
	if systemPrompt == "" {
		systemPrompt = constant.DefaultSystemPrompt
	}
	return &State{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: message},
		},
		SessionID:    sessionID,
		UseRAG:       useRAG,
		SystemPrompt: systemPrompt,
	}
}

// LastMessage returns the most recent message. Generation nodes rely on the
// last entry being the user's current turn on entry.
func (s *State) LastMessage() llm.Message {
	if len(s.Messages) == 0 {
		return llm.Message{}
	}
	return s.Messages[len(s.Messages)-1]
}

// Reply returns the final assistant message content, or "" if no generation
// node has run yet.
func (s *State) Reply() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == llm.RoleAssistant {
			return s.Messages[i].Content
		}
	}
	return ""
}
