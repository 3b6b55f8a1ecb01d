package dto

// ChatRequest is the chat endpoint contract. SystemPrompt is optional; an
// empty value falls back to the default assistant persona.
type ChatRequest struct {
	SessionId    string `json:"session_id"`
	Message      string `json:"message" validate:"required"`
	UseRag       bool   `json:"use_rag"`
	SystemPrompt string `json:"system_prompt"`
}

type ChatResponse struct {
	Response string `json:"response"`
}
