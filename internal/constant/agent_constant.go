package constant

// DefaultSystemPrompt is used when the caller does not supply one.
const DefaultSystemPrompt = "You are a helpful and intelligent assistant."

// GenericErrorMessage is the only error text ever returned to a chat caller.
// Internal detail stays in the logs.
const GenericErrorMessage = "Sorry, an error occurred while processing your request."

// NoSessionContext is substituted for retrieved context when a RAG request
// arrives without a session id. The request still completes.
const NoSessionContext = "Error: No session ID provided for document retrieval."

// SearchUnavailableContext is substituted when the web search backend has no
// credential configured.
const SearchUnavailableContext = "Error: Web search is currently unavailable."
