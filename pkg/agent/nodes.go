package agent

import (
	"context"
	"errors"
	"log"
	"strings"

	"doc-chat-be/internal/constant"
	"doc-chat-be/pkg/agent/prompt"
	"doc-chat-be/pkg/llm"
	"doc-chat-be/pkg/websearch"
)

// Sampling profiles. Direct answers and classification use the deterministic
// profile, context-grounded generation the creative one.
const (
	DirectTemperature  = 0.0
	ContextTemperature = 0.7
)

// Retriever fetches session-scoped snippets ranked by relevance.
type Retriever interface {
	Retrieve(ctx context.Context, sessionID, query string) ([]string, error)
}

// SearchTool is the opaque web-search backend.
type SearchTool interface {
	Search(ctx context.Context, query string) (string, error)
}

// Nodes bundles the node implementations with their backends. One instance
// serves all requests; per-request data lives only in State.
type Nodes struct {
	llmProvider llm.LLMProvider
	retriever   Retriever
	search      SearchTool
	logger      *log.Logger
}

func NewNodes(llmProvider llm.LLMProvider, retriever Retriever, search SearchTool, logger *log.Logger) *Nodes {
	return &Nodes{
		llmProvider: llmProvider,
		retriever:   retriever,
		search:      search,
		logger:      logger,
	}
}

// Entry establishes the graph start. No state mutation.
func (n *Nodes) Entry(ctx context.Context, s *State) error {
	n.logger.Printf("[AGENT] entry: session=%s use_rag=%v", s.SessionID, s.UseRAG)
	return nil
}

// CheckForRAG is the pure routing decision. Its return value is consumed by
// the edge dispatch only.
func (n *Nodes) CheckForRAG(s *State) Route {
	if s.UseRAG {
		n.logger.Printf("[AGENT] routing: %s", RouteRetrieveContext)
		return RouteRetrieveContext
	}
	n.logger.Printf("[AGENT] routing: %s", RouteGenerateDirect)
	return RouteGenerateDirect
}

// RetrieveContext queries the retriever with the latest user message and
// joins the snippets into Context. A missing session id degrades to a
// diagnostic string without touching the backend.
func (n *Nodes) RetrieveContext(ctx context.Context, s *State) error {
	if s.SessionID == "" {
		n.logger.Printf("[AGENT] retrieve: no session id, skipping retrieval")
		s.Context = constant.NoSessionContext
		return nil
	}

	query := s.LastMessage().Content
	snippets, err := n.retriever.Retrieve(ctx, s.SessionID, query)
	if err != nil {
		return err
	}

	s.Context = strings.Join(snippets, "\n\n")
	n.logger.Printf("[AGENT] retrieve: session=%s snippets=%d", s.SessionID, len(snippets))
	return nil
}

// GenerateWithContext is the terminal node on the RAG path. The assembled
// context prompt replaces the conversation's last turn; it does not append a
// new one.
func (n *Nodes) GenerateWithContext(ctx context.Context, s *State) error {
	userQuery := s.LastMessage().Content
	grounded := prompt.BuildContextual(s.SystemPrompt, s.Context, userQuery)

	messagesForLLM := make([]llm.Message, 0, len(s.Messages))
	messagesForLLM = append(messagesForLLM, s.Messages[:len(s.Messages)-1]...)
	messagesForLLM = append(messagesForLLM, llm.Message{Role: llm.RoleUser, Content: grounded})

	reply, err := n.llmProvider.Chat(ctx, messagesForLLM, llm.WithTemperature(ContextTemperature))
	if err != nil {
		return err
	}

	s.Messages = append(s.Messages, llm.Message{Role: llm.RoleAssistant, Content: reply})
	return nil
}

// GenerateDirect is the terminal node on the direct path: system instruction
// first, then the history unmodified.
func (n *Nodes) GenerateDirect(ctx context.Context, s *State) error {
	messagesForLLM := prompt.BuildDirect(s.SystemPrompt, s.Messages)

	reply, err := n.llmProvider.Chat(ctx, messagesForLLM, llm.WithTemperature(DirectTemperature))
	if err != nil {
		return err
	}

	s.Messages = append(s.Messages, llm.Message{Role: llm.RoleAssistant, Content: reply})
	return nil
}

// WebSearch fills Context from the web-search backend. It never raises past
// its own boundary: an unconfigured or failing backend becomes a diagnostic
// string in Context. Available for composition, not wired into the default
// graph edges.
func (n *Nodes) WebSearch(ctx context.Context, s *State) error {
	if n.search == nil {
		s.Context = constant.SearchUnavailableContext
		return nil
	}

	result, err := n.search.Search(ctx, s.LastMessage().Content)
	if errors.Is(err, websearch.ErrUnavailable) {
		s.Context = constant.SearchUnavailableContext
		return nil
	}
	if err != nil {
		n.logger.Printf("[AGENT] web search failed: %v", err)
		s.Context = "Error: Web search failed: " + err.Error()
		return nil
	}

	s.Context = result
	return nil
}
