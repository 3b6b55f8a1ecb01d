package agent

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"doc-chat-be/internal/constant"
	"doc-chat-be/pkg/llm"
	"doc-chat-be/pkg/websearch"
)

type fakeLLM struct {
	reply        string
	err          error
	calls        int
	lastMessages []llm.Message
	lastOptions  llm.Options
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	f.lastMessages = history
	f.lastOptions = llm.Options{}
	for _, opt := range options {
		opt(&f.lastOptions)
	}
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

type fakeRetriever struct {
	snippets      []string
	err           error
	calls         int
	lastSessionID string
	lastQuery     string
}

func (f *fakeRetriever) Retrieve(ctx context.Context, sessionID, query string) ([]string, error) {
	f.calls++
	f.lastSessionID = sessionID
	f.lastQuery = query
	return f.snippets, f.err
}

func newTestGraph(provider llm.LLMProvider, retriever Retriever) *Graph {
	nodes := NewNodes(provider, retriever, nil, log.New(io.Discard, "", 0))
	return NewGraph(nodes)
}

func TestGraphDirectPath(t *testing.T) {
	provider := &fakeLLM{reply: "direct answer"}
	retriever := &fakeRetriever{}
	graph := newTestGraph(provider, retriever)

	state := NewState("sess-1", "hello there", "", false)
	if err := graph.Run(context.Background(), state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if retriever.calls != 0 {
		t.Errorf("retriever invoked %d times on the direct path, want 0", retriever.calls)
	}
	if provider.calls != 1 {
		t.Fatalf("llm invoked %d times, want 1", provider.calls)
	}
	if state.Reply() != "direct answer" {
		t.Errorf("reply = %q, want %q", state.Reply(), "direct answer")
	}

	// System instruction first, then the original user turn unmodified.
	msgs := provider.lastMessages
	if len(msgs) != 2 {
		t.Fatalf("llm received %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != llm.RoleSystem || msgs[0].Content != constant.DefaultSystemPrompt {
		t.Errorf("first message = %+v, want default system instruction", msgs[0])
	}
	if msgs[1].Role != llm.RoleUser || msgs[1].Content != "hello there" {
		t.Errorf("user turn altered: %+v", msgs[1])
	}

	if provider.lastOptions.Temperature != DirectTemperature {
		t.Errorf("temperature = %v, want %v", provider.lastOptions.Temperature, DirectTemperature)
	}
}

func TestGraphRetrievalPath(t *testing.T) {
	provider := &fakeLLM{reply: "grounded answer"}
	retriever := &fakeRetriever{snippets: []string{"A", "B"}}
	graph := newTestGraph(provider, retriever)

	state := NewState("sess-2", "what is in my file?", "", true)
	if err := graph.Run(context.Background(), state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if retriever.calls != 1 {
		t.Fatalf("retriever invoked %d times, want exactly 1", retriever.calls)
	}
	if retriever.lastSessionID != "sess-2" {
		t.Errorf("retriever session = %q, want sess-2", retriever.lastSessionID)
	}
	if retriever.lastQuery != "what is in my file?" {
		t.Errorf("retriever query = %q", retriever.lastQuery)
	}

	if state.Context != "A\n\nB" {
		t.Errorf("context = %q, want snippets joined by blank line", state.Context)
	}

	// The grounded prompt replaces the last turn rather than extending the
	// history, so the llm still sees a single user message.
	msgs := provider.lastMessages
	if len(msgs) != 1 {
		t.Fatalf("llm received %d messages, want 1", len(msgs))
	}
	if msgs[0].Role != llm.RoleUser {
		t.Errorf("grounded turn role = %q, want user", msgs[0].Role)
	}
	if !strings.Contains(msgs[0].Content, "A\n\nB") {
		t.Errorf("grounded prompt missing joined context:\n%s", msgs[0].Content)
	}
	if !strings.Contains(msgs[0].Content, "what is in my file?") {
		t.Errorf("grounded prompt missing original query:\n%s", msgs[0].Content)
	}

	if provider.lastOptions.Temperature != ContextTemperature {
		t.Errorf("temperature = %v, want %v", provider.lastOptions.Temperature, ContextTemperature)
	}
	if state.Reply() != "grounded answer" {
		t.Errorf("reply = %q", state.Reply())
	}
}

func TestGraphRetrievalWithoutSession(t *testing.T) {
	provider := &fakeLLM{reply: "best effort answer"}
	retriever := &fakeRetriever{snippets: []string{"should not be seen"}}
	graph := newTestGraph(provider, retriever)

	state := NewState("", "summarize my document", "", true)
	if err := graph.Run(context.Background(), state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if retriever.calls != 0 {
		t.Errorf("retriever invoked without a session id")
	}
	if state.Context != constant.NoSessionContext {
		t.Errorf("context = %q, want diagnostic placeholder", state.Context)
	}

	// Generation still runs, with the diagnostic embedded as context.
	if provider.calls != 1 {
		t.Fatalf("llm invoked %d times, want 1", provider.calls)
	}
	if !strings.Contains(provider.lastMessages[0].Content, constant.NoSessionContext) {
		t.Errorf("diagnostic not embedded in prompt:\n%s", provider.lastMessages[0].Content)
	}
}

func TestGraphRetrieverErrorAborts(t *testing.T) {
	provider := &fakeLLM{reply: "never produced"}
	retriever := &fakeRetriever{err: errors.New("vector store down")}
	graph := newTestGraph(provider, retriever)

	state := NewState("sess-3", "question", "", true)
	err := graph.Run(context.Background(), state)
	if err == nil {
		t.Fatal("expected retriever error to abort the traversal")
	}
	if provider.calls != 0 {
		t.Errorf("generation ran after a retrieval failure")
	}
	if state.Reply() != "" {
		t.Errorf("assistant message appended despite failure: %q", state.Reply())
	}
}

func TestGraphCustomSystemPrompt(t *testing.T) {
	provider := &fakeLLM{reply: "aye"}
	graph := newTestGraph(provider, &fakeRetriever{})

	state := NewState("sess-4", "hello", "You are a pirate.", false)
	if err := graph.Run(context.Background(), state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.lastMessages[0].Content != "You are a pirate." {
		t.Errorf("system instruction = %q", provider.lastMessages[0].Content)
	}
}

func TestWebSearchNode(t *testing.T) {
	t.Run("nil backend degrades to diagnostic", func(t *testing.T) {
		nodes := NewNodes(&fakeLLM{}, &fakeRetriever{}, nil, log.New(io.Discard, "", 0))
		state := NewState("s", "latest news", "", false)
		if err := nodes.WebSearch(context.Background(), state); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state.Context != constant.SearchUnavailableContext {
			t.Errorf("context = %q", state.Context)
		}
	})

	t.Run("unconfigured backend degrades to diagnostic", func(t *testing.T) {
		search := searchFunc(func(ctx context.Context, q string) (string, error) {
			return "", websearch.ErrUnavailable
		})
		nodes := NewNodes(&fakeLLM{}, &fakeRetriever{}, search, log.New(io.Discard, "", 0))
		state := NewState("s", "latest news", "", false)
		if err := nodes.WebSearch(context.Background(), state); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state.Context != constant.SearchUnavailableContext {
			t.Errorf("context = %q, want unavailable diagnostic", state.Context)
		}
	})

	t.Run("backend failure is absorbed into context", func(t *testing.T) {
		search := searchFunc(func(ctx context.Context, q string) (string, error) {
			return "", errors.New("rate limited")
		})
		nodes := NewNodes(&fakeLLM{}, &fakeRetriever{}, search, log.New(io.Discard, "", 0))
		state := NewState("s", "latest news", "", false)
		if err := nodes.WebSearch(context.Background(), state); err != nil {
			t.Fatalf("search errors must not escape the node: %v", err)
		}
		if !strings.Contains(state.Context, "rate limited") {
			t.Errorf("context = %q, want failure diagnostic", state.Context)
		}
	})

	t.Run("result lands in context", func(t *testing.T) {
		search := searchFunc(func(ctx context.Context, q string) (string, error) {
			return "search says hi", nil
		})
		nodes := NewNodes(&fakeLLM{}, &fakeRetriever{}, search, log.New(io.Discard, "", 0))
		state := NewState("s", "latest news", "", false)
		if err := nodes.WebSearch(context.Background(), state); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state.Context != "search says hi" {
			t.Errorf("context = %q", state.Context)
		}
	})
}

type searchFunc func(ctx context.Context, query string) (string, error)

func (f searchFunc) Search(ctx context.Context, query string) (string, error) {
	return f(ctx, query)
}
