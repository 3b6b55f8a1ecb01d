package service

import (
	"context"

	"doc-chat-be/internal/constant"
	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/pkg/agent"
)

// IChatService defines the chat request boundary.
type IChatService interface {
	SendChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
}

// chatService runs the routing graph for one request. Any failure inside the
// graph is reduced here to the single generic user-facing message; the real
// error goes to the logs only.
type chatService struct {
	graph     *agent.Graph
	sysLogger logger.ILogger
}

func NewChatService(graph *agent.Graph, sysLogger logger.ILogger) IChatService {
	return &chatService{
		graph:     graph,
		sysLogger: sysLogger,
	}
}

func (cs *chatService) SendChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	state := agent.NewState(request.SessionId, request.Message, request.SystemPrompt, request.UseRag)

	if err := cs.graph.Run(ctx, state); err != nil {
		cs.sysLogger.Error("chat", "agent execution failed", map[string]interface{}{
			"error":      err.Error(),
			"session_id": request.SessionId,
			"use_rag":    request.UseRag,
		})
		return &dto.ChatResponse{Response: constant.GenericErrorMessage}, nil
	}

	return &dto.ChatResponse{Response: state.Reply()}, nil
}
