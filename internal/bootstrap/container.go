package bootstrap

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"doc-chat-be/internal/config"
	"doc-chat-be/internal/controller"
	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/internal/repository/contract"
	"doc-chat-be/internal/repository/implementation"
	"doc-chat-be/internal/repository/memory"
	"doc-chat-be/internal/repository/redisstore"
	"doc-chat-be/internal/service"
	"doc-chat-be/pkg/agent"
	"doc-chat-be/pkg/embedding"
	"doc-chat-be/pkg/llm/factory"
	"doc-chat-be/pkg/vectorstore"
	"doc-chat-be/pkg/websearch"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	UploadController  controller.IUploadController
	SessionController controller.ISessionController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	agentLogger := initAgentLogger()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Backends
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbeddingModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// An empty Tavily key keeps the tool constructed but degraded; requests
	// still work, the search node just reports unavailability.
	searchTool := websearch.NewTavilyClient(cfg.Keys.Tavily)
	if cfg.Keys.Tavily == "" {
		log.Printf("[WARN] TAVILY_API_KEY not set; web search degraded to unavailable")
	}

	// 4. Storage
	chunkRepo := implementation.NewDocumentChunkRepository(db)
	store := vectorstore.NewStore(embeddingProvider, chunkRepo, agentLogger)
	sessionRegistry := newSessionRegistry(cfg)

	// 5. Routing Graph (built once, shared across requests)
	nodes := agent.NewNodes(llmProvider, store, searchTool, agentLogger)
	graph := agent.NewGraph(nodes)

	// 6. Services
	chatService := service.NewChatService(graph, sysLogger)
	documentService := service.NewDocumentService(
		store,
		pubSub,
		cfg.Topics.DocumentIngested,
		cfg.App.UploadDir,
		sysLogger,
	)
	sessionService := service.NewSessionService(sessionRegistry, chunkRepo)
	consumerService := service.NewConsumerService(pubSub, cfg.Topics.DocumentIngested, sessionRegistry)

	return &Container{
		ChatController:    controller.NewChatController(chatService),
		UploadController:  controller.NewUploadController(documentService),
		SessionController: controller.NewSessionController(sessionService),
		ConsumerService:   consumerService,
	}
}

// newSessionRegistry prefers Redis when it is reachable and falls back to
// the in-process cache otherwise.
func newSessionRegistry(cfg *config.Config) contract.SessionRegistry {
	if cfg.App.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.App.RedisURL)
		if err == nil {
			client := redis.NewClient(opts)
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := client.Ping(ctx).Err(); err == nil {
				log.Printf("[INFO] Using Redis session registry (%s)", cfg.App.RedisURL)
				return redisstore.NewSessionRegistry(client)
			}
			log.Printf("[WARN] Redis unreachable, falling back to in-memory session registry")
		} else {
			log.Printf("[WARN] Invalid REDIS_URL %q: %v", cfg.App.RedisURL, err)
		}
	}
	return memory.NewSessionRegistry()
}

func initAgentLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "agent.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[AGENT] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}
