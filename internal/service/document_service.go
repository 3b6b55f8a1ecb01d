package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/pkg/apperror"
	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/pkg/parser"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// MaxUploadSize caps uploads at 50 MB. Checked before any parsing or
// embedding work happens.
const MaxUploadSize = 50 * 1024 * 1024

// ChunkStore is the vector-store boundary the upload pipeline feeds.
type ChunkStore interface {
	AddDocuments(ctx context.Context, sessionID, filename string, chunks []string) (int, error)
}

// ParseFunc extracts chunks from a stored file. Injected so tests can run
// without real documents.
type ParseFunc func(path string, extension string) ([]string, error)

type IDocumentService interface {
	ProcessUpload(ctx context.Context, sessionId, filename string, size int64, file io.Reader) (*dto.UploadResponse, error)
}

type documentService struct {
	store     ChunkStore
	parse     ParseFunc
	publisher message.Publisher
	topicName string
	uploadDir string
	sysLogger logger.ILogger
}

func NewDocumentService(
	store ChunkStore,
	publisher message.Publisher,
	topicName string,
	uploadDir string,
	sysLogger logger.ILogger,
) IDocumentService {
	return &documentService{
		store:     store,
		parse:     parser.ParseFile,
		publisher: publisher,
		topicName: topicName,
		uploadDir: uploadDir,
		sysLogger: sysLogger,
	}
}

// ProcessUpload validates, stages, parses and embeds one uploaded file. The
// staged temp file is removed on every path, success or failure.
func (ds *documentService) ProcessUpload(ctx context.Context, sessionId, filename string, size int64, file io.Reader) (*dto.UploadResponse, error) {
	if filename == "" {
		return nil, apperror.BadRequest("No file name provided.")
	}
	if size > MaxUploadSize {
		return nil, apperror.BadRequest(fmt.Sprintf(
			"File %s is too large (%d bytes); the limit is 50 MB.", filename, size,
		))
	}

	tempPath, err := ds.stageFile(filename, file)
	if err != nil {
		return nil, apperror.Internal(fmt.Sprintf("Failed to store uploaded file %s: %v", filename, err))
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
			ds.sysLogger.Warn("upload", "temp file cleanup failed", map[string]interface{}{
				"path":  tempPath,
				"error": err.Error(),
			})
		}
	}()

	extension := filepath.Ext(filename)
	chunks, err := ds.parse(tempPath, extension)
	if err != nil {
		return nil, apperror.Internal(fmt.Sprintf(
			"An unexpected error occurred while processing the file %s: %v", filename, err,
		))
	}
	if len(chunks) == 0 {
		return nil, apperror.BadRequest("Could not parse any content from the file: " + filename)
	}

	added, err := ds.store.AddDocuments(ctx, sessionId, filename, chunks)
	if err != nil {
		return nil, apperror.Internal(fmt.Sprintf(
			"Failed to add the file %s to the knowledge base: %v", filename, err,
		))
	}

	ds.publishIngested(sessionId, filename, added)

	ds.sysLogger.Info("upload", "document ingested", map[string]interface{}{
		"session_id": sessionId,
		"filename":   filename,
		"chunks":     added,
	})

	return &dto.UploadResponse{
		Status:      "success",
		Filename:    filename,
		ChunksAdded: added,
		Message:     "File processed and added to the knowledge base successfully.",
	}, nil
}

// stageFile copies the upload into the temp dir under a generated name so
// the original filename never touches the filesystem.
func (ds *documentService) stageFile(filename string, file io.Reader) (string, error) {
	if err := os.MkdirAll(ds.uploadDir, 0o755); err != nil {
		return "", err
	}

	tempPath := filepath.Join(ds.uploadDir, uuid.New().String()+filepath.Ext(filename))
	out, err := os.Create(tempPath)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(tempPath)
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(tempPath)
		return "", err
	}

	return tempPath, nil
}

func (ds *documentService) publishIngested(sessionId, filename string, chunks int) {
	if ds.publisher == nil {
		return
	}

	payload, err := json.Marshal(dto.DocumentIngestedMessage{
		SessionId:   sessionId,
		Filename:    filename,
		ChunksAdded: chunks,
		UploadedAt:  time.Now(),
	})
	if err != nil {
		ds.sysLogger.Warn("upload", "marshal ingested event failed", map[string]interface{}{"error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := ds.publisher.Publish(ds.topicName, msg); err != nil {
		ds.sysLogger.Warn("upload", "publish ingested event failed", map[string]interface{}{"error": err.Error()})
	}
}
