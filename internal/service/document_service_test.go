package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-chat-be/internal/pkg/apperror"
)

type fakeChunkStore struct {
	added       int
	err         error
	calls       int
	lastSession string
	lastChunks  []string
}

func (f *fakeChunkStore) AddDocuments(ctx context.Context, sessionID, filename string, chunks []string) (int, error) {
	f.calls++
	f.lastSession = sessionID
	f.lastChunks = chunks
	if f.err != nil {
		return 0, f.err
	}
	return f.added, nil
}

func newTestDocumentService(t *testing.T, store *fakeChunkStore, parse ParseFunc) *documentService {
	t.Helper()
	return &documentService{
		store:     store,
		parse:     parse,
		uploadDir: t.TempDir(),
		sysLogger: noopLogger{},
	}
}

func assertUploadDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp files must be removed after processing")
}

func TestProcessUploadRejectsOversizedFile(t *testing.T) {
	store := &fakeChunkStore{}
	parseCalls := 0
	svc := newTestDocumentService(t, store, func(path, ext string) ([]string, error) {
		parseCalls++
		return []string{"chunk"}, nil
	})

	_, err := svc.ProcessUpload(context.Background(), "sess", "big.txt", MaxUploadSize+1, strings.NewReader(""))

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "too large")
	assert.Zero(t, parseCalls, "oversized files must be rejected before parsing")
	assert.Zero(t, store.calls)
}

func TestProcessUploadRejectsMissingFilename(t *testing.T) {
	svc := newTestDocumentService(t, &fakeChunkStore{}, nil)

	_, err := svc.ProcessUpload(context.Background(), "sess", "", 10, strings.NewReader("x"))

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestProcessUploadSuccess(t *testing.T) {
	store := &fakeChunkStore{added: 3}
	var parsedPath string
	svc := newTestDocumentService(t, store, func(path, ext string) ([]string, error) {
		parsedPath = path
		assert.Equal(t, ".txt", ext)
		return []string{"c1", "c2", "c3"}, nil
	})

	resp, err := svc.ProcessUpload(context.Background(), "sess-1", "report.txt", 100, strings.NewReader("file body"))
	require.NoError(t, err)

	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "report.txt", resp.Filename)
	assert.Equal(t, 3, resp.ChunksAdded)

	// The staged file gets a generated name, never the upload's own.
	assert.NotContains(t, parsedPath, "report")
	assert.Equal(t, "sess-1", store.lastSession)
	assert.Equal(t, []string{"c1", "c2", "c3"}, store.lastChunks)

	assertUploadDirEmpty(t, svc.uploadDir)
}

func TestProcessUploadEmptyExtraction(t *testing.T) {
	store := &fakeChunkStore{}
	svc := newTestDocumentService(t, store, func(path, ext string) ([]string, error) {
		return nil, nil
	})

	_, err := svc.ProcessUpload(context.Background(), "sess", "blank.txt", 10, strings.NewReader(" "))

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "blank.txt")
	assert.Zero(t, store.calls)
	assertUploadDirEmpty(t, svc.uploadDir)
}

func TestProcessUploadParseFailureCleansUp(t *testing.T) {
	svc := newTestDocumentService(t, &fakeChunkStore{}, func(path, ext string) ([]string, error) {
		return nil, errors.New("corrupt pdf")
	})

	_, err := svc.ProcessUpload(context.Background(), "sess", "bad.pdf", 10, strings.NewReader("x"))

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Code)
	assertUploadDirEmpty(t, svc.uploadDir)
}

func TestProcessUploadStoreFailureCleansUp(t *testing.T) {
	store := &fakeChunkStore{err: errors.New("db down")}
	svc := newTestDocumentService(t, store, func(path, ext string) ([]string, error) {
		return []string{"chunk"}, nil
	})

	_, err := svc.ProcessUpload(context.Background(), "sess", "doc.txt", 10, strings.NewReader("x"))

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Code)
	assertUploadDirEmpty(t, svc.uploadDir)
}
