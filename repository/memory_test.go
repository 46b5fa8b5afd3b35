package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/docstudy-be/types"
)

func TestMemoryDocumentRepo_ChunkLifecycle(t *testing.T) {
	repo := NewMemoryDocumentRepo()
	ctx := context.Background()

	require.NoError(t, repo.CreateDocument(ctx, &types.Document{ID: "doc-1", Title: "notes"}))

	doc, err := repo.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, types.DOCUMENT_STATUS_PROCESSING, doc.Status)

	chunks := []types.Chunk{{Index: 0, Content: "first"}, {Index: 1, Content: "second"}}
	require.NoError(t, repo.SetChunks(ctx, "doc-1", chunks))

	doc, err = repo.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, types.DOCUMENT_STATUS_READY, doc.Status)
	assert.Equal(t, chunks, doc.Chunks)

	// Chunks are built exactly once.
	assert.ErrorIs(t, repo.SetChunks(ctx, "doc-1", chunks), types.ErrChunksExist)

	_, err = repo.GetDocument(ctx, "missing")
	assert.ErrorIs(t, err, types.ErrDocumentNotFound)
	assert.ErrorIs(t, repo.SetChunks(ctx, "missing", chunks), types.ErrDocumentNotFound)
}

func TestMemoryChatHistoryRepo_AppendAndRead(t *testing.T) {
	repo := NewMemoryChatHistoryRepo()
	ctx := context.Background()

	messages, err := repo.GetMessages(ctx, "user-1", "doc-1")
	require.NoError(t, err)
	assert.Empty(t, messages)

	history, err := repo.GetOrCreate(ctx, "user-1", "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", history.UserID)
	assert.Equal(t, "doc-1", history.DocumentID)
	assert.Empty(t, history.Messages)

	userMsg := types.Message{Role: types.MESSAGE_ROLE_USER, Content: "question"}
	assistantMsg := types.Message{Role: types.MESSAGE_ROLE_ASSISTANT, Content: "answer", RelevantChunks: []int{0, 2}}
	require.NoError(t, repo.AppendTurn(ctx, "user-1", "doc-1", userMsg, assistantMsg))

	messages, err = repo.GetMessages(ctx, "user-1", "doc-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "question", messages[0].Content)
	assert.Equal(t, []int{0, 2}, messages[1].RelevantChunks)

	// Histories are keyed per (user, document) pair.
	messages, err = repo.GetMessages(ctx, "user-2", "doc-1")
	require.NoError(t, err)
	assert.Empty(t, messages)
}
