package repository

import (
	"context"
	"sync"
	"time"

	"github.com/tieubaoca/docstudy-be/types"
)

// In-memory implementations of the repositories, used by tests and by
// the ingest command's dry-run mode. They honor the same contracts as
// the mongo-backed versions.

type memoryDocumentRepo struct {
	mu   sync.RWMutex
	docs map[string]*types.Document
}

func NewMemoryDocumentRepo() DocumentRepo {
	return &memoryDocumentRepo{
		docs: make(map[string]*types.Document),
	}
}

func (r *memoryDocumentRepo) CreateDocument(ctx context.Context, doc *types.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc.Status = types.DOCUMENT_STATUS_PROCESSING
	doc.CreatedAt = time.Now().Unix()
	doc.UpdatedAt = doc.CreatedAt
	stored := *doc
	r.docs[doc.ID] = &stored
	return nil
}

func (r *memoryDocumentRepo) GetDocument(ctx context.Context, id string) (*types.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, types.ErrDocumentNotFound
	}
	copied := *doc
	return &copied, nil
}

func (r *memoryDocumentRepo) SetChunks(ctx context.Context, id string, chunks []types.Chunk) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return types.ErrDocumentNotFound
	}
	if doc.Status != types.DOCUMENT_STATUS_PROCESSING {
		return types.ErrChunksExist
	}
	doc.Chunks = chunks
	doc.Status = types.DOCUMENT_STATUS_READY
	doc.UpdatedAt = time.Now().Unix()
	return nil
}

func (r *memoryDocumentRepo) GetChunks(ctx context.Context, id string) ([]types.Chunk, error) {
	doc, err := r.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.Chunks, nil
}

type historyKey struct {
	userID     string
	documentID string
}

type memoryChatHistoryRepo struct {
	mu        sync.Mutex
	histories map[historyKey]*types.ChatHistory
}

func NewMemoryChatHistoryRepo() ChatHistoryRepo {
	return &memoryChatHistoryRepo{
		histories: make(map[historyKey]*types.ChatHistory),
	}
}

func (r *memoryChatHistoryRepo) GetOrCreate(ctx context.Context, userID, documentID string) (*types.ChatHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	history := r.getOrCreateLocked(userID, documentID)
	copied := *history
	copied.Messages = append([]types.Message{}, history.Messages...)
	return &copied, nil
}

func (r *memoryChatHistoryRepo) AppendTurn(ctx context.Context, userID, documentID string, userMsg, assistantMsg types.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	history := r.getOrCreateLocked(userID, documentID)
	history.Messages = append(history.Messages, userMsg, assistantMsg)
	history.UpdatedAt = time.Now().Unix()
	return nil
}

func (r *memoryChatHistoryRepo) GetMessages(ctx context.Context, userID, documentID string) ([]types.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	history, ok := r.histories[historyKey{userID, documentID}]
	if !ok {
		return []types.Message{}, nil
	}
	return append([]types.Message{}, history.Messages...), nil
}

func (r *memoryChatHistoryRepo) getOrCreateLocked(userID, documentID string) *types.ChatHistory {
	key := historyKey{userID, documentID}
	history, ok := r.histories[key]
	if !ok {
		now := time.Now().Unix()
		history = &types.ChatHistory{
			UserID:     userID,
			DocumentID: documentID,
			Messages:   []types.Message{},
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		r.histories[key] = history
	}
	return history
}
