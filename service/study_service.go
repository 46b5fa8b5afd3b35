package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tieubaoca/docstudy-be/repository"
	"github.com/tieubaoca/docstudy-be/types"
)

// DefaultTopK is the number of chunks retrieved to ground a chat turn
// or concept explanation.
const DefaultTopK = 3

// StudyService is the library boundary of the retrieval core. Upstream
// handlers call it for chunk building, retrieval, chat, explanations
// and history display.
type StudyService struct {
	chunker   *ChunkerService
	assembler *ContextAssembler
	ai        AIService
	documents repository.DocumentRepo
	histories repository.ChatHistoryRepo
	topK      int
	turnLocks keyedMutex
}

func NewStudyService(
	chunker *ChunkerService,
	assembler *ContextAssembler,
	ai AIService,
	documents repository.DocumentRepo,
	histories repository.ChatHistoryRepo,
	topK int,
) *StudyService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &StudyService{
		chunker:   chunker,
		assembler: assembler,
		ai:        ai,
		documents: documents,
		histories: histories,
		topK:      topK,
	}
}

// BuildChunks splits the extracted text into chunks and persists them,
// flipping the document from processing to ready. It is invoked once
// when text extraction finishes; a second call fails with
// types.ErrChunksExist. Empty text legitimately yields zero chunks.
func (s *StudyService) BuildChunks(ctx context.Context, documentID, extractedText string) (int, error) {
	if documentID == "" {
		return 0, fmt.Errorf("%w: missing document id", types.ErrInvalidInput)
	}
	chunks := s.chunker.ChunkText(extractedText)
	if err := s.documents.SetChunks(ctx, documentID, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// Retrieve scores the document's chunks against the query and returns
// the top k with their indices for citation. A document with zero
// chunks returns an empty result, not an error.
func (s *StudyService) Retrieve(ctx context.Context, documentID, query string, k int) ([]types.RetrievedChunk, error) {
	chunks, err := s.retrieveChunks(ctx, documentID, query, k)
	if err != nil {
		return nil, err
	}
	out := make([]types.RetrievedChunk, 0, len(chunks))
	for _, ch := range chunks {
		out = append(out, types.RetrievedChunk{
			ChunkIndex: ch.Index,
			Content:    ch.Content,
		})
	}
	return out, nil
}

// Chat runs one chat turn: retrieve grounding chunks, assemble the
// prompt with the conversation tail, call the gateway, and only then
// append the (user, assistant) pair to the history. A generation
// failure leaves the history untouched.
func (s *StudyService) Chat(ctx context.Context, userID, documentID, question string) (*types.ChatTurn, error) {
	chunks, prompt, err := s.prepareChat(ctx, userID, documentID, question)
	if err != nil {
		return nil, err
	}

	answer, err := s.ai.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrGenerationFailure, err)
	}

	indices := chunkIndices(chunks)
	if err := s.RecordChatTurn(ctx, userID, documentID, question, answer, indices); err != nil {
		return nil, err
	}
	return &types.ChatTurn{
		Question:       question,
		Answer:         answer,
		RelevantChunks: indices,
	}, nil
}

// ChatStream is Chat with the answer streamed to the handler as it is
// generated. The turn is recorded only after the stream completes.
func (s *StudyService) ChatStream(ctx context.Context, userID, documentID, question string, handler types.StreamHandler) (*types.ChatTurn, error) {
	chunks, prompt, err := s.prepareChat(ctx, userID, documentID, question)
	if err != nil {
		return nil, err
	}

	var answer strings.Builder
	err = s.ai.GenerateStream(ctx, prompt, func(delta string) {
		answer.WriteString(delta)
		handler(delta)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrGenerationFailure, err)
	}

	indices := chunkIndices(chunks)
	if err := s.RecordChatTurn(ctx, userID, documentID, question, answer.String(), indices); err != nil {
		return nil, err
	}
	return &types.ChatTurn{
		Question:       question,
		Answer:         answer.String(),
		RelevantChunks: indices,
	}, nil
}

// ExplainConcept retrieves the chunks most relevant to the concept and
// asks the gateway for an explanation grounded in them. Explanations
// are stateless; nothing is appended to any history.
func (s *StudyService) ExplainConcept(ctx context.Context, documentID, concept string) (*types.Explanation, error) {
	chunks, err := s.retrieveChunks(ctx, documentID, concept, s.topK)
	if err != nil {
		return nil, err
	}
	prompt := s.assembler.BuildExplainPrompt(concept, chunks)
	explanation, err := s.ai.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrGenerationFailure, err)
	}
	return &types.Explanation{
		Concept:        concept,
		Explanation:    explanation,
		RelevantChunks: chunkIndices(chunks),
	}, nil
}

// Summarize sends the whole extracted text through the gateway,
// bypassing retrieval the way flashcard and quiz generation do.
func (s *StudyService) Summarize(ctx context.Context, documentID string) (string, error) {
	if documentID == "" {
		return "", fmt.Errorf("%w: missing document id", types.ErrInvalidInput)
	}
	doc, err := s.documents.GetDocument(ctx, documentID)
	if err != nil {
		return "", err
	}
	if doc.Status != types.DOCUMENT_STATUS_READY {
		return "", types.ErrDocumentNotReady
	}
	summary, err := s.ai.Generate(ctx, s.assembler.BuildSummaryPrompt(doc.ExtractedText))
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrGenerationFailure, err)
	}
	return summary, nil
}

// RecordChatTurn appends the user question and assistant answer as one
// atomic turn. Appends for the same (user, document) pair are
// serialized with a per-key lock; the lock is never held across a
// gateway call.
func (s *StudyService) RecordChatTurn(ctx context.Context, userID, documentID, question, answer string, relevantChunks []int) error {
	if userID == "" || documentID == "" {
		return fmt.Errorf("%w: missing user or document id", types.ErrInvalidInput)
	}
	now := time.Now().Unix()
	userMsg := types.Message{
		Role:           types.MESSAGE_ROLE_USER,
		Content:        question,
		Timestamp:      now,
		RelevantChunks: []int{},
	}
	assistantMsg := types.Message{
		Role:           types.MESSAGE_ROLE_ASSISTANT,
		Content:        answer,
		Timestamp:      now,
		RelevantChunks: relevantChunks,
	}

	unlock := s.turnLocks.lock(userID + "/" + documentID)
	defer unlock()
	return s.histories.AppendTurn(ctx, userID, documentID, userMsg, assistantMsg)
}

// GetHistory returns the ordered conversation log for display, empty
// when the pair has no history yet.
func (s *StudyService) GetHistory(ctx context.Context, userID, documentID string) ([]types.Message, error) {
	if userID == "" || documentID == "" {
		return nil, fmt.Errorf("%w: missing user or document id", types.ErrInvalidInput)
	}
	return s.histories.GetMessages(ctx, userID, documentID)
}

func (s *StudyService) prepareChat(ctx context.Context, userID, documentID, question string) ([]types.Chunk, string, error) {
	if userID == "" {
		return nil, "", fmt.Errorf("%w: missing user id", types.ErrInvalidInput)
	}
	chunks, err := s.retrieveChunks(ctx, documentID, question, s.topK)
	if err != nil {
		return nil, "", err
	}
	history, err := s.histories.GetMessages(ctx, userID, documentID)
	if err != nil {
		return nil, "", err
	}
	prompt := s.assembler.BuildChatPrompt(question, chunks, history)
	return chunks, prompt, nil
}

// retrieveChunks is the scoring pipeline shared by Retrieve, Chat and
// ExplainConcept: fresh per request, no caching, no locks.
func (s *StudyService) retrieveChunks(ctx context.Context, documentID, query string, k int) ([]types.Chunk, error) {
	if documentID == "" {
		return nil, fmt.Errorf("%w: missing document id", types.ErrInvalidInput)
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", types.ErrInvalidInput)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1", types.ErrInvalidInput)
	}
	doc, err := s.documents.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != types.DOCUMENT_STATUS_READY {
		return nil, types.ErrDocumentNotReady
	}
	if len(doc.Chunks) == 0 {
		// An empty document has nothing to ground on.
		return []types.Chunk{}, nil
	}
	scored := ScoreChunks(query, doc.Chunks)
	return TopK(scored, doc.Chunks, k), nil
}

func chunkIndices(chunks []types.Chunk) []int {
	indices := make([]int, 0, len(chunks))
	for _, ch := range chunks {
		indices = append(indices, ch.Index)
	}
	return indices
}

// keyedMutex hands out one mutex per key so chat turns for the same
// (user, document) pair serialize while everything else runs in
// parallel.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
	return m.Unlock
}
