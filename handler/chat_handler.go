package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tieubaoca/docstudy-be/service"
	"github.com/tieubaoca/docstudy-be/types"
)

type ChatHandler struct {
	study *service.StudyService
}

func NewChatHandler(study *service.StudyService) *ChatHandler {
	return &ChatHandler{
		study: study,
	}
}

// HandleChat runs one chat turn against a document. The user identity
// comes from the X-User-ID header; auth itself lives upstream.
func (h *ChatHandler) HandleChat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			writeBadRequest(w, "X-User-ID header is required")
			return
		}

		var req types.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "Invalid request body")
			return
		}
		if req.DocumentID == "" || strings.TrimSpace(req.Question) == "" {
			writeBadRequest(w, "Please provide document_id and question")
			return
		}

		turn, err := h.study.Chat(r.Context(), userID, req.DocumentID, req.Question)
		if err != nil {
			writeError(w, err)
			return
		}

		writeData(w, types.ChatResponse{
			Question:       turn.Question,
			Answer:         turn.Answer,
			RelevantChunks: turn.RelevantChunks,
		})
	}
}

// HandleHistory returns the ordered conversation log for a document,
// empty when the user has not chatted with it yet.
func (h *ChatHandler) HandleHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			writeBadRequest(w, "X-User-ID header is required")
			return
		}
		documentID := r.URL.Query().Get("document_id")
		if documentID == "" {
			writeBadRequest(w, "document_id parameter is required")
			return
		}

		messages, err := h.study.GetHistory(r.Context(), userID, documentID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, messages)
	}
}
