package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tieubaoca/docstudy-be/service"
	"github.com/tieubaoca/docstudy-be/types"
)

type ExplainHandler struct {
	study *service.StudyService
}

func NewExplainHandler(study *service.StudyService) *ExplainHandler {
	return &ExplainHandler{
		study: study,
	}
}

// HandleExplain explains a concept using the document chunks most
// relevant to it. Stateless; nothing is written to chat history.
func (h *ExplainHandler) HandleExplain() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ExplainRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "Invalid request body")
			return
		}
		if req.DocumentID == "" || strings.TrimSpace(req.Concept) == "" {
			writeBadRequest(w, "Please provide document_id and concept")
			return
		}

		explanation, err := h.study.ExplainConcept(r.Context(), req.DocumentID, req.Concept)
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, explanation)
	}
}

// HandleSummarize sends the whole document through the generation
// gateway, bypassing retrieval.
func (h *ExplainHandler) HandleSummarize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SummarizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "Invalid request body")
			return
		}
		if req.DocumentID == "" {
			writeBadRequest(w, "Please provide document_id")
			return
		}

		summary, err := h.study.Summarize(r.Context(), req.DocumentID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, types.SummarizeResponse{
			DocumentID: req.DocumentID,
			Summary:    summary,
		})
	}
}
