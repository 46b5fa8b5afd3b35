package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tieubaoca/docstudy-be/service"
	"github.com/tieubaoca/docstudy-be/types"
)

type RetrieveHandler struct {
	study *service.StudyService
}

func NewRetrieveHandler(study *service.StudyService) *RetrieveHandler {
	return &RetrieveHandler{
		study: study,
	}
}

// HandleRetrieve scores a document's chunks against a query and returns
// the top k with their indices. Used by clients that build their own
// prompts and for debugging retrieval quality.
func (h *RetrieveHandler) HandleRetrieve() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RetrieveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "Invalid request body")
			return
		}
		if req.K == 0 {
			req.K = service.DefaultTopK
		}

		chunks, err := h.study.Retrieve(r.Context(), req.DocumentID, req.Query, req.K)
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, types.RetrieveResponse{
			DocumentID: req.DocumentID,
			Chunks:     chunks,
		})
	}
}
