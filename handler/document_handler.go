package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tieubaoca/docstudy-be/repository"
	"github.com/tieubaoca/docstudy-be/service"
	"github.com/tieubaoca/docstudy-be/types"
)

type DocumentHandler struct {
	fileService *service.FileService
	documents   repository.DocumentRepo
}

func NewDocumentHandler(fileService *service.FileService, documents repository.DocumentRepo) *DocumentHandler {
	return &DocumentHandler{
		fileService: fileService,
		documents:   documents,
	}
}

// HandleUpload accepts a multipart text upload (field "file", optional
// JSON field "metadata") and returns the new document id with its chunk
// count.
func (h *DocumentHandler) HandleUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			writeBadRequest(w, "Invalid file")
			return
		}
		defer file.Close()

		const maxSize = 10 << 20
		if header.Size > maxSize {
			writeBadRequest(w, "File too large")
			return
		}

		var req types.UploadRequest
		if metadata := r.FormValue("metadata"); metadata != "" {
			if err := json.Unmarshal([]byte(metadata), &req); err != nil {
				writeBadRequest(w, "Invalid metadata")
				return
			}
		}

		resp, err := h.fileService.UploadDocument(r.Context(), req, header)
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, resp)
	}
}

// HandleGetChunks lists a document's chunks with indices and offsets,
// mainly for highlighting and retrieval debugging.
func (h *DocumentHandler) HandleGetChunks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		documentID := r.PathValue("id")
		if documentID == "" {
			writeBadRequest(w, "document id is required")
			return
		}

		chunks, err := h.documents.GetChunks(r.Context(), documentID)
		if err != nil {
			writeError(w, err)
			return
		}
		if chunks == nil {
			chunks = []types.Chunk{}
		}
		writeData(w, chunks)
	}
}
