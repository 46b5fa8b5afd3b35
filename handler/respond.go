package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tieubaoca/docstudy-be/types"
)

func writeData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(types.DataResponse{
		Status: "success",
		Data:   data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusForError(err))
	json.NewEncoder(w).Encode(types.DataResponse{
		Status:  "error",
		Message: err.Error(),
	})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(types.DataResponse{
		Status:  "error",
		Message: message,
	})
}

// statusForError maps the core's error kinds onto HTTP statuses.
// Generation failures are expected operational errors and surface as a
// bad gateway so clients can show "try again".
func statusForError(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrChunksExist), errors.Is(err, types.ErrDocumentNotReady):
		return http.StatusConflict
	case errors.Is(err, types.ErrGenerationFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
