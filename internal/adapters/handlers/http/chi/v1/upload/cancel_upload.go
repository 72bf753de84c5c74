package upload

import (
	"errors"
	"net/http"

	"mediasend/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CancelUploadV1 is the function that handles canceling an in-flight upload
func (h *HandlerV1) CancelUploadV1(w http.ResponseWriter, r *http.Request) {

	uploadID := chi.URLParam(r, "uploadID")
	if uploadID == "" {
		http.Error(w, "upload id is required", http.StatusBadRequest)
		return
	}
	uuidUploadID, parseErr := uuid.Parse(uploadID)
	if parseErr != nil {
		http.Error(w, parseErr.Error(), http.StatusBadRequest)
		return
	}

	err := h.sendService.CancelUpload(uuidUploadID)
	switch {
	case errors.Is(err, domain.ErrUploadNotFound):
		http.Error(w, "upload not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error canceling upload", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		w.WriteHeader(http.StatusNoContent)
		return
	}
}
