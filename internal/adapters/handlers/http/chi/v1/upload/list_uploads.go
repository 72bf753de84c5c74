package upload

import (
	"encoding/json"
	"net/http"

	"mediasend/internal/core/domain"

	"github.com/google/uuid"
)

// V1UploadResponse is one in-flight upload in the list response
type V1UploadResponse struct {
	ID       uuid.UUID `json:"id"`
	RoomID   string    `json:"room_id"`
	FileName string    `json:"file_name"`
	Loaded   int64     `json:"loaded"`
	Total    int64     `json:"total"`
}

// ListUploadsV1 is the function that handles listing in-flight uploads.
// Without query parameters only uploads carrying no relation are returned;
// rel_type and event_id select uploads scoped to that exact relation.
func (h *HandlerV1) ListUploadsV1(w http.ResponseWriter, r *http.Request) {

	relType := r.URL.Query().Get("rel_type")
	eventID := r.URL.Query().Get("event_id")

	var relation *domain.Relation
	if relType != "" || eventID != "" {
		if relType == "" || eventID == "" {
			http.Error(w, "rel_type and event_id must be provided together", http.StatusBadRequest)
			return
		}
		relation = &domain.Relation{Type: relType, EventID: eventID}
	}

	uploads := h.sendService.CurrentUploads(relation)

	resp := make([]V1UploadResponse, 0, len(uploads))
	for _, u := range uploads {
		loaded, total := u.Progress()
		resp = append(resp, V1UploadResponse{
			ID:       u.ID,
			RoomID:   u.RoomID,
			FileName: u.FileName,
			Loaded:   loaded,
			Total:    total,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
