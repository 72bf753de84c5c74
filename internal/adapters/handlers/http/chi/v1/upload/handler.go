package upload

import (
	"log/slog"

	"mediasend/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 upload routes
type HandlerV1 struct {
	sendService port.SendService
	logger      *slog.Logger
}

// NewUploadHandlerV1 creates HandlerV1
func NewUploadHandlerV1(service port.SendService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		sendService: service,
		logger:      logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", h.ListUploadsV1)
	router.Delete("/{uploadID}", h.CancelUploadV1)

	return router
}
