package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clientbook/clientbook/internal/handler/dto"
	"github.com/clientbook/clientbook/internal/service"
)

// MeetingHandler handles HTTP requests for meeting operations.
type MeetingHandler struct {
	svc    *service.MeetingService
	logger *slog.Logger
}

// NewMeetingHandler creates a new MeetingHandler.
func NewMeetingHandler(svc *service.MeetingService, logger *slog.Logger) *MeetingHandler {
	return &MeetingHandler{svc: svc, logger: logger}
}

// Create handles POST /api/meetings.
func (h *MeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.MeetingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.svc.Create(r.Context(), userID, req.ToInput())
	if err != nil {
		handleServiceError(h.logger, w, r, err)
		return
	}

	h.logger.Info("meeting_created", "meeting_id", m.ID, "user_id", userID)
	writeJSON(w, http.StatusCreated, m)
}

// List handles GET /api/meetings.
func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	meetings, err := h.svc.List(r.Context(), userID)
	if err != nil {
		handleServiceError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, meetings)
}

// Get handles GET /api/meetings/{id}.
func (h *MeetingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	m, err := h.svc.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// Update handles PUT /api/meetings/{id}.
func (h *MeetingHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.MeetingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.svc.Update(r.Context(), userID, chi.URLParam(r, "id"), req.ToPatch())
	if err != nil {
		handleServiceError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// Delete handles DELETE /api/meetings/{id}.
func (h *MeetingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		handleServiceError(h.logger, w, r, err)
		return
	}

	h.logger.Info("meeting_deleted", "meeting_id", id, "user_id", userID)
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Meeting deleted successfully"})
}
