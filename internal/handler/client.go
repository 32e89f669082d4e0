package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clientbook/clientbook/internal/handler/dto"
	"github.com/clientbook/clientbook/internal/service"
)

// ClientHandler handles HTTP requests for client operations.
type ClientHandler struct {
	svc    *service.ClientService
	logger *slog.Logger
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(svc *service.ClientService, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{svc: svc, logger: logger}
}

// Create handles POST /api/clients.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.ClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.svc.Create(r.Context(), userID, req.ToInput())
	if err != nil {
		handleServiceError(h.logger, w, r, err)
		return
	}

	h.logger.Info("client_created", "client_id", c.ID, "user_id", userID)
	writeJSON(w, http.StatusCreated, c)
}

// List handles GET /api/clients.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	clients, err := h.svc.List(r.Context(), userID)
	if err != nil {
		handleServiceError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, clients)
}

// Get handles GET /api/clients/{id}.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	c, err := h.svc.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// Update handles PUT /api/clients/{id}.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.ClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.svc.Update(r.Context(), userID, chi.URLParam(r, "id"), req.ToPatch())
	if err != nil {
		handleServiceError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// Delete handles DELETE /api/clients/{id}.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		handleServiceError(h.logger, w, r, err)
		return
	}

	h.logger.Info("client_deleted", "client_id", id, "user_id", userID)
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Client deleted successfully"})
}
