package handler

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/DukeRupert/fireaudit/internal/service"
)

// notificationHistoryLimit is how many notifications the client history returns.
const notificationHistoryLimit = 50

// ClientHandler handles client registry and reminder requests.
type ClientHandler struct {
	clientService       service.ClientService
	notificationService service.NotificationService
	logger              *slog.Logger
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(
	clientService service.ClientService,
	notificationService service.NotificationService,
	logger *slog.Logger,
) *ClientHandler {
	return &ClientHandler{
		clientService:       clientService,
		notificationService: notificationService,
		logger:              logger,
	}
}

// RegisterRoutes registers client routes. reminderLimit wraps the manual
// reminder endpoint.
func (h *ClientHandler) RegisterRoutes(mux *http.ServeMux, reminderLimit func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /api/clients", h.Create)
	mux.HandleFunc("GET /api/clients", h.List)
	mux.HandleFunc("GET /api/clients/{id}", h.Show)
	mux.HandleFunc("PUT /api/clients/{id}", h.Update)
	mux.HandleFunc("PUT /api/clients/{id}/next-inspection", h.SetNextInspection)
	mux.Handle("POST /api/clients/{id}/reminders", reminderLimit(http.HandlerFunc(h.SendReminder)))
	mux.HandleFunc("GET /api/clients/{id}/notifications", h.Notifications)
}

// =============================================================================
// POST /api/clients - Create Client
// =============================================================================

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handler.client.create"

	var req clientRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	client, err := h.clientService.Create(r.Context(), domain.CreateClientParams{
		Name:               req.Name,
		Address:            req.Address,
		Phone:              req.Phone,
		Email:              req.Email,
		Type:               req.Type,
		Structure:          req.Structure,
		NextInspectionDate: datePtr(req.NextInspectionDate),
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, newClientResponse(client))
}

// =============================================================================
// GET /api/clients - List Clients
// =============================================================================

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)

	result, err := h.clientService.List(r.Context(), domain.ListClientsParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	items := make([]clientResponse, len(result.Clients))
	for i := range result.Clients {
		items[i] = newClientResponse(&result.Clients[i])
	}

	writeJSON(w, http.StatusOK, pageResponse[clientResponse]{
		Items:   items,
		Total:   result.Total,
		Limit:   result.Limit,
		Offset:  result.Offset,
		HasMore: result.HasMore(),
	})
}

// =============================================================================
// GET /api/clients/{id} - Show Client
// =============================================================================

func (h *ClientHandler) Show(w http.ResponseWriter, r *http.Request) {
	const op = "handler.client.show"

	id, err := pathUUID(r, op, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	client, err := h.clientService.GetByID(r.Context(), id)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newClientResponse(client))
}

// =============================================================================
// PUT /api/clients/{id} - Update Client
// =============================================================================

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handler.client.update"

	id, err := pathUUID(r, op, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	var req clientRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	client, err := h.clientService.Update(r.Context(), domain.UpdateClientParams{
		ID:        id,
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
		Type:      req.Type,
		Structure: req.Structure,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newClientResponse(client))
}

// =============================================================================
// PUT /api/clients/{id}/next-inspection - Override Schedule
// =============================================================================

// SetNextInspection sets or clears the next inspection date. A null date
// unschedules the client.
func (h *ClientHandler) SetNextInspection(w http.ResponseWriter, r *http.Request) {
	const op = "handler.client.set_next_inspection"

	id, err := pathUUID(r, op, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	var req nextInspectionRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	if err := h.clientService.SetNextInspection(r.Context(), id, datePtr(req.Date)); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	client, err := h.clientService.GetByID(r.Context(), id)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newClientResponse(client))
}

// =============================================================================
// POST /api/clients/{id}/reminders - Manual Reminder
// =============================================================================

// SendReminder emails the client about its scheduled inspection. A failed
// delivery is still logged; the response carries the error.
func (h *ClientHandler) SendReminder(w http.ResponseWriter, r *http.Request) {
	const op = "handler.client.send_reminder"

	id, err := pathUUID(r, op, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	entry, err := h.notificationService.SendManualReminder(r.Context(), id)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, newNotificationResponse(entry))
}

// =============================================================================
// GET /api/clients/{id}/notifications - Notification History
// =============================================================================

func (h *ClientHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	const op = "handler.client.notifications"

	id, err := pathUUID(r, op, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	// 404 for unknown clients rather than an empty history.
	if _, err := h.clientService.GetByID(r.Context(), id); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	logs, err := h.notificationService.ListByClient(r.Context(), id, notificationHistoryLimit)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	items := make([]notificationResponse, len(logs))
	for i := range logs {
		items[i] = newNotificationResponse(&logs[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
