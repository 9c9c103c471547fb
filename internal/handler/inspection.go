package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DukeRupert/fireaudit/internal/compliance"
	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/DukeRupert/fireaudit/internal/service"
	"github.com/google/uuid"
)

// maxStructureCount bounds each count of the floor label preview.
const maxStructureCount = 200

// InspectionHandler handles inspection capture and history requests.
type InspectionHandler struct {
	inspectionService service.InspectionService
	logger            *slog.Logger
}

// NewInspectionHandler creates a new InspectionHandler.
func NewInspectionHandler(inspectionService service.InspectionService, logger *slog.Logger) *InspectionHandler {
	return &InspectionHandler{
		inspectionService: inspectionService,
		logger:            logger,
	}
}

// RegisterRoutes registers inspection routes.
func (h *InspectionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/clients/{id}/inspections/new", h.Start)
	mux.HandleFunc("GET /api/clients/{id}/inspections", h.ListByClient)
	mux.HandleFunc("POST /api/inspections/preview", h.Preview)
	mux.HandleFunc("POST /api/inspections", h.Submit)
	mux.HandleFunc("GET /api/inspections", h.List)
	mux.HandleFunc("GET /api/inspections/{id}", h.Show)
	mux.HandleFunc("GET /api/structure/floors", h.Floors)
}

// Start returns a blank findings record for the client's current structure.
// GET /api/clients/{id}/inspections/new
func (h *InspectionHandler) Start(w http.ResponseWriter, r *http.Request) {
	const op = "handler.inspection.start"

	clientID, err := pathUUID(r, op, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	draft, err := h.inspectionService.Start(r.Context(), clientID)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"client":   newClientResponse(draft.Client),
		"findings": draft.Findings,
	})
}

// Preview scores a findings record without storing it.
// POST /api/inspections/preview
func (h *InspectionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	const op = "handler.inspection.preview"

	var findings domain.Findings
	if err := decodeJSON(w, r, op, &findings); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, h.inspectionService.Preview(findings))
}

// Submit stores a completed inspection.
// POST /api/inspections
func (h *InspectionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handler.inspection.submit"

	var req submitInspectionRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	result, err := h.inspectionService.Submit(r.Context(), domain.SubmitInspectionParams{
		ClientID:    req.ClientID,
		InspectorID: req.InspectorID,
		Findings:    req.Findings,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitInspectionResponse{
		Inspection:         newInspectionResponse(result.Inspection, true),
		NextInspectionDate: Date{Time: result.NextInspectionDate},
		ReportJobQueued:    result.ReportJobQueued,
	})
}

// List returns a page of inspections across all clients, newest first.
// GET /api/inspections
func (h *InspectionHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, nil)
}

// ListByClient returns a page of one client's inspections.
// GET /api/clients/{id}/inspections
func (h *InspectionHandler) ListByClient(w http.ResponseWriter, r *http.Request) {
	const op = "handler.inspection.list_by_client"

	clientID, err := pathUUID(r, op, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	h.list(w, r, &clientID)
}

func (h *InspectionHandler) list(w http.ResponseWriter, r *http.Request, clientID *uuid.UUID) {
	limit, offset := pageParams(r)

	result, err := h.inspectionService.List(r.Context(), domain.ListInspectionsParams{
		ClientID: clientID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	items := make([]inspectionResponse, len(result.Inspections))
	for i := range result.Inspections {
		items[i] = newInspectionResponse(&result.Inspections[i], false)
	}

	writeJSON(w, http.StatusOK, pageResponse[inspectionResponse]{
		Items:   items,
		Total:   result.Total,
		Limit:   result.Limit,
		Offset:  result.Offset,
		HasMore: result.HasMore(),
	})
}

// Show returns one inspection with its findings.
// GET /api/inspections/{id}
func (h *InspectionHandler) Show(w http.ResponseWriter, r *http.Request) {
	const op = "handler.inspection.show"

	id, err := pathUUID(r, op, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	inspection, err := h.inspectionService.GetByID(r.Context(), id)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newInspectionResponse(inspection, true))
}

// Floors previews the floor labels generated for a set of structure counts.
// GET /api/structure/floors?basements=&podiums=&floors=
func (h *InspectionHandler) Floors(w http.ResponseWriter, r *http.Request) {
	const op = "handler.inspection.floors"

	q := r.URL.Query()
	counts := make(map[string]int, 3)
	ve := &domain.ValidationError{Op: op}
	for _, name := range []string{"basements", "podiums", "floors"} {
		raw := q.Get(name)
		if raw == "" {
			counts[name] = 0
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxStructureCount {
			ve.Add(name, "Must be a whole number between 0 and 200")
			continue
		}
		counts[name] = n
	}
	if err := ve.OrNil(); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	labels := compliance.FloorLabels(counts["basements"], counts["podiums"], counts["floors"])
	writeJSON(w, http.StatusOK, map[string]any{"structure_map": labels})
}
