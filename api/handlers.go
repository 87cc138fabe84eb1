/*
handlers.go - HTTP API handlers for the tool rental service

PURPOSE:
  Exposes the catalog and the rental agreement engine via REST API.
  Handles HTTP request/response and JSON serialization, and delegates
  to the rental package.

ENDPOINTS:
  Catalog:
    GET    /api/tool-brand             List brands
    POST   /api/tool-brand             Create brand
    GET    /api/tool-type              List tool types
    POST   /api/tool-type              Create tool type
    GET    /api/tool                   List tools
    POST   /api/tool                   Create tool
    GET    /api/tool/{toolId}          Get tool
    GET    /api/tool/{toolId}/rentals  Agreements of a tool's rentals

  Rentals:
    POST   /api/rental/quote           Price a rental, nothing stored
    POST   /api/rental                 Check out a tool
    GET    /api/rental/{rentalId}      Agreement of a stored rental
    GET    /api/rental/{rentalId}/agreement  Printed agreement (text/plain)

ERROR HANDLING:
  Errors are returned as ErrorResponse JSON:
  - 400: Validation errors, malformed body or id
  - 404: Tool, rental, brand or tool type not found
  - 406: Duplicate brand name, tool type name or tool code
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/warp/rental-engine/pricing"
	"github.com/warp/rental-engine/rental"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Rentals *rental.Service
	Catalog *rental.Catalog

	// DB is checked by /healthz when set.
	DB Pinger
}

// NewHandler creates a new handler. db may be nil.
func NewHandler(rentals *rental.Service, catalog *rental.Catalog, db Pinger) *Handler {
	return &Handler{Rentals: rentals, Catalog: catalog, DB: db}
}

// =============================================================================
// BRAND HANDLERS
// =============================================================================

// ListBrands returns all brands.
func (h *Handler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.Catalog.ListBrands(r.Context())
	if err != nil {
		writeDomainError(w, "Failed to list tool brands", err)
		return
	}

	dtos := make([]BrandDTO, len(brands))
	for i, b := range brands {
		dtos[i] = toBrandDTO(b)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateBrand creates a new brand.
func (h *Handler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req CreateBrandRequest
	if !decodeBody(w, r, &req) {
		return
	}

	b, err := h.Catalog.AddBrand(r.Context(), req.Name)
	if err != nil {
		writeDomainError(w, "Failed to create tool brand", err)
		return
	}
	writeJSON(w, http.StatusCreated, toBrandDTO(b))
}

// =============================================================================
// TOOL TYPE HANDLERS
// =============================================================================

// ListToolTypes returns all tool types.
func (h *Handler) ListToolTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Catalog.ListToolTypes(r.Context())
	if err != nil {
		writeDomainError(w, "Failed to list tool types", err)
		return
	}

	dtos := make([]ToolTypeDTO, len(types))
	for i, tt := range types {
		dtos[i] = toToolTypeDTO(tt)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateToolType creates a new tool type.
func (h *Handler) CreateToolType(w http.ResponseWriter, r *http.Request) {
	var req CreateToolTypeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tt, err := h.Catalog.AddToolType(r.Context(), rental.ToolType{
		Name: req.Name,
		Policy: pricing.ChargePolicy{
			DailyRate:     req.DailyCharge,
			ChargeWeekday: req.WeekdayCharge,
			ChargeWeekend: req.WeekendCharge,
			ChargeHoliday: req.HolidayCharge,
		},
	})
	if err != nil {
		writeDomainError(w, "Failed to create tool type", err)
		return
	}
	writeJSON(w, http.StatusCreated, toToolTypeDTO(tt))
}

// =============================================================================
// TOOL HANDLERS
// =============================================================================

// ListTools returns all tools.
func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	tools, err := h.Catalog.ListTools(r.Context())
	if err != nil {
		writeDomainError(w, "Failed to list tools", err)
		return
	}

	dtos := make([]ToolDTO, len(tools))
	for i, t := range tools {
		dtos[i] = toToolDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetTool returns a single tool.
func (h *Handler) GetTool(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "toolId", "tool")
	if !ok {
		return
	}

	t, err := h.Catalog.GetTool(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to get tool", err)
		return
	}
	writeJSON(w, http.StatusOK, toToolDTO(t))
}

// ListToolRentals returns the agreements of every rental of a tool.
func (h *Handler) ListToolRentals(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "toolId", "tool")
	if !ok {
		return
	}

	agreements, err := h.Rentals.ToolRentals(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to list tool rentals", err)
		return
	}

	dtos := make([]AgreementDTO, len(agreements))
	for i, a := range agreements {
		dtos[i] = toAgreementDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateTool creates a new tool.
func (h *Handler) CreateTool(w http.ResponseWriter, r *http.Request) {
	var req CreateToolRequest
	if !decodeBody(w, r, &req) {
		return
	}

	t, err := h.Catalog.AddTool(r.Context(), req.Code, req.BrandID, req.TypeID)
	if err != nil {
		writeDomainError(w, "Failed to create tool", err)
		return
	}
	writeJSON(w, http.StatusCreated, toToolDTO(t))
}

// =============================================================================
// RENTAL HANDLERS
// =============================================================================

// QuoteRental prices a rental without recording it.
func (h *Handler) QuoteRental(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}

	a, err := h.Rentals.Quote(r.Context(), req.toRequest())
	if err != nil {
		writeDomainError(w, "Failed to quote rental", err)
		return
	}
	writeJSON(w, http.StatusOK, toAgreementDTO(a))
}

// Checkout records a rental and returns its agreement.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}

	a, err := h.Rentals.Checkout(r.Context(), req.toRequest())
	if err != nil {
		writeDomainError(w, "Failed to check out tool", err)
		return
	}
	w.Header().Set("Location", "/api/rental/"+strconv.FormatInt(a.RentalID, 10))
	writeJSON(w, http.StatusCreated, toAgreementDTO(a))
}

// GetRental returns the agreement of a stored rental.
func (h *Handler) GetRental(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "rentalId", "rental")
	if !ok {
		return
	}

	a, err := h.Rentals.Agreement(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to get rental", err)
		return
	}
	writeJSON(w, http.StatusOK, toAgreementDTO(a))
}

// GetAgreementDocument returns the printed agreement as plain text.
func (h *Handler) GetAgreementDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "rentalId", "rental")
	if !ok {
		return
	}

	doc, err := h.Rentals.RenderDocument(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to render agreement", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}

// =============================================================================
// HEALTH
// =============================================================================

// Health reports liveness, including the database when one is attached.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		if err := h.DB.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "Database unavailable", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, HealthDTO{Status: "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

// pathID parses a positive integer URL parameter.
func pathID(w http.ResponseWriter, r *http.Request, param, label string) (int64, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "Invalid "+label+" id: "+raw, nil)
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

// writeDomainError maps rental errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	var vErr *rental.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Errors:  vErr.Problems,
		})
	case rental.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, rental.ErrDuplicate):
		writeError(w, http.StatusNotAcceptable, err.Error(), nil)
	case rental.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		log.Printf("[API] %s: %v", message, err)
		writeError(w, http.StatusInternalServerError, message, nil)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Status: status, Message: message}
	if err != nil {
		resp.Errors = []string{err.Error()}
	}
	writeJSON(w, status, resp)
}
