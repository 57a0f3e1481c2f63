package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"meusgastos/internal/domain"
	"meusgastos/internal/repository"
	"meusgastos/internal/service"

	"github.com/shopspring/decimal"
)

// LedgerHandler handles ledger API requests
type LedgerHandler struct {
	svc        *service.Ledger
	entryLimit int
}

// NewLedgerHandler creates a new ledger handler. entryLimit is the
// default page size for entry listings when the request gives none.
func NewLedgerHandler(svc *service.Ledger, entryLimit int) *LedgerHandler {
	if entryLimit <= 0 {
		entryLimit = service.DefaultEntryLimit
	}
	return &LedgerHandler{svc: svc, entryLimit: entryLimit}
}

// Register wires the ledger routes onto mux
func (h *LedgerHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/categories", h.ListCategories)
	mux.HandleFunc("POST /api/categories", h.CreateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", h.DeleteCategory)

	mux.HandleFunc("GET /api/payment-types", h.ListPaymentTypes)
	mux.HandleFunc("POST /api/payment-types", h.CreatePaymentType)
	mux.HandleFunc("DELETE /api/payment-types/{id}", h.DeletePaymentType)

	mux.HandleFunc("GET /api/entries", h.ListEntries)
	mux.HandleFunc("POST /api/entries", h.CreateEntry)
	mux.HandleFunc("DELETE /api/entries/{id}", h.DeleteEntry)

	mux.HandleFunc("GET /api/summary", h.GetSummary)
}

// ErrorResponse is the JSON body for every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type createDescriptionReq struct {
	Description string `json:"description"`
}

type createEntryReq struct {
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	CategoryID    int64           `json:"category_id"`
	PaymentTypeID int64           `json:"payment_type_id"`
	Direction     string          `json:"direction"`
	Note          string          `json:"note"`
}

type summaryResp struct {
	Credits decimal.Decimal `json:"credits"`
	Debits  decimal.Decimal `json:"debits"`
	Balance decimal.Decimal `json:"balance"`
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

// ListCategories returns all categories ordered by description
func (h *LedgerHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.writeOpError(w, "list categories", "", err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	h.writeJSON(w, categories, http.StatusOK)
}

// CreateCategory registers a new category
func (h *LedgerHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createDescriptionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.svc.CreateCategory(r.Context(), req.Description)
	if err != nil {
		h.writeOpError(w, "create category", "", err)
		return
	}
	h.writeJSON(w, created, http.StatusCreated)
}

// DeleteCategory removes a category unless entries still reference it
func (h *LedgerHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteCategory(r.Context(), id); err != nil {
		h.writeOpError(w, "delete category", "category is still used by existing entries", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Payment types
// ---------------------------------------------------------------------------

// ListPaymentTypes returns all payment types ordered by description
func (h *LedgerHandler) ListPaymentTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.ListPaymentTypes(r.Context())
	if err != nil {
		h.writeOpError(w, "list payment types", "", err)
		return
	}
	if types == nil {
		types = []domain.PaymentType{}
	}
	h.writeJSON(w, types, http.StatusOK)
}

// CreatePaymentType registers a new payment type
func (h *LedgerHandler) CreatePaymentType(w http.ResponseWriter, r *http.Request) {
	var req createDescriptionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.svc.CreatePaymentType(r.Context(), req.Description)
	if err != nil {
		h.writeOpError(w, "create payment type", "", err)
		return
	}
	h.writeJSON(w, created, http.StatusCreated)
}

// DeletePaymentType removes a payment type unless entries reference it
func (h *LedgerHandler) DeletePaymentType(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeletePaymentType(r.Context(), id); err != nil {
		h.writeOpError(w, "delete payment type", "payment type is still used by existing entries", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Entries
// ---------------------------------------------------------------------------

// ListEntries returns the most recent entries, newest first
func (h *LedgerHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	limit := h.entryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.writeError(w, "Invalid limit", "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.svc.ListEntries(r.Context(), limit)
	if err != nil {
		h.writeOpError(w, "list entries", "", err)
		return
	}
	if entries == nil {
		entries = []domain.EntryView{}
	}
	h.writeJSON(w, entries, http.StatusOK)
}

// CreateEntry records a new financial movement
func (h *LedgerHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	entry := &domain.Entry{
		Date:          req.Date,
		Amount:        req.Amount,
		CategoryID:    req.CategoryID,
		PaymentTypeID: req.PaymentTypeID,
		Direction:     domain.Direction(req.Direction),
		Note:          req.Note,
	}

	created, err := h.svc.CreateEntry(r.Context(), entry)
	if err != nil {
		h.writeOpError(w, "create entry", "category or payment type does not exist", err)
		return
	}
	h.writeJSON(w, created, http.StatusCreated)
}

// DeleteEntry removes an entry by id
func (h *LedgerHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteEntry(r.Context(), id); err != nil {
		h.writeOpError(w, "delete entry", "", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSummary returns the totals per direction plus the derived balance
func (h *LedgerHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context())
	if err != nil {
		h.writeOpError(w, "summary", "", err)
		return
	}

	h.writeJSON(w, summaryResp{
		Credits: summary.Credits,
		Debits:  summary.Debits,
		Balance: summary.Balance(),
	}, http.StatusOK)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// pathID parses the {id} path value; writes a 400 and returns false when
// it is not a positive integer
func (h *LedgerHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, "Invalid id", "id must be a positive integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeOpError maps the error taxonomy to HTTP statuses. fkDetail is the
// operation-specific message for referential integrity conflicts (a
// delete blocked by references reads differently from a create pointing
// at a missing row).
func (h *LedgerHandler) writeOpError(w http.ResponseWriter, op, fkDetail string, err error) {
	var verr *repository.ValidationError
	if errors.As(err, &verr) {
		h.writeError(w, "Invalid input", verr.Error(), http.StatusBadRequest)
		return
	}

	var serr *repository.StorageError
	if errors.As(err, &serr) {
		switch serr.Kind {
		case repository.KindUnique:
			h.writeError(w, "Already exists", "a record with this description already exists", http.StatusConflict)
			return
		case repository.KindForeignKey:
			h.writeError(w, "Conflict", fkDetail, http.StatusConflict)
			return
		}
	}

	log.Printf("Failed to %s: %v", op, err)
	h.writeError(w, "Internal error", err.Error(), http.StatusInternalServerError)
}

func (h *LedgerHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func (h *LedgerHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}
