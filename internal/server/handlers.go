package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hance08/dealflow/internal/model"
	"github.com/hance08/dealflow/internal/service"
	"github.com/hance08/dealflow/internal/store"
	"github.com/hance08/dealflow/internal/validation"
	"github.com/pterm/pterm"
)

// TransactionService is the part of the service layer the API needs.
type TransactionService interface {
	ListTransactions(limit int) ([]*model.Transaction, error)
	GetTransaction(id int64) (*model.Transaction, error)
	CreateTransaction(input service.TransactionInput) (*model.Transaction, error)
	UpdateStatus(id int64, status model.Status) (*model.Transaction, error)
	History(id int64) ([]*model.StatusChange, error)
}

// APIHandlers exposes transaction endpoints.
type APIHandlers struct {
	logger *pterm.Logger
	svc    TransactionService
}

func NewAPIHandlers(logger *pterm.Logger, svc TransactionService) *APIHandlers {
	return &APIHandlers{logger: logger, svc: svc}
}

func (h *APIHandlers) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /transactions", h.handleList)
	mux.HandleFunc("POST /transactions", h.handleCreate)
	mux.HandleFunc("GET /transactions/{id}", h.handleGet)
	mux.HandleFunc("PATCH /transactions/{id}", h.handleUpdateStatus)
	mux.HandleFunc("PUT /transactions/{id}", h.handleUpdateStatus)
	mux.HandleFunc("GET /transactions/{id}/history", h.handleHistory)
	return mux
}

type statusUpdateRequest struct {
	ID     *int64 `json:"id"`
	Status string `json:"status"`
}

type createRequest struct {
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Price   string   `json:"price"`
	Parties []string `json:"parties"`
	Status  string   `json:"status"`
}

func (h *APIHandlers) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = v
	}

	txs, err := h.svc.ListTransactions(limit)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if txs == nil {
		txs = []*model.Transaction{}
	}
	respondJSON(w, http.StatusOK, txs)
}

func (h *APIHandlers) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	tx, err := h.svc.GetTransaction(id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tx)
}

func (h *APIHandlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	price, err := validation.ParsePrice(req.Price)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	input := service.TransactionInput{
		Name:    req.Name,
		Address: req.Address,
		Price:   price,
		Parties: req.Parties,
	}
	if req.Status != "" {
		status, err := model.ParseStatus(req.Status)
		if err != nil {
			h.respondServiceError(w, err)
			return
		}
		input.Status = status
	}

	tx, err := h.svc.CreateTransaction(input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tx)
}

func (h *APIHandlers) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID != nil && *req.ID != id {
		respondError(w, http.StatusBadRequest, "id in body does not match the url")
		return
	}

	status, err := model.ParseStatus(req.Status)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	tx, err := h.svc.UpdateStatus(id, status)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tx)
}

func (h *APIHandlers) handleHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	changes, err := h.svc.History(id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if changes == nil {
		changes = []*model.StatusChange{}
	}
	respondJSON(w, http.StatusOK, changes)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid transaction id")
		return 0, false
	}
	return id, true
}

func (h *APIHandlers) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, "transaction not found")
	case errors.Is(err, service.ErrInvalidTransition):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrUnknownStatus):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, store.ErrConstraintViolation):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed", h.logger.Args("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
