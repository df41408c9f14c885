// Package http provides HTTP handlers for managing accounts.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/atinyakov/AccountKeeper/internal/models"
	"github.com/atinyakov/AccountKeeper/internal/service"
	"github.com/atinyakov/AccountKeeper/internal/validation"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AccountService defines the account operations required by the AccountHandler.
type AccountService interface {
	// List returns the accounts in display order.
	List() []models.Account
	// Count returns the number of accounts.
	Count() int
	// CanAdd reports whether a new blank account may be appended.
	CanAdd() bool
	// Add appends a blank account or returns service.ErrAddBlocked.
	Add() (models.Account, error)
	// Update applies a partial update and returns the resulting account.
	Update(id int64, patch models.AccountPatch) (models.Account, bool, error)
	// Remove deletes an account if it exists.
	Remove(id int64) (bool, error)
	// Validate returns the field errors of an account.
	Validate(id int64) (validation.Errors, bool)
}

// AccountHandler handles HTTP requests for the account list.
type AccountHandler struct {
	// AccountService performs the underlying account operations.
	AccountService AccountService
	// Logger reports persistence failures. Nil disables logging.
	Logger *zap.Logger
}

// ListResponse is the body of GET /api/accounts.
type ListResponse struct {
	Count    int              `json:"count"`
	Accounts []models.Account `json:"accounts"`
}

// ErrorsResponse is the body of GET /api/accounts/{id}/errors.
type ErrorsResponse struct {
	Valid  bool              `json:"valid"`
	Errors validation.Errors `json:"errors"`
}

// List handles GET /api/accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts := h.AccountService.List()
	writeJSON(w, http.StatusOK, ListResponse{Count: len(accounts), Accounts: accounts})
}

// CanAdd handles GET /api/accounts/can-add.
func (h *AccountHandler) CanAdd(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"canAdd": h.AccountService.CanAdd()})
}

// Add handles POST /api/accounts. It responds 409 while an incomplete
// account exists.
func (h *AccountHandler) Add(w http.ResponseWriter, r *http.Request) {
	a, err := h.AccountService.Add()
	if errors.Is(err, service.ErrAddBlocked) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		h.internalError(w, "failed to add account", err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// Update handles PATCH /api/accounts/{id}. The body is a partial account;
// a null password clears it.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	var patch models.AccountPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	a, found, err := h.AccountService.Update(id, patch)
	if err != nil {
		h.internalError(w, "failed to update account", err)
		return
	}
	if !found {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Remove handles DELETE /api/accounts/{id}. Removing an unknown id is not
// an error.
func (h *AccountHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if _, err := h.AccountService.Remove(id); err != nil {
		h.internalError(w, "failed to remove account", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Errors handles GET /api/accounts/{id}/errors.
func (h *AccountHandler) Errors(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	errs, found := h.AccountService.Validate(id)
	if !found {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, ErrorsResponse{Valid: len(errs) == 0, Errors: errs})
}

func (h *AccountHandler) internalError(w http.ResponseWriter, msg string, err error) {
	if h.Logger != nil {
		h.Logger.Error(msg, zap.Error(err))
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
