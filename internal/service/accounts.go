// Package service provides the account business logic consumed by the UI
// layers, delegating state and persistence to an AccountStore.
package service

import (
	"errors"

	"github.com/atinyakov/AccountKeeper/internal/models"
	"github.com/atinyakov/AccountKeeper/internal/validation"
)

// ErrAddBlocked is returned by Add while an invalid or blank account exists.
var ErrAddBlocked = errors.New("cannot add an account while another one is incomplete")

// AccountStore defines the store operations needed by the AccountService.
type AccountStore interface {
	// Count returns the number of accounts held.
	Count() int
	// Accounts returns a copy of the ordered list.
	Accounts() []models.Account
	// Get returns the account with the given id.
	Get(id int64) (models.Account, bool)
	// AddIf appends a blank account when allow accepts the current list.
	// The check and the append happen atomically.
	AddIf(allow func([]models.Account) bool) (models.Account, bool, error)
	// UpdateAccount merges a partial update into an existing account and
	// returns the result.
	UpdateAccount(id int64, patch models.AccountPatch) (models.Account, bool, error)
	// Remove deletes an account.
	Remove(id int64) (bool, error)
}

// AccountService combines the store with the validation gates the UI relies on.
type AccountService struct {
	// store holds the account list.
	store AccountStore
}

// NewAccountService constructs an AccountService with the provided store.
func NewAccountService(store AccountStore) *AccountService {
	return &AccountService{store: store}
}

// List returns the accounts in display order.
func (s *AccountService) List() []models.Account {
	return s.store.Accounts()
}

// Count returns the number of accounts.
func (s *AccountService) Count() int {
	return s.store.Count()
}

// CanAdd reports whether a new blank account may be appended.
func (s *AccountService) CanAdd() bool {
	return validation.CanAddNewAccount(s.store.Accounts())
}

// Add appends a blank account unless CanAdd is false.
func (s *AccountService) Add() (models.Account, error) {
	a, added, err := s.store.AddIf(validation.CanAddNewAccount)
	if err != nil {
		return a, err
	}
	if !added {
		return models.Account{}, ErrAddBlocked
	}
	return a, nil
}

// Update applies patch and returns the resulting account. The boolean is
// false when no account has that id.
func (s *AccountService) Update(id int64, patch models.AccountPatch) (models.Account, bool, error) {
	return s.store.UpdateAccount(id, patch)
}

// Remove deletes the account with the given id, if any.
func (s *AccountService) Remove(id int64) (bool, error) {
	return s.store.Remove(id)
}

// Validate returns the field errors of the account with the given id.
func (s *AccountService) Validate(id int64) (validation.Errors, bool) {
	a, ok := s.store.Get(id)
	if !ok {
		return nil, false
	}
	return validation.ValidateAccount(a), true
}
