// Package store keeps the ordered list of accounts in memory and mirrors
// it to a persistence slot after every change.
package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/atinyakov/AccountKeeper/internal/models"
	"go.uber.org/zap"
)

// DefaultKey is the slot the account list is persisted under.
const DefaultKey = "accounts"

// Slot is a key-value location holding one opaque blob per key.
type Slot interface {
	// Get returns the stored value and whether the key is present.
	Get(key string) ([]byte, bool, error)
	// Set overwrites the value stored under key.
	Set(key string, value []byte) error
}

// Store owns the account list. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	accounts []models.Account
	slot     Slot
	key      string
	ids      idSource
	seedDemo bool
	log      *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report unreadable persisted data.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithClock sets the time source used for new ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.ids.now = now }
}

// WithDemoSeed installs DemoAccounts when LoadFromStorage finds nothing
// persisted yet.
func WithDemoSeed(enabled bool) Option {
	return func(s *Store) { s.seedDemo = enabled }
}

// New returns an empty Store persisting to slot.
func New(slot Slot, opts ...Option) *Store {
	s := &Store{
		accounts: []models.Account{},
		slot:     slot,
		key:      DefaultKey,
		ids:      idSource{now: time.Now},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Count returns the number of accounts held.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// Accounts returns a copy of the list in order.
func (s *Store) Accounts() []models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Account, len(s.accounts))
	for i, a := range s.accounts {
		out[i] = a.Clone()
	}
	return out
}

// Get returns a copy of the account with the given id.
func (s *Store) Get(id int64) (models.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.accounts[i].Clone(), true
	}
	return models.Account{}, false
}

// Add appends a blank Local account and persists the list. The returned
// error only reports a failed write; the account is added regardless.
func (s *Store) Add() (models.Account, error) {
	a, _, err := s.AddIf(nil)
	return a, err
}

// AddIf is Add guarded by allow, which sees the current list while the
// store is locked. It reports false without adding when allow refuses.
// A nil allow always adds.
func (s *Store) AddIf(allow func([]models.Account) bool) (models.Account, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if allow != nil && !allow(s.accounts) {
		return models.Account{}, false, nil
	}

	a := models.Account{
		ID:         s.ids.next(),
		Labels:     "",
		LabelItems: []models.LabelItem{},
		Type:       models.Local,
		Login:      "",
		Password:   models.String(""),
	}
	s.accounts = append(s.accounts, a)
	return a.Clone(), true, s.persist()
}

// Update merges patch into the account with the given id and persists the
// list. It reports false without persisting when no such account exists.
func (s *Store) Update(id int64, patch models.AccountPatch) (bool, error) {
	_, ok, err := s.UpdateAccount(id, patch)
	return ok, err
}

// UpdateAccount is Update that also returns the merged account.
func (s *Store) UpdateAccount(id int64, patch models.AccountPatch) (models.Account, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Account{}, false, nil
	}
	s.accounts[i] = merge(s.accounts[i], patch)
	return s.accounts[i].Clone(), true, s.persist()
}

// Remove deletes the account with the given id and persists the list. It
// reports false without persisting when no such account exists.
func (s *Store) Remove(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
	return true, s.persist()
}

// LoadFromStorage replaces the in-memory list with the persisted one.
// Malformed data is logged and leaves the current list untouched.
func (s *Store) LoadFromStorage() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.slot.Get(s.key)
	if err != nil {
		return fmt.Errorf("read slot %q: %w", s.key, err)
	}
	if !ok {
		if s.seedDemo {
			s.replace(DemoAccounts())
			s.log.Info("seeded demo accounts", zap.Int("count", len(s.accounts)))
			return s.persist()
		}
		return nil
	}

	var accounts []models.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		s.log.Error("failed to parse saved accounts", zap.String("key", s.key), zap.Error(err))
		return nil
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	s.replace(accounts)
	return nil
}

// Persist writes the whole list to the slot.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist()
}

func (s *Store) persist() error {
	data, err := json.Marshal(s.accounts)
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	if err := s.slot.Set(s.key, data); err != nil {
		return fmt.Errorf("write slot %q: %w", s.key, err)
	}
	return nil
}

func (s *Store) replace(accounts []models.Account) {
	s.accounts = accounts
	for _, a := range accounts {
		s.ids.observe(a.ID)
	}
}

func (s *Store) indexOf(id int64) int {
	for i, a := range s.accounts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// merge applies patch to a. A new Labels value always recomputes
// LabelItems. Switching the type without supplying a password parks the
// local password in CachedPassword and brings it back later.
func merge(a models.Account, patch models.AccountPatch) models.Account {
	if patch.Labels != nil {
		a.Labels = *patch.Labels
		a.LabelItems = DeriveLabelItems(a.Labels)
	}
	if patch.Login != nil {
		a.Login = *patch.Login
	}

	if patch.Type != nil && *patch.Type != a.Type && !patch.SetsPassword() {
		switch *patch.Type {
		case models.LDAP:
			if a.Password != nil {
				a.CachedPassword = a.Password
			}
			a.Password = nil
		case models.Local:
			if a.CachedPassword != nil {
				a.Password = a.CachedPassword
			} else if a.Password == nil {
				a.Password = models.String("")
			}
			a.CachedPassword = nil
		}
	}
	if patch.Type != nil {
		a.Type = *patch.Type
	}

	switch {
	case patch.ClearPassword:
		a.Password = nil
	case patch.Password != nil:
		a.Password = models.String(*patch.Password)
	}
	return a
}
