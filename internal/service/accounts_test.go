package service_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/AccountKeeper/internal/models"
	"github.com/atinyakov/AccountKeeper/internal/service"
	"github.com/atinyakov/AccountKeeper/internal/storage"
	"github.com/atinyakov/AccountKeeper/internal/store"
	"github.com/atinyakov/AccountKeeper/internal/validation"
)

func newService(t *testing.T) (*service.AccountService, *store.Store) {
	t.Helper()
	st := store.New(storage.NewMemory())
	return service.NewAccountService(st), st
}

func TestAdd_BlockedByPlaceholder(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Add()
	require.NoError(t, err)
	assert.False(t, svc.CanAdd())

	_, err = svc.Add()
	assert.ErrorIs(t, err, service.ErrAddBlocked)
	assert.Equal(t, 1, svc.Count())
}

func TestAdd_AllowedAfterFillingIn(t *testing.T) {
	svc, _ := newService(t)
	a, err := svc.Add()
	require.NoError(t, err)

	updated, ok, err := svc.Update(a.ID, models.AccountPatch{
		Login:    models.String("alice"),
		Password: models.String("Abcde1"),
		Labels:   models.String("dev; ops"),
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []models.LabelItem{{Text: "dev"}, {Text: "ops"}}, updated.LabelItems)

	assert.True(t, svc.CanAdd())
	_, err = svc.Add()
	require.NoError(t, err)
	assert.Len(t, svc.List(), 2)
}

func TestUpdate_UnknownID(t *testing.T) {
	svc, _ := newService(t)
	_, ok, err := svc.Update(99, models.AccountPatch{Login: models.String("x")})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	svc, _ := newService(t)
	a, _ := svc.Add()

	errs, ok := svc.Validate(a.ID)
	require.True(t, ok)
	assert.Equal(t, validation.ErrLoginRequired.Error(), errs[validation.FieldLogin])
	assert.Equal(t, validation.ErrPasswordRequired.Error(), errs[validation.FieldPassword])

	_, ok = svc.Validate(a.ID + 1)
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	svc, st := newService(t)
	a, _ := svc.Add()

	ok, err := svc.Remove(a.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, st.Count())

	ok, err = svc.Remove(a.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

type failingStore struct {
	service.AccountStore
	err error
}

func (f failingStore) Accounts() []models.Account { return nil }
func (f failingStore) AddIf(func([]models.Account) bool) (models.Account, bool, error) {
	return models.Account{ID: 1}, true, f.err
}

func TestAdd_PropagatesStoreError(t *testing.T) {
	want := errors.New("write failed")
	svc := service.NewAccountService(failingStore{err: want})
	_, err := svc.Add()
	assert.ErrorIs(t, err, want)
}

// slowSlot delays every write so concurrent callers overlap.
type slowSlot struct {
	storage.Memory
}

func (s *slowSlot) Set(key string, value []byte) error {
	time.Sleep(2 * time.Millisecond)
	return s.Memory.Set(key, value)
}

func TestAdd_ConcurrentCallersAddOnePlaceholder(t *testing.T) {
	for round := 0; round < 20; round++ {
		st := store.New(&slowSlot{})
		svc := service.NewAccountService(st)

		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, _ = svc.Add()
			}()
		}
		close(start)
		wg.Wait()

		require.Equal(t, 1, st.Count(), "round %d", round)
	}
}

func TestUpdate_ConcurrentReturnsOwnResult(t *testing.T) {
	st := store.New(&slowSlot{})
	svc := service.NewAccountService(st)
	a, err := svc.Add()
	require.NoError(t, err)

	logins := []string{"alice", "bob", "carol", "dave", "erin", "frank"}
	results := make([]models.Account, len(logins))

	var wg sync.WaitGroup
	for i, login := range logins {
		wg.Add(1)
		go func() {
			defer wg.Done()
			updated, ok, err := svc.Update(a.ID, models.AccountPatch{Login: models.String(login)})
			assert.NoError(t, err)
			assert.True(t, ok)
			results[i] = updated
		}()
	}
	wg.Wait()

	// every caller sees the account as its own patch left it
	for i, login := range logins {
		assert.Equal(t, login, results[i].Login)
	}
}
