package account

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu sync.RWMutex
	// role -> email -> account
	accounts map[Role]map[string]Account
}

// NewMemoryRepository builds an in-memory account store used in tests and when
// the service runs without a database in development.
func NewMemoryRepository() Repository {
	return &memoryRepository{accounts: map[Role]map[string]Account{
		RoleStudent: {},
		RoleTeacher: {},
		RoleAdmin:   {},
	}}
}

func (r *memoryRepository) Create(_ context.Context, acct Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	records := r.accounts[acct.Role]
	if _, exists := records[acct.Email]; exists {
		return ErrEmailTaken
	}
	records[acct.Email] = acct
	return nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, role Role, email string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acct, ok := r.accounts[role][email]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acct, nil
}

func (r *memoryRepository) FindByID(_ context.Context, role Role, id string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, acct := range r.accounts[role] {
		if acct.ID == id {
			return acct, nil
		}
	}
	return Account{}, ErrNotFound
}
