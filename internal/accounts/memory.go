package accounts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ Repository = (*MemoryRepo)(nil)

// MemoryRepo keeps accounts in process memory. It backs local runs without
// Postgres and the HTTP tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]Account
	byEmail map[string]uuid.UUID
	now     func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[uuid.UUID]Account),
		byEmail: make(map[string]uuid.UUID),
		now:     time.Now,
	}
}

func (r *MemoryRepo) Create(_ context.Context, p CreateParams) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[p.Email]; ok {
		return nil, ErrEmailTaken
	}
	role := RoleMember
	if len(r.byID) == 0 {
		role = RoleAdmin
	}
	now := r.now().UTC()
	a := Account{
		ID:           uuid.New(),
		Email:        p.Email,
		Name:         p.Name,
		PasswordHash: p.PasswordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.byID[a.ID] = a
	r.byEmail[a.Email] = a.ID
	return &a, nil
}

func (r *MemoryRepo) FindByEmail(_ context.Context, email string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	a := r.byID[id]
	return &a, nil
}

func (r *MemoryRepo) FindByID(_ context.Context, id uuid.UUID) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *MemoryRepo) List(_ context.Context, limit, offset int) ([]Account, error) {
	r.mu.RLock()
	all := make([]Account, 0, len(r.byID))
	for _, a := range r.byID {
		all = append(all, a)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].Email < all[j].Email
	})
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *MemoryRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
