package user

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemUserRepo is a map-backed UserRepo for tests and local runs.
type InMemUserRepo struct {
	mu   sync.RWMutex
	rows map[string]UserRow
}

func NewInMemUserRepo() *InMemUserRepo {
	return &InMemUserRepo{
		rows: make(map[string]UserRow),
	}
}

// Save implements UserRepo
func (r *InMemUserRepo) Save(ctx context.Context, row *UserRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row.Version++
	r.rows[row.Uuid] = *row
	return nil
}

// Get implements UserRepo
func (r *InMemUserRepo) Get(ctx context.Context, id uuid.UUID) (*UserRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if row, ok := r.rows[id.String()]; ok {
		return &row, nil
	}
	return nil, nil
}

// GetMany implements UserRepo
func (r *InMemUserRepo) GetMany(ctx context.Context, uuids []string) ([]*UserRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var rows []*UserRow
	for _, id := range uuids {
		if row, ok := r.rows[id]; ok {
			row := row
			rows = append(rows, &row)
		}
	}
	return rows, nil
}

// List implements UserRepo
func (r *InMemUserRepo) List(ctx context.Context) ([]*UserRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := make([]*UserRow, 0, len(r.rows))
	for _, row := range r.rows {
		row := row
		rows = append(rows, &row)
	}
	return rows, nil
}
