package transaction

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-memory transaction store for tests and DB-less
// development.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]Transaction
}

// NewMemoryRepository builds an empty in-memory transaction store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, rows: make(map[int64]Transaction)}
}

func (r *MemoryRepository) ListByOwner(_ context.Context, ownerID int64) ([]Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	transactions := make([]Transaction, 0)
	for _, t := range r.rows {
		if t.OwnerID == ownerID {
			transactions = append(transactions, t)
		}
	}
	sort.Slice(transactions, func(i, j int) bool {
		if transactions[i].Date != transactions[j].Date {
			return transactions[i].Date > transactions[j].Date
		}
		return transactions[i].ID > transactions[j].ID
	})
	return transactions, nil
}

func (r *MemoryRepository) Create(_ context.Context, ownerID int64, input Input) (Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := Transaction{
		ID:          r.nextID,
		Description: input.Description,
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        input.Date,
		Kind:        input.Kind,
		OwnerID:     ownerID,
	}
	r.nextID++
	r.rows[t.ID] = t
	return t, nil
}

func (r *MemoryRepository) Update(_ context.Context, ownerID, id int64, input Input) (Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[id]
	if !ok || t.OwnerID != ownerID {
		return Transaction{}, ErrNotFound
	}
	t.Description = input.Description
	t.Amount = input.Amount
	t.Category = input.Category
	t.Date = input.Date
	r.rows[id] = t
	return t, nil
}

func (r *MemoryRepository) Delete(_ context.Context, ownerID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[id]
	if !ok || t.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(r.rows, id)
	return nil
}
