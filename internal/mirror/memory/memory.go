package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
)

// Store is an in-memory ledger mirror for tests and local runs without
// Google credentials.
type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

func New() *Store {
	return &Store{}
}

// Append stores the transaction and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, t)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// Remove drops the first row matching the identifying fields.
func (s *Store) Remove(_ context.Context, date, description, amount string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.items {
		if t.Date == date && t.Description == description && t.Amount.String() == amount {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no mirrored row matches %s %q %s", date, description, amount)
}

// Items returns a copy of the mirrored rows.
func (s *Store) Items() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...)
}
