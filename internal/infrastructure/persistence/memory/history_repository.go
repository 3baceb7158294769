package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/birikimapp/birikim/internal/domain"
)

// HistoryRepository is an append-only in-memory audit log.
type HistoryRepository struct {
	mu      sync.RWMutex
	entries []domain.HistoryEntry
}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

func (r *HistoryRepository) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, *entry)
	return nil
}

func (r *HistoryRepository) FindAll(ctx context.Context) ([]domain.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortedByDateDesc(r.entries), nil
}

func (r *HistoryRepository) FindByInvestmentID(ctx context.Context, investmentID string) ([]domain.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.HistoryEntry, 0)
	for _, entry := range r.entries {
		if entry.InvestmentID == investmentID {
			matched = append(matched, entry)
		}
	}
	return sortedByDateDesc(matched), nil
}

func (r *HistoryRepository) FindByAction(ctx context.Context, action domain.HistoryAction) ([]domain.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.HistoryEntry, 0)
	for _, entry := range r.entries {
		if entry.Action == action {
			matched = append(matched, entry)
		}
	}
	return sortedByDateDesc(matched), nil
}

func sortedByDateDesc(entries []domain.HistoryEntry) []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
