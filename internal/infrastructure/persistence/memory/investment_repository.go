package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/birikimapp/birikim/internal/domain"
)

// InvestmentRepository is a map-backed store for tests and the memory
// driver. Reads return copies so callers cannot mutate stored state.
type InvestmentRepository struct {
	mu          sync.RWMutex
	investments map[string]domain.Investment
}

func NewInvestmentRepository() *InvestmentRepository {
	return &InvestmentRepository{
		investments: make(map[string]domain.Investment),
	}
}

func (r *InvestmentRepository) Save(ctx context.Context, investment *domain.Investment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.investments[investment.ID] = *investment
	return nil
}

func (r *InvestmentRepository) FindByID(ctx context.Context, id string) (*domain.Investment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	investment, exists := r.investments[id]
	if !exists {
		return nil, domain.ErrInvestmentNotFound
	}
	return &investment, nil
}

func (r *InvestmentRepository) FindAll(ctx context.Context) ([]domain.Investment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	investments := make([]domain.Investment, 0, len(r.investments))
	for _, investment := range r.investments {
		investments = append(investments, investment)
	}
	sortByCreatedAtDesc(investments)
	return investments, nil
}

func (r *InvestmentRepository) FindByType(ctx context.Context, assetType domain.AssetType) ([]domain.Investment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	investments := make([]domain.Investment, 0)
	for _, investment := range r.investments {
		if investment.Type == assetType {
			investments = append(investments, investment)
		}
	}
	sortByCreatedAtDesc(investments)
	return investments, nil
}

func (r *InvestmentRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.investments[id]; !exists {
		return domain.ErrInvestmentNotFound
	}
	delete(r.investments, id)
	return nil
}

func sortByCreatedAtDesc(investments []domain.Investment) {
	sort.SliceStable(investments, func(i, j int) bool {
		return investments[i].CreatedAt.After(investments[j].CreatedAt)
	})
}
