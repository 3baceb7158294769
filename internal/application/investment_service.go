package application

import (
	"context"
	"fmt"
	"time"

	"github.com/birikimapp/birikim/internal/domain"
	"github.com/birikimapp/birikim/internal/metrics"
)

// InvestmentService owns the investment lifecycle. Every mutation performs
// the primary store write first, then hands the outcome to the audit writer;
// the two are not atomic (see AuditLogWriter) and a history failure is
// reported to the caller exactly like a store failure.
type InvestmentService struct {
	investments domain.InvestmentRepository
	history     domain.HistoryRepository
	audit       *AuditLogWriter
}

func NewInvestmentService(investments domain.InvestmentRepository, history domain.HistoryRepository) *InvestmentService {
	return &InvestmentService{
		investments: investments,
		history:     history,
		audit:       NewAuditLogWriter(history),
	}
}

func (s *InvestmentService) AddInvestment(ctx context.Context, assetType domain.AssetType, buyPrice, quantity domain.Decimal, buyDate time.Time, notes string) (*domain.Investment, error) {
	investment, err := domain.NewInvestment(assetType, buyPrice, quantity, buyDate, notes)
	if err != nil {
		return nil, err
	}

	if err := s.investments.Save(ctx, &investment); err != nil {
		return nil, fmt.Errorf("failed to save investment: %w", err)
	}

	if err := s.audit.OnCreate(ctx, investment); err != nil {
		return nil, fmt.Errorf("failed to record history: %w", err)
	}

	metrics.InvestmentMutationsTotal.WithLabelValues(string(domain.ActionCreated)).Inc()
	return &investment, nil
}

func (s *InvestmentService) UpdateInvestment(ctx context.Context, id string, update domain.InvestmentUpdate) (*domain.Investment, error) {
	investment, err := s.investments.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load investment: %w", err)
	}

	old := *investment
	if err := investment.Apply(update); err != nil {
		return nil, err
	}

	if err := s.investments.Save(ctx, investment); err != nil {
		return nil, fmt.Errorf("failed to save investment: %w", err)
	}

	if err := s.audit.OnUpdate(ctx, old, *investment); err != nil {
		return nil, fmt.Errorf("failed to record history: %w", err)
	}

	metrics.InvestmentMutationsTotal.WithLabelValues(string(domain.ActionUpdated)).Inc()
	return investment, nil
}

func (s *InvestmentService) DeleteInvestment(ctx context.Context, id string) error {
	investment, err := s.investments.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load investment: %w", err)
	}

	if err := s.investments.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}

	// History outlives the investment; the reference is intentionally weak.
	if err := s.audit.OnDelete(ctx, *investment); err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}

	metrics.InvestmentMutationsTotal.WithLabelValues(string(domain.ActionDeleted)).Inc()
	return nil
}

func (s *InvestmentService) GetInvestment(ctx context.Context, id string) (*domain.Investment, error) {
	investment, err := s.investments.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get investment: %w", err)
	}
	return investment, nil
}

func (s *InvestmentService) ListInvestments(ctx context.Context) ([]domain.Investment, error) {
	investments, err := s.investments.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	return investments, nil
}

func (s *InvestmentService) ListInvestmentsByType(ctx context.Context, assetType domain.AssetType) ([]domain.Investment, error) {
	if !assetType.IsValid() {
		return nil, fmt.Errorf("%w: unknown asset type %q", domain.ErrInvalidInvestment, assetType)
	}
	investments, err := s.investments.FindByType(ctx, assetType)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments by type: %w", err)
	}
	return investments, nil
}

func (s *InvestmentService) ListHistory(ctx context.Context) ([]domain.HistoryEntry, error) {
	entries, err := s.history.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}

func (s *InvestmentService) ListHistoryByInvestment(ctx context.Context, investmentID string) ([]domain.HistoryEntry, error) {
	entries, err := s.history.FindByInvestmentID(ctx, investmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list history for investment: %w", err)
	}
	return entries, nil
}

func (s *InvestmentService) ListHistoryByAction(ctx context.Context, action domain.HistoryAction) ([]domain.HistoryEntry, error) {
	if !action.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidHistoryAction, action)
	}
	entries, err := s.history.FindByAction(ctx, action)
	if err != nil {
		return nil, fmt.Errorf("failed to list history by action: %w", err)
	}
	return entries, nil
}
