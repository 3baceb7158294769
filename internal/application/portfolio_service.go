package application

import (
	"context"
	"fmt"

	"github.com/birikimapp/birikim/internal/domain"
	"github.com/birikimapp/birikim/internal/infrastructure/pricing"
	"github.com/birikimapp/birikim/internal/metrics"
)

// PortfolioService computes portfolio aggregates. It reloads the full
// investment list and recomputes from scratch on every call; nothing here is
// cached or stored.
type PortfolioService struct {
	investments domain.InvestmentRepository
	rates       pricing.Provider
}

func NewPortfolioService(investments domain.InvestmentRepository, rates pricing.Provider) *PortfolioService {
	return &PortfolioService{
		investments: investments,
		rates:       rates,
	}
}

func (s *PortfolioService) GetPortfolioStats(ctx context.Context) (*domain.PortfolioStats, error) {
	investments, err := s.investments.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load investments: %w", err)
	}

	stats, err := domain.ComputePortfolioStats(investments, s.currentValueOf(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to compute portfolio stats: %w", err)
	}

	metrics.PortfolioValuationsTotal.Inc()
	return &stats, nil
}

func (s *PortfolioService) GetAssetDistribution(ctx context.Context) ([]domain.AssetDistributionEntry, error) {
	investments, err := s.investments.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load investments: %w", err)
	}

	entries, err := domain.ComputeAssetDistribution(investments)
	if err != nil {
		return nil, fmt.Errorf("failed to compute asset distribution: %w", err)
	}
	return entries, nil
}

// currentValueOf bridges the pricing provider into the valuation engine:
// current value is invested amount times the provider's multiplier. The
// provider speaks shopspring decimals, the domain speaks apd; converting
// through the string form keeps both exact.
func (s *PortfolioService) currentValueOf(ctx context.Context) domain.CurrentValueFunc {
	return func(investment domain.Investment) (domain.Decimal, error) {
		invested, err := investment.InvestedAmount()
		if err != nil {
			return domain.Zero, err
		}

		rate, err := s.rates.RateFor(ctx, investment.Type)
		if err != nil {
			return domain.Zero, fmt.Errorf("failed to get rate for %s: %w", investment.Type, err)
		}

		multiplier, err := domain.NewDecimalFromString(rate.String())
		if err != nil {
			return domain.Zero, fmt.Errorf("failed to parse rate for %s: %w", investment.Type, err)
		}

		return invested.Mul(multiplier)
	}
}
