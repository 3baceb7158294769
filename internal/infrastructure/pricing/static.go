package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/birikimapp/birikim/internal/domain"
)

// PerTypeSource applies a fixed multiplier per asset type. These are
// placeholder rates carried over from the product's simulated pricing;
// anything without an explicit rate is valued at cost.
type PerTypeSource struct {
	rates       map[domain.AssetType]decimal.Decimal
	defaultRate decimal.Decimal
}

func NewPerTypeSource() *PerTypeSource {
	return &PerTypeSource{
		rates: map[domain.AssetType]decimal.Decimal{
			domain.AssetTypeGold: decimal.NewFromFloat(1.1),
			domain.AssetTypeUSD:  decimal.NewFromFloat(1.05),
			domain.AssetTypeEuro: decimal.NewFromFloat(0.95),
		},
		defaultRate: decimal.NewFromInt(1),
	}
}

func (s *PerTypeSource) RateFor(_ context.Context, assetType domain.AssetType) (decimal.Decimal, error) {
	if rate, ok := s.rates[assetType]; ok {
		return rate, nil
	}
	return s.defaultRate, nil
}

// UniformSource applies one flat multiplier regardless of asset type,
// matching the simulated 5% growth the home screen used.
type UniformSource struct {
	rate decimal.Decimal
}

func NewUniformSource(rate decimal.Decimal) *UniformSource {
	return &UniformSource{rate: rate}
}

func (s *UniformSource) RateFor(_ context.Context, _ domain.AssetType) (decimal.Decimal, error) {
	return s.rate, nil
}
