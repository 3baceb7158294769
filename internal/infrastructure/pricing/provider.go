package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/birikimapp/birikim/internal/domain"
)

// Provider yields the multiplier applied to an investment's invested amount
// to estimate its current market value. The application never hard-codes a
// policy; it asks whichever Provider it was handed, so a real price feed can
// replace the static sources below without touching the valuation logic.
type Provider interface {
	RateFor(ctx context.Context, assetType domain.AssetType) (decimal.Decimal, error)
}
