package domain

import "fmt"

// PortfolioStats are the portfolio-level aggregates. Derived on demand from
// the full investment list, never persisted.
type PortfolioStats struct {
	TotalInvested    Decimal `json:"total_invested"`
	CurrentValue     Decimal `json:"current_value"`
	Profit           Decimal `json:"profit"`
	ProfitPercentage Decimal `json:"profit_percentage"`
}

// AssetDistributionEntry is the invested value and share of one asset type
// present in the portfolio.
type AssetDistributionEntry struct {
	Type       AssetType `json:"type"`
	Value      Decimal   `json:"value"`
	Percentage Decimal   `json:"percentage"`
}

// CurrentValueFunc maps an investment to its current market value. Injected
// so the pricing policy (per-type multipliers, a flat rate, or a real feed)
// can change without touching the aggregation below.
type CurrentValueFunc func(Investment) (Decimal, error)

var hundred = NewDecimalFromInt(100)

// ComputePortfolioStats folds an investment list into portfolio aggregates.
// Input order is irrelevant. An empty list is valid and yields all zeros;
// the profit percentage is zero whenever total invested is not positive, so
// the division can never blow up.
func ComputePortfolioStats(investments []Investment, currentValueOf CurrentValueFunc) (PortfolioStats, error) {
	totalInvested := Zero
	currentValue := Zero

	for idx := range investments {
		invested, err := investments[idx].InvestedAmount()
		if err != nil {
			return PortfolioStats{}, err
		}
		totalInvested, err = totalInvested.Add(invested)
		if err != nil {
			return PortfolioStats{}, fmt.Errorf("accumulating invested total: %w", err)
		}

		current, err := currentValueOf(investments[idx])
		if err != nil {
			return PortfolioStats{}, fmt.Errorf("valuing investment %s: %w", investments[idx].ID, err)
		}
		currentValue, err = currentValue.Add(current)
		if err != nil {
			return PortfolioStats{}, fmt.Errorf("accumulating current value: %w", err)
		}
	}

	profit, err := currentValue.Sub(totalInvested)
	if err != nil {
		return PortfolioStats{}, fmt.Errorf("computing profit: %w", err)
	}

	profitPercentage := Zero
	if totalInvested.IsPositive() {
		ratio, err := profit.Div(totalInvested)
		if err != nil {
			return PortfolioStats{}, fmt.Errorf("computing profit ratio: %w", err)
		}
		profitPercentage, err = ratio.Mul(hundred)
		if err != nil {
			return PortfolioStats{}, fmt.Errorf("computing profit percentage: %w", err)
		}
	}

	return PortfolioStats{
		TotalInvested:    totalInvested,
		CurrentValue:     currentValue,
		Profit:           profit,
		ProfitPercentage: profitPercentage,
	}, nil
}

// ComputeAssetDistribution groups invested value by asset type. Only types
// actually present appear, in order of first appearance. Percentages sum to
// 100 whenever the total is positive; an empty list yields an empty slice.
func ComputeAssetDistribution(investments []Investment) ([]AssetDistributionEntry, error) {
	totals := make(map[AssetType]Decimal)
	var order []AssetType

	grandTotal := Zero
	for idx := range investments {
		invested, err := investments[idx].InvestedAmount()
		if err != nil {
			return nil, err
		}

		assetType := investments[idx].Type
		group, seen := totals[assetType]
		if !seen {
			order = append(order, assetType)
			group = Zero
		}
		group, err = group.Add(invested)
		if err != nil {
			return nil, fmt.Errorf("accumulating %s group: %w", assetType, err)
		}
		totals[assetType] = group

		grandTotal, err = grandTotal.Add(invested)
		if err != nil {
			return nil, fmt.Errorf("accumulating distribution total: %w", err)
		}
	}

	entries := make([]AssetDistributionEntry, 0, len(order))
	for _, assetType := range order {
		value := totals[assetType]

		percentage := Zero
		if grandTotal.IsPositive() {
			ratio, err := value.Div(grandTotal)
			if err != nil {
				return nil, fmt.Errorf("computing %s share: %w", assetType, err)
			}
			percentage, err = ratio.Mul(hundred)
			if err != nil {
				return nil, fmt.Errorf("computing %s percentage: %w", assetType, err)
			}
		}

		entries = append(entries, AssetDistributionEntry{
			Type:       assetType,
			Value:      value,
			Percentage: percentage,
		})
	}

	return entries, nil
}
