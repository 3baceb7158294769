package domain

import (
	"testing"
	"time"
)

func mustInvestment(t *testing.T, assetType AssetType, buyPrice, quantity string) Investment {
	t.Helper()
	inv, err := NewInvestment(assetType, MustDecimal(buyPrice), MustDecimal(quantity), time.Now(), "")
	if err != nil {
		t.Fatalf("failed to build investment: %v", err)
	}
	return inv
}

// multiplierValuer values each investment at invested amount times a fixed
// per-type factor, mirroring the placeholder pricing policy.
func multiplierValuer(t *testing.T, multipliers map[AssetType]string) CurrentValueFunc {
	t.Helper()
	return func(inv Investment) (Decimal, error) {
		invested, err := inv.InvestedAmount()
		if err != nil {
			return Zero, err
		}
		factor, ok := multipliers[inv.Type]
		if !ok {
			factor = "1.0"
		}
		return invested.Mul(MustDecimal(factor))
	}
}

func TestComputePortfolioStats_Empty(t *testing.T) {
	stats, err := ComputePortfolioStats(nil, func(Investment) (Decimal, error) {
		t.Fatal("valuer must not be called for an empty portfolio")
		return Zero, nil
	})
	if err != nil {
		t.Fatalf("ComputePortfolioStats failed: %v", err)
	}

	for name, got := range map[string]Decimal{
		"total_invested":    stats.TotalInvested,
		"current_value":     stats.CurrentValue,
		"profit":            stats.Profit,
		"profit_percentage": stats.ProfitPercentage,
	} {
		if !got.IsZero() {
			t.Errorf("expected zero %s, got %s", name, got)
		}
	}
}

func TestComputePortfolioStats_SingleGold(t *testing.T) {
	// One gold position, 10 units at 2500, valued at 1.1x.
	investments := []Investment{mustInvestment(t, AssetTypeGold, "2500", "10")}
	valuer := multiplierValuer(t, map[AssetType]string{AssetTypeGold: "1.1"})

	stats, err := ComputePortfolioStats(investments, valuer)
	if err != nil {
		t.Fatalf("ComputePortfolioStats failed: %v", err)
	}

	if !stats.TotalInvested.Equal(MustDecimal("25000")) {
		t.Errorf("expected total invested 25000, got %s", stats.TotalInvested)
	}
	if !stats.CurrentValue.Equal(MustDecimal("27500.0")) {
		t.Errorf("expected current value 27500, got %s", stats.CurrentValue)
	}
	if !stats.Profit.Equal(MustDecimal("2500.0")) {
		t.Errorf("expected profit 2500, got %s", stats.Profit)
	}

	pct, err := stats.ProfitPercentage.Round(2)
	if err != nil {
		t.Fatalf("rounding failed: %v", err)
	}
	if !pct.Equal(MustDecimal("10.00")) {
		t.Errorf("expected profit percentage 10.00, got %s", pct)
	}
}

func TestComputePortfolioStats_MixedPortfolio(t *testing.T) {
	// Gold 2500x10 at 1.1 plus USD 30x100 at 1.05.
	investments := []Investment{
		mustInvestment(t, AssetTypeGold, "2500", "10"),
		mustInvestment(t, AssetTypeUSD, "30", "100"),
	}
	valuer := multiplierValuer(t, map[AssetType]string{
		AssetTypeGold: "1.1",
		AssetTypeUSD:  "1.05",
	})

	stats, err := ComputePortfolioStats(investments, valuer)
	if err != nil {
		t.Fatalf("ComputePortfolioStats failed: %v", err)
	}

	if !stats.TotalInvested.Equal(MustDecimal("28000")) {
		t.Errorf("expected total invested 28000, got %s", stats.TotalInvested)
	}
	if !stats.CurrentValue.Equal(MustDecimal("30650.00")) {
		t.Errorf("expected current value 30650, got %s", stats.CurrentValue)
	}
	if !stats.Profit.Equal(MustDecimal("2650.00")) {
		t.Errorf("expected profit 2650, got %s", stats.Profit)
	}

	pct, err := stats.ProfitPercentage.Round(3)
	if err != nil {
		t.Fatalf("rounding failed: %v", err)
	}
	if !pct.Equal(MustDecimal("9.464")) {
		t.Errorf("expected profit percentage 9.464, got %s", pct)
	}
}

func TestComputePortfolioStats_OrderIrrelevant(t *testing.T) {
	a := mustInvestment(t, AssetTypeGold, "2500", "10")
	b := mustInvestment(t, AssetTypeUSD, "30", "100")
	valuer := multiplierValuer(t, map[AssetType]string{
		AssetTypeGold: "1.1",
		AssetTypeUSD:  "1.05",
	})

	forward, err := ComputePortfolioStats([]Investment{a, b}, valuer)
	if err != nil {
		t.Fatalf("ComputePortfolioStats failed: %v", err)
	}
	reversed, err := ComputePortfolioStats([]Investment{b, a}, valuer)
	if err != nil {
		t.Fatalf("ComputePortfolioStats failed: %v", err)
	}

	if !forward.TotalInvested.Equal(reversed.TotalInvested) {
		t.Errorf("total invested depends on order: %s vs %s", forward.TotalInvested, reversed.TotalInvested)
	}
	if !forward.Profit.Equal(reversed.Profit) {
		t.Errorf("profit depends on order: %s vs %s", forward.Profit, reversed.Profit)
	}
}

func TestComputeAssetDistribution_Empty(t *testing.T) {
	entries, err := ComputeAssetDistribution(nil)
	if err != nil {
		t.Fatalf("ComputeAssetDistribution failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestComputeAssetDistribution_MixedPortfolio(t *testing.T) {
	investments := []Investment{
		mustInvestment(t, AssetTypeGold, "2500", "10"),
		mustInvestment(t, AssetTypeUSD, "30", "100"),
	}

	entries, err := ComputeAssetDistribution(investments)
	if err != nil {
		t.Fatalf("ComputeAssetDistribution failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if entries[0].Type != AssetTypeGold {
		t.Errorf("expected gold first, got %s", entries[0].Type)
	}
	if !entries[0].Value.Equal(MustDecimal("25000")) {
		t.Errorf("expected gold value 25000, got %s", entries[0].Value)
	}
	goldPct, _ := entries[0].Percentage.Round(2)
	if !goldPct.Equal(MustDecimal("89.29")) {
		t.Errorf("expected gold percentage 89.29, got %s", goldPct)
	}

	if entries[1].Type != AssetTypeUSD {
		t.Errorf("expected usd second, got %s", entries[1].Type)
	}
	if !entries[1].Value.Equal(MustDecimal("3000")) {
		t.Errorf("expected usd value 3000, got %s", entries[1].Value)
	}
	usdPct, _ := entries[1].Percentage.Round(2)
	if !usdPct.Equal(MustDecimal("10.71")) {
		t.Errorf("expected usd percentage 10.71, got %s", usdPct)
	}
}

func TestComputeAssetDistribution_GroupsSameType(t *testing.T) {
	investments := []Investment{
		mustInvestment(t, AssetTypeGold, "2500", "10"),
		mustInvestment(t, AssetTypeGold, "2000", "5"),
	}

	entries, err := ComputeAssetDistribution(investments)
	if err != nil {
		t.Fatalf("ComputeAssetDistribution failed: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if !entries[0].Value.Equal(MustDecimal("35000")) {
		t.Errorf("expected grouped value 35000, got %s", entries[0].Value)
	}
	pct, _ := entries[0].Percentage.Round(2)
	if !pct.Equal(MustDecimal("100.00")) {
		t.Errorf("expected 100 percent for a single group, got %s", pct)
	}
}

func TestComputeAssetDistribution_PercentagesSumToHundred(t *testing.T) {
	investments := []Investment{
		mustInvestment(t, AssetTypeGold, "2400", "3"),
		mustInvestment(t, AssetTypeUSD, "32.5", "700"),
		mustInvestment(t, AssetTypeEuro, "35.1", "410"),
		mustInvestment(t, AssetTypeSilver, "28", "95"),
	}

	entries, err := ComputeAssetDistribution(investments)
	if err != nil {
		t.Fatalf("ComputeAssetDistribution failed: %v", err)
	}

	sum := Zero
	for _, entry := range entries {
		sum, err = sum.Add(entry.Percentage)
		if err != nil {
			t.Fatalf("summing percentages failed: %v", err)
		}
	}

	rounded, err := sum.Round(6)
	if err != nil {
		t.Fatalf("rounding failed: %v", err)
	}
	if !rounded.Equal(MustDecimal("100.000000")) {
		t.Errorf("expected percentages to sum to 100, got %s", rounded)
	}
}
