package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birikimapp/birikim/internal/domain"
)

func storedInvestment(t *testing.T, assetType domain.AssetType, createdAt time.Time) domain.Investment {
	t.Helper()
	investment, err := domain.NewInvestment(assetType, domain.MustDecimal("100"), domain.MustDecimal("5"), time.Now(), "")
	require.NoError(t, err)
	investment.CreatedAt = createdAt
	return investment
}

func TestInvestmentRepository_ReadsReturnCopies(t *testing.T) {
	repo := NewInvestmentRepository()
	ctx := context.Background()

	investment := storedInvestment(t, domain.AssetTypeGold, time.Now())
	require.NoError(t, repo.Save(ctx, &investment))

	found, err := repo.FindByID(ctx, investment.ID)
	require.NoError(t, err)

	found.Notes = "mutated by caller"

	again, err := repo.FindByID(ctx, investment.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Notes)
}

func TestInvestmentRepository_FindAll_NewestFirst(t *testing.T) {
	repo := NewInvestmentRepository()
	ctx := context.Background()

	base := time.Now()
	oldest := storedInvestment(t, domain.AssetTypeGold, base.Add(-2*time.Hour))
	middle := storedInvestment(t, domain.AssetTypeUSD, base.Add(-time.Hour))
	newest := storedInvestment(t, domain.AssetTypeEuro, base)

	require.NoError(t, repo.Save(ctx, &middle))
	require.NoError(t, repo.Save(ctx, &oldest))
	require.NoError(t, repo.Save(ctx, &newest))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, newest.ID, all[0].ID)
	assert.Equal(t, middle.ID, all[1].ID)
	assert.Equal(t, oldest.ID, all[2].ID)
}

func TestInvestmentRepository_FindByType(t *testing.T) {
	repo := NewInvestmentRepository()
	ctx := context.Background()

	gold := storedInvestment(t, domain.AssetTypeGold, time.Now())
	usd := storedInvestment(t, domain.AssetTypeUSD, time.Now())
	require.NoError(t, repo.Save(ctx, &gold))
	require.NoError(t, repo.Save(ctx, &usd))

	found, err := repo.FindByType(ctx, domain.AssetTypeGold)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, gold.ID, found[0].ID)

	none, err := repo.FindByType(ctx, domain.AssetTypeSilver)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestInvestmentRepository_Delete(t *testing.T) {
	repo := NewInvestmentRepository()
	ctx := context.Background()

	investment := storedInvestment(t, domain.AssetTypeGold, time.Now())
	require.NoError(t, repo.Save(ctx, &investment))
	require.NoError(t, repo.Delete(ctx, investment.ID))

	_, err := repo.FindByID(ctx, investment.ID)
	assert.ErrorIs(t, err, domain.ErrInvestmentNotFound)

	err = repo.Delete(ctx, investment.ID)
	assert.ErrorIs(t, err, domain.ErrInvestmentNotFound)
}

func TestHistoryRepository_OrderAndFilters(t *testing.T) {
	repo := NewHistoryRepository()
	ctx := context.Background()

	first := storedInvestment(t, domain.AssetTypeGold, time.Now())
	second := storedInvestment(t, domain.AssetTypeUSD, time.Now())

	created := domain.NewCreatedEntry(first)
	deleted := domain.NewDeletedEntry(first)
	deleted.Date = created.Date.Add(time.Minute)
	other := domain.NewCreatedEntry(second)
	other.Date = created.Date.Add(2 * time.Minute)

	require.NoError(t, repo.Append(ctx, &created))
	require.NoError(t, repo.Append(ctx, &deleted))
	require.NoError(t, repo.Append(ctx, &other))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, other.ID, all[0].ID)
	assert.Equal(t, deleted.ID, all[1].ID)
	assert.Equal(t, created.ID, all[2].ID)

	forFirst, err := repo.FindByInvestmentID(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, forFirst, 2)
	assert.Equal(t, domain.ActionDeleted, forFirst[0].Action)
	assert.Equal(t, domain.ActionCreated, forFirst[1].Action)

	deletions, err := repo.FindByAction(ctx, domain.ActionDeleted)
	require.NoError(t, err)
	require.Len(t, deletions, 1)
	assert.Equal(t, first.ID, deletions[0].InvestmentID)
}
