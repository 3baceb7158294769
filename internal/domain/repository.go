package domain

import "context"

// InvestmentRepository is the Record Store contract for investments.
// Implementations provide no transactional guarantees across calls; every
// method can fail with a generic wrapped I/O error. All methods accept a
// context.Context for timeout and cancellation propagation.
type InvestmentRepository interface {
	// Save creates the investment or replaces it wholesale by ID.
	Save(ctx context.Context, investment *Investment) error
	FindByID(ctx context.Context, id string) (*Investment, error)
	// FindAll returns investments ordered by creation time, newest first.
	FindAll(ctx context.Context) ([]Investment, error)
	FindByType(ctx context.Context, assetType AssetType) ([]Investment, error)
	Delete(ctx context.Context, id string) error
}

// HistoryRepository is the Record Store contract for audit entries.
// Entries are append-only; nothing updates or deletes them.
type HistoryRepository interface {
	Append(ctx context.Context, entry *HistoryEntry) error
	// FindAll returns entries ordered by action date, newest first.
	FindAll(ctx context.Context) ([]HistoryEntry, error)
	FindByInvestmentID(ctx context.Context, investmentID string) ([]HistoryEntry, error)
	FindByAction(ctx context.Context, action HistoryAction) ([]HistoryEntry, error)
}
