package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvestmentNotFound = errors.New("investment not found")
	ErrInvalidInvestment  = errors.New("invalid investment")
)

// AssetType is the closed set of asset classes a user can track.
type AssetType string

const (
	AssetTypeGold       AssetType = "gold"
	AssetTypeUSD        AssetType = "usd"
	AssetTypeEuro       AssetType = "euro"
	AssetTypeSilver     AssetType = "silver"
	AssetTypeStockIndex AssetType = "stock_index"
	AssetTypeOther      AssetType = "other"
)

func (t AssetType) IsValid() bool {
	switch t {
	case AssetTypeGold, AssetTypeUSD, AssetTypeEuro, AssetTypeSilver, AssetTypeStockIndex, AssetTypeOther:
		return true
	}
	return false
}

// Investment is a single purchased position.
type Investment struct {
	ID        string    `json:"id"`
	Type      AssetType `json:"type"`
	BuyPrice  Decimal   `json:"buy_price"`
	Quantity  Decimal   `json:"quantity"`
	BuyDate   time.Time `json:"buy_date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewInvestment builds a valid investment or reports why it cannot.
// Positivity of price and quantity is enforced here, at the model boundary,
// so it holds for every caller and not just the entry form.
func NewInvestment(assetType AssetType, buyPrice, quantity Decimal, buyDate time.Time, notes string) (Investment, error) {
	if !assetType.IsValid() {
		return Investment{}, fmt.Errorf("%w: unknown asset type %q", ErrInvalidInvestment, assetType)
	}
	if !buyPrice.IsPositive() {
		return Investment{}, fmt.Errorf("%w: buy price must be positive", ErrInvalidInvestment)
	}
	if !quantity.IsPositive() {
		return Investment{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInvestment)
	}

	now := time.Now()
	return Investment{
		ID:        uuid.New().String(),
		Type:      assetType,
		BuyPrice:  buyPrice,
		Quantity:  quantity,
		BuyDate:   buyDate,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// InvestedAmount is buy price times quantity.
func (i Investment) InvestedAmount() (Decimal, error) {
	amount, err := i.BuyPrice.Mul(i.Quantity)
	if err != nil {
		return Zero, fmt.Errorf("computing invested amount: %w", err)
	}
	return amount, nil
}

// InvestmentUpdate carries the mutable fields of an investment.
// Nil fields are left untouched.
type InvestmentUpdate struct {
	Type     *AssetType `json:"type,omitempty"`
	BuyPrice *Decimal   `json:"buy_price,omitempty"`
	Quantity *Decimal   `json:"quantity,omitempty"`
	BuyDate  *time.Time `json:"buy_date,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u InvestmentUpdate) IsEmpty() bool {
	return u.Type == nil && u.BuyPrice == nil && u.Quantity == nil && u.BuyDate == nil && u.Notes == nil
}

// Apply mutates the investment with the set fields of the update,
// re-checking the same invariants the constructor enforces.
// UpdatedAt is bumped; CreatedAt and ID never change.
func (i *Investment) Apply(u InvestmentUpdate) error {
	if u.Type != nil {
		if !u.Type.IsValid() {
			return fmt.Errorf("%w: unknown asset type %q", ErrInvalidInvestment, *u.Type)
		}
		i.Type = *u.Type
	}
	if u.BuyPrice != nil {
		if !u.BuyPrice.IsPositive() {
			return fmt.Errorf("%w: buy price must be positive", ErrInvalidInvestment)
		}
		i.BuyPrice = *u.BuyPrice
	}
	if u.Quantity != nil {
		if !u.Quantity.IsPositive() {
			return fmt.Errorf("%w: quantity must be positive", ErrInvalidInvestment)
		}
		i.Quantity = *u.Quantity
	}
	if u.BuyDate != nil {
		i.BuyDate = *u.BuyDate
	}
	if u.Notes != nil {
		i.Notes = *u.Notes
	}
	i.UpdatedAt = time.Now()
	return nil
}
