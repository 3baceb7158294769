package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidHistoryAction = errors.New("invalid history action")

// HistoryAction identifies which mutation an audit entry records.
type HistoryAction string

const (
	ActionCreated HistoryAction = "created"
	ActionUpdated HistoryAction = "updated"
	ActionDeleted HistoryAction = "deleted"
)

func (a HistoryAction) IsValid() bool {
	switch a {
	case ActionCreated, ActionUpdated, ActionDeleted:
		return true
	}
	return false
}

// InvestmentSnapshot is the portion of an investment that audit entries
// preserve. It is a value copy; later mutations of the investment do not
// reach into recorded history.
type InvestmentSnapshot struct {
	Type     AssetType `json:"type"`
	BuyPrice Decimal   `json:"buy_price"`
	Quantity Decimal   `json:"quantity"`
	BuyDate  time.Time `json:"buy_date"`
	Notes    string    `json:"notes,omitempty"`
}

// SnapshotOf captures the audited fields of an investment.
func SnapshotOf(i Investment) InvestmentSnapshot {
	return InvestmentSnapshot{
		Type:     i.Type,
		BuyPrice: i.BuyPrice,
		Quantity: i.Quantity,
		BuyDate:  i.BuyDate,
		Notes:    i.Notes,
	}
}

// HistoryEntry is one immutable audit record. Entries are only built through
// the per-action constructors below, so each action carries exactly the
// snapshots it can have: created has NewData, updated has both, deleted has
// OldData. The investment reference is weak; deleting an investment does not
// remove its history.
type HistoryEntry struct {
	ID           string              `json:"id"`
	InvestmentID string              `json:"investment_id"`
	Action       HistoryAction       `json:"action"`
	Date         time.Time           `json:"date"`
	Details      string              `json:"details"`
	OldData      *InvestmentSnapshot `json:"old_data,omitempty"`
	NewData      *InvestmentSnapshot `json:"new_data,omitempty"`
}

// NewCreatedEntry records that an investment was added.
func NewCreatedEntry(created Investment) HistoryEntry {
	snap := SnapshotOf(created)
	return HistoryEntry{
		ID:           uuid.New().String(),
		InvestmentID: created.ID,
		Action:       ActionCreated,
		Date:         time.Now(),
		Details:      summaryFor(snap, ActionCreated),
		NewData:      &snap,
	}
}

// NewUpdatedEntry records a mutation, preserving both sides.
func NewUpdatedEntry(old, updated Investment) HistoryEntry {
	oldSnap := SnapshotOf(old)
	newSnap := SnapshotOf(updated)
	return HistoryEntry{
		ID:           uuid.New().String(),
		InvestmentID: updated.ID,
		Action:       ActionUpdated,
		Date:         time.Now(),
		Details:      summaryFor(oldSnap, ActionUpdated),
		OldData:      &oldSnap,
		NewData:      &newSnap,
	}
}

// NewDeletedEntry records a removal, preserving the last known state.
func NewDeletedEntry(old Investment) HistoryEntry {
	snap := SnapshotOf(old)
	return HistoryEntry{
		ID:           uuid.New().String(),
		InvestmentID: old.ID,
		Action:       ActionDeleted,
		Date:         time.Now(),
		Details:      summaryFor(snap, ActionDeleted),
		OldData:      &snap,
	}
}

// summaryFor renders the human-readable entry text. The wording is a
// presentation convenience; the type, quantity and price are the contract.
func summaryFor(snap InvestmentSnapshot, action HistoryAction) string {
	return fmt.Sprintf("%s investment %s: %s units at %s", snap.Type, action, snap.Quantity, snap.BuyPrice)
}
