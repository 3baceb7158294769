package domain

import (
	"strings"
	"testing"
)

func TestNewCreatedEntry(t *testing.T) {
	inv := mustInvestment(t, AssetTypeGold, "2500", "10")

	entry := NewCreatedEntry(inv)

	if entry.ID == "" {
		t.Error("expected a generated entry ID")
	}
	if entry.InvestmentID != inv.ID {
		t.Errorf("expected investment ID %s, got %s", inv.ID, entry.InvestmentID)
	}
	if entry.Action != ActionCreated {
		t.Errorf("expected action created, got %s", entry.Action)
	}
	if entry.Date.IsZero() {
		t.Error("expected a system-assigned date")
	}
	if entry.OldData != nil {
		t.Error("created entry must not carry old data")
	}
	if entry.NewData == nil {
		t.Fatal("created entry must carry new data")
	}
	if !entry.NewData.Quantity.Equal(MustDecimal("10")) {
		t.Errorf("expected snapshot quantity 10, got %s", entry.NewData.Quantity)
	}
}

func TestNewUpdatedEntry(t *testing.T) {
	inv := mustInvestment(t, AssetTypeUSD, "30", "100")
	old := inv

	newQuantity := MustDecimal("150")
	if err := inv.Apply(InvestmentUpdate{Quantity: &newQuantity}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	entry := NewUpdatedEntry(old, inv)

	if entry.Action != ActionUpdated {
		t.Errorf("expected action updated, got %s", entry.Action)
	}
	if entry.OldData == nil || entry.NewData == nil {
		t.Fatal("updated entry must carry both snapshots")
	}
	if !entry.OldData.Quantity.Equal(MustDecimal("100")) {
		t.Errorf("expected old quantity 100, got %s", entry.OldData.Quantity)
	}
	if !entry.NewData.Quantity.Equal(MustDecimal("150")) {
		t.Errorf("expected new quantity 150, got %s", entry.NewData.Quantity)
	}
}

func TestNewDeletedEntry(t *testing.T) {
	inv := mustInvestment(t, AssetTypeEuro, "35", "200")

	entry := NewDeletedEntry(inv)

	if entry.Action != ActionDeleted {
		t.Errorf("expected action deleted, got %s", entry.Action)
	}
	if entry.NewData != nil {
		t.Error("deleted entry must not carry new data")
	}
	if entry.OldData == nil {
		t.Fatal("deleted entry must carry old data")
	}
	if entry.OldData.Type != AssetTypeEuro {
		t.Errorf("expected snapshot type euro, got %s", entry.OldData.Type)
	}
}

func TestHistoryEntry_DetailsMentionsKeyFields(t *testing.T) {
	inv := mustInvestment(t, AssetTypeGold, "2500", "10")

	entry := NewCreatedEntry(inv)

	for _, want := range []string{"gold", "10", "2500", "created"} {
		if !strings.Contains(entry.Details, want) {
			t.Errorf("details %q missing %q", entry.Details, want)
		}
	}
}

func TestSnapshotIsDetachedFromInvestment(t *testing.T) {
	inv := mustInvestment(t, AssetTypeGold, "2500", "10")
	entry := NewCreatedEntry(inv)

	newQuantity := MustDecimal("99")
	if err := inv.Apply(InvestmentUpdate{Quantity: &newQuantity}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if !entry.NewData.Quantity.Equal(MustDecimal("10")) {
		t.Errorf("snapshot mutated along with the investment: %s", entry.NewData.Quantity)
	}
}

func TestHistoryAction_IsValid(t *testing.T) {
	for _, action := range []HistoryAction{ActionCreated, ActionUpdated, ActionDeleted} {
		if !action.IsValid() {
			t.Errorf("expected %s to be valid", action)
		}
	}
	if HistoryAction("archived").IsValid() {
		t.Error("unknown action must not be valid")
	}
}
