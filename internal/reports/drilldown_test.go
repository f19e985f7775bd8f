package reports

import (
	"errors"
	"testing"
)

func TestNavigatorDrillAndJump(t *testing.T) {
	nav := NewNavigator("Commission by Property")
	if nav.Level() != Level1 {
		t.Fatalf("new navigator must start at level 1, got %d", nav.Level())
	}

	if err := nav.DrillDown("Harbour View", map[string]string{"property_id": "7"}); err != nil {
		t.Fatalf("drill to level 2: %v", err)
	}
	if nav.Level() != Level2 {
		t.Fatalf("expected level 2, got %d", nav.Level())
	}
	if v, ok := nav.Key("property_id"); !ok || v != "7" {
		t.Fatalf("property_id key = %q, %v", v, ok)
	}

	if err := nav.DrillDown("L-042", map[string]string{"lease_id": "42"}); err != nil {
		t.Fatalf("drill to level 3: %v", err)
	}
	keys := nav.Keys()
	if keys["property_id"] != "7" || keys["lease_id"] != "42" {
		t.Fatalf("accumulated keys = %v", keys)
	}

	crumbs := nav.Breadcrumbs()
	if len(crumbs) != 3 {
		t.Fatalf("expected 3 crumbs, got %d", len(crumbs))
	}
	if crumbs[0].Label != "Commission by Property" || crumbs[2].Label != "L-042" {
		t.Fatalf("unexpected crumbs: %+v", crumbs)
	}

	if err := nav.DrillDown("deeper", map[string]string{"x": "1"}); !errors.Is(err, ErrDrillDepth) {
		t.Fatalf("drill past level 3 must fail with ErrDrillDepth, got %v", err)
	}

	if err := nav.JumpTo(Level1); err != nil {
		t.Fatalf("jump to level 1: %v", err)
	}
	if nav.Level() != Level1 {
		t.Fatalf("expected level 1 after jump, got %d", nav.Level())
	}
	if _, ok := nav.Key("property_id"); ok {
		t.Fatalf("jump to level 1 must discard deeper keys")
	}
}

func TestNavigatorRejectsEmptyKeys(t *testing.T) {
	nav := NewNavigator("Bank to Income")
	if err := nav.DrillDown("Main Account", nil); err == nil {
		t.Fatalf("drill without keys must fail")
	}
	if err := nav.DrillDown("Main Account", map[string]string{"bank_account_id": ""}); err == nil {
		t.Fatalf("drill with empty key value must fail")
	}
	if nav.Level() != Level1 {
		t.Fatalf("failed drill must not change level, got %d", nav.Level())
	}
}

func TestNavigatorJumpBounds(t *testing.T) {
	nav := NewNavigator("Rent Roll")
	if err := nav.JumpTo(Level2); !errors.Is(err, ErrDrillDepth) {
		t.Fatalf("jump below current depth must fail, got %v", err)
	}
	if err := nav.JumpTo(0); !errors.Is(err, ErrDrillDepth) {
		t.Fatalf("jump to level 0 must fail, got %v", err)
	}
	if err := nav.JumpTo(Level1); err != nil {
		t.Fatalf("jump to current level is a no-op, got %v", err)
	}
}

func TestDrillStateIsolatedPerPath(t *testing.T) {
	nav := NewNavigator("Commission by Property")

	if err := nav.DrillDown("Harbour View", map[string]string{"property_id": "7"}); err != nil {
		t.Fatal(err)
	}
	nav.View(Level2).SetSearch("unit 1")
	nav.View(Level2).SetPage(3)

	if err := nav.JumpTo(Level1); err != nil {
		t.Fatal(err)
	}
	if err := nav.DrillDown("Acacia Court", map[string]string{"property_id": "9"}); err != nil {
		t.Fatal(err)
	}

	view := nav.View(Level2)
	if view.Search() != "" {
		t.Fatalf("level-2 search leaked across drill paths: %q", view.Search())
	}
	if view.Page() != 1 {
		t.Fatalf("level-2 page leaked across drill paths: %d", view.Page())
	}
	if v, _ := nav.Key("property_id"); v != "9" {
		t.Fatalf("property_id = %q, want 9", v)
	}
}

func TestNavigatorEnabled(t *testing.T) {
	nav := NewNavigator("Bank to Income")
	if !nav.Enabled(Level1) {
		t.Fatalf("level 1 must be enabled at the root")
	}
	if nav.Enabled(Level2) {
		t.Fatalf("level-2 query must not fire while showing level 1")
	}
	if err := nav.DrillDown("Main Account", map[string]string{"bank_account_id": "3"}); err != nil {
		t.Fatal(err)
	}
	if nav.Enabled(Level1) || !nav.Enabled(Level2) {
		t.Fatalf("only the current level may fire")
	}
}

func TestActiveQueryMergesBaseAndKeys(t *testing.T) {
	nav := NewNavigator("Bank to Income")
	if err := nav.DrillDown("Main Account", map[string]string{"bank_account_id": "3"}); err != nil {
		t.Fatal(err)
	}
	q := nav.ActiveQuery(ReportBankIncomeDetail, map[string]string{
		"start_date": "2026-08-01",
		"end_date":   "2026-08-31",
	})
	want := "bank_income_detail|bank_account_id=3|end_date=2026-08-31|start_date=2026-08-01"
	if q.Key() != want {
		t.Fatalf("query key = %q, want %q", q.Key(), want)
	}
}
