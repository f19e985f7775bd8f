package reports

import (
	"fmt"
	"testing"
)

type leaseRow struct {
	Tenant   string
	Property string
	Unit     string
	Number   string
}

func leaseFields(r leaseRow) []string {
	return []string{r.Tenant, r.Property, r.Unit, r.Number}
}

func TestFilterRowsMatchesAnyDesignatedField(t *testing.T) {
	rows := []leaseRow{
		{Tenant: "Acme Trading", Property: "Harbour View", Unit: "1A", Number: "L-001"},
		{Tenant: "Beta Foods", Property: "Acacia Court", Unit: "2B", Number: "L-002"},
		{Tenant: "Gamma Ltd", Property: "Harbour View", Unit: "3C", Number: "L-003"},
	}

	filtered := FilterRows(rows, "acA", leaseFields)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(filtered))
	}
	if filtered[0].Tenant != "Acme Trading" || filtered[1].Tenant != "Beta Foods" {
		t.Fatalf("unexpected matches: %+v", filtered)
	}

	filtered = FilterRows(rows, "harbour", leaseFields)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 property matches, got %d", len(filtered))
	}

	filtered = FilterRows(rows, "zzz", leaseFields)
	if len(filtered) != 0 {
		t.Fatalf("expected no matches, got %d", len(filtered))
	}
}

func TestFilterRowsEmptyQueryIsIdentity(t *testing.T) {
	rows := []leaseRow{{Tenant: "Acme"}, {Tenant: "Beta"}}
	filtered := FilterRows(rows, "", leaseFields)
	if len(filtered) != len(rows) {
		t.Fatalf("empty query must return all rows")
	}
	if &filtered[0] != &rows[0] {
		t.Fatalf("empty query must return the source slice unchanged")
	}
}

func TestPaginationBounds(t *testing.T) {
	rows := make([]leaseRow, 60)
	for i := range rows {
		rows[i].Number = fmt.Sprintf("L-%03d", i)
	}

	if got := TotalPages(60); got != 3 {
		t.Fatalf("expected 3 pages for 60 rows, got %d", got)
	}
	if got := TotalPages(0); got != 0 {
		t.Fatalf("expected 0 pages for empty set, got %d", got)
	}

	page := PageSlice(rows, 3)
	if len(page) != 10 {
		t.Fatalf("expected 10 rows on last page, got %d", len(page))
	}
	if page[0].Number != "L-050" {
		t.Fatalf("expected page 3 to start at row 50, got %s", page[0].Number)
	}
	if got := PageSlice(rows, 9); len(got) != 0 {
		t.Fatalf("out-of-range page must be empty, got %d rows", len(got))
	}
	if got := PageSlice([]leaseRow{}, 1); len(got) != 0 {
		t.Fatalf("empty set page must be empty")
	}
}

func TestSearchResetsPage(t *testing.T) {
	rows := make([]leaseRow, 100)
	for i := range rows {
		rows[i].Tenant = fmt.Sprintf("Tenant %03d", i)
	}
	view := NewTableView(leaseFields)
	view.SetSource(rows)
	view.SetPage(4)

	if snap := view.Snapshot(); snap.Page != 4 {
		t.Fatalf("expected page 4, got %d", snap.Page)
	}

	view.SetSearch("Tenant 00")
	snap := view.Snapshot()
	if snap.Page != 1 {
		t.Fatalf("search change must reset page to 1, got %d", snap.Page)
	}
	if len(snap.Filtered) != 10 {
		t.Fatalf("expected 10 filtered rows, got %d", len(snap.Filtered))
	}
}

func TestSourceChangeResetsPage(t *testing.T) {
	view := NewTableView(leaseFields)
	view.SetSource(make([]leaseRow, 100))
	view.SetPage(3)
	view.SetSource(make([]leaseRow, 100))
	if snap := view.Snapshot(); snap.Page != 1 {
		t.Fatalf("source change must reset page to 1, got %d", snap.Page)
	}
}

func TestShrinkingResultSetClampsPage(t *testing.T) {
	rows := make([]leaseRow, 100)
	for i := range rows {
		rows[i].Tenant = fmt.Sprintf("Tenant %03d", i)
	}
	view := NewTableView(leaseFields)
	view.SetSource(rows)
	view.SetPage(4)
	// Narrow to a single page worth of rows without going through SetSearch's
	// reset, simulating a stale page index against a shorter set.
	view.search = "Tenant 00"

	snap := view.Snapshot()
	if snap.TotalPages != 1 {
		t.Fatalf("expected 1 page, got %d", snap.TotalPages)
	}
	if snap.Page != 1 {
		t.Fatalf("page must clamp to last valid page, got %d", snap.Page)
	}
	if len(snap.PageItems) == 0 {
		t.Fatalf("clamped page must show rows, not a blank page")
	}

	view.search = "no such tenant"
	if snap := view.Snapshot(); snap.Page != 1 || snap.TotalPages != 0 {
		t.Fatalf("empty filtered set must report page 1 of 0, got %+v", snap)
	}
}
