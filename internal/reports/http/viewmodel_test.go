package reporthttp

import (
	"reflect"
	"testing"

	"github.com/parklane-pm/parklane/internal/reports"
)

func TestFormatMoneyDisplay(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{150, "$150.00"},
		{100, "$100.00"},
		{1234.56, "$1,234.56"},
		{15000, "$15,000.00"},
		{0, "$0.00"},
	}
	for _, tc := range cases {
		if got := formatMoney(tc.in); got != tc.want {
			t.Fatalf("formatMoney(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAgedAnalysisVMDisplayTotals(t *testing.T) {
	vm := buildAgedAnalysisVM(reports.AgedAnalysis{
		Summary: reports.BucketSummary{
			Current:          100,
			Days31To60:       50,
			TotalOutstanding: 150,
			TotalOverdue:     50,
			OverdueCount:     2,
		},
	})
	if vm.Summary.TotalOutstandingDisplay != "$150.00" {
		t.Fatalf("outstanding display = %q", vm.Summary.TotalOutstandingDisplay)
	}
	if vm.Summary.WorstBucket.AmountDisplay != "$100.00" {
		t.Fatalf("worst bucket display = %q", vm.Summary.WorstBucket.AmountDisplay)
	}
}

func TestPaginateTableSemantics(t *testing.T) {
	rows := make([]reports.PropertyRent, 0, 60)
	for i := 1; i <= 60; i++ {
		rows = append(rows, reports.PropertyRent{PropertyID: int64(i), PropertyName: "Block " + string(rune('A'+i%3))})
	}

	cases := []struct {
		params    tableParams
		wantMeta  tableMeta
		wantItems int
	}{
		{tableParams{Page: 1}, tableMeta{Page: 1, TotalPages: 3, TotalRows: 60}, 25},
		{tableParams{Page: 3}, tableMeta{Page: 3, TotalPages: 3, TotalRows: 60}, 10},
		{tableParams{Page: 99}, tableMeta{Page: 3, TotalPages: 3, TotalRows: 60}, 10},
		{tableParams{Search: "block a", Page: 1}, tableMeta{Search: "block a", Page: 1, TotalPages: 1, TotalRows: 20}, 20},
		{tableParams{Search: "no such", Page: 3}, tableMeta{Search: "no such", Page: 1, TotalPages: 0, TotalRows: 0}, 0},
	}
	for _, tc := range cases {
		items, meta := paginate(rows, propertyRentFields, tc.params)
		if meta != tc.wantMeta {
			t.Fatalf("params %+v: meta = %+v, want %+v", tc.params, meta, tc.wantMeta)
		}
		if len(items) != tc.wantItems {
			t.Fatalf("params %+v: %d items, want %d", tc.params, len(items), tc.wantItems)
		}
	}

	if items, _ := paginate(rows, propertyRentFields, tableParams{Page: 1}); !reflect.DeepEqual(items[0], rows[0]) {
		t.Fatalf("first page does not start at the first row")
	}
}
