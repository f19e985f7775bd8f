package reporthttp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/parklane-pm/parklane/internal/reports"
)

func TestCSVStreamerFlushInterval(t *testing.T) {
	var buf bytes.Buffer
	streamer := newCSVStreamer(&buf)
	for i := 0; i < csvFlushEvery; i++ {
		if err := streamer.writeRow([]string{"row"}); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	if streamer.pendingLines != 0 {
		t.Fatalf("expected pending lines reset to 0, got %d", streamer.pendingLines)
	}
	if err := streamer.writeRow([]string{"next"}); err != nil {
		t.Fatalf("write row: %v", err)
	}
	if streamer.pendingLines != 1 {
		t.Fatalf("expected pending lines 1, got %d", streamer.pendingLines)
	}
	if err := streamer.Close(); err != nil {
		t.Fatalf("close streamer: %v", err)
	}
}

func TestWriteAgedAnalysisCSVIncludesMetadataAndTotals(t *testing.T) {
	payload := reports.AgedAnalysis{
		Summary: reports.BucketSummary{
			Current:          1000,
			Days31To60:       500,
			TotalOutstanding: 1500,
			TotalOverdue:     500,
			OverdueCount:     3,
		},
		ByTenant: []reports.TenantAging{
			{TenantName: "Acme Trading", Current: 1000, Days31To60: 500, Total: 1500},
		},
	}
	filters := map[string]string{"as_of_date": "2026-08-23", "property_id": "7"}

	var buf bytes.Buffer
	if err := writeAgedAnalysisCSV(&buf, payload, filters); err != nil {
		t.Fatalf("writeAgedAnalysisCSV: %v", err)
	}
	content := buf.String()
	if !strings.Contains(content, "\r\n") {
		t.Fatalf("expected CRLF line endings")
	}
	lines := strings.Split(strings.TrimSuffix(content, "\r\n"), "\r\n")
	if want := "# Report: Aged Analysis"; lines[0] != want {
		t.Fatalf("unexpected metadata line 1: %q", lines[0])
	}
	if want := "# Filters: as_of_date: 2026-08-23 | property_id: 7"; lines[1] != want {
		t.Fatalf("unexpected metadata line 2: %q", lines[1])
	}
	if want := "Tenant,Current,31-60 Days,61-90 Days,91-120 Days,120+ Days,Total"; lines[2] != want {
		t.Fatalf("unexpected header: %q", lines[2])
	}
	if want := "Acme Trading,1000.00,500.00,0.00,0.00,0.00,1500.00"; lines[3] != want {
		t.Fatalf("unexpected tenant row: %q", lines[3])
	}
	if want := "Totals,1000.00,500.00,0.00,0.00,0.00,1500.00"; !strings.Contains(content, want) {
		t.Fatalf("expected totals row containing %q", want)
	}
	if want := "Overdue Invoices,,,,,,3"; !strings.Contains(content, want) {
		t.Fatalf("expected overdue count row containing %q", want)
	}
}

func TestWriteBankIncomeCSVColumnsFollowBankOrder(t *testing.T) {
	matrix := reports.BankIncomeMatrix{
		BankColumns: []reports.BankColumn{
			{BankAccountID: 2, BankAccountName: "Trust Account"},
			{BankAccountID: 1, BankAccountName: "Operating Account"},
		},
		Matrix: []reports.BankIncomeRow{
			{IncomeType: "rent", IncomeTypeDisplay: "Rent", Cells: map[string]float64{"1": 250, "2": 750}, Total: 1000},
		},
		Totals: reports.BankIncomeRow{Cells: map[string]float64{"1": 250, "2": 750}, Total: 1000},
	}
	var buf bytes.Buffer
	if err := writeBankIncomeCSV(&buf, matrix, map[string]string{"start_date": "2026-08-01"}); err != nil {
		t.Fatalf("writeBankIncomeCSV: %v", err)
	}
	content := buf.String()
	if want := "Income Type,Trust Account,Operating Account,Total"; !strings.Contains(content, want) {
		t.Fatalf("expected header %q, got %q", want, content)
	}
	if want := "Rent,750.00,250.00,1000.00"; !strings.Contains(content, want) {
		t.Fatalf("expected matrix row %q, got %q", want, content)
	}
	if want := "Totals,750.00,250.00,1000.00"; !strings.Contains(content, want) {
		t.Fatalf("expected totals row %q, got %q", want, content)
	}
}

func TestWriteTrialBalanceCSVBalancedFlag(t *testing.T) {
	tb := reports.TrialBalance{
		Lines: []reports.TrialBalanceLine{
			{AccountCode: "4000", AccountName: "Rental Income", Debit: 0, Credit: 1200},
		},
		TotalDebit:  1200,
		TotalCredit: 1200,
		Balanced:    true,
	}
	var buf bytes.Buffer
	if err := writeTrialBalanceCSV(&buf, tb, nil); err != nil {
		t.Fatalf("writeTrialBalanceCSV: %v", err)
	}
	content := buf.String()
	if !strings.Contains(content, "# Filters: none") {
		t.Fatalf("expected empty filters marker, got %q", content)
	}
	if !strings.Contains(content, "Balanced,,,true") {
		t.Fatalf("expected balanced flag row, got %q", content)
	}
}
