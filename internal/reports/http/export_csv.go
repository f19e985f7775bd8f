package reporthttp

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/parklane-pm/parklane/internal/reports"
)

const (
	csvFlushEvery = 200
	csvBufferSize = 32 * 1024
)

type csvStreamer struct {
	buf          *bufio.Writer
	csv          *csv.Writer
	flushEvery   int
	pendingLines int
}

func newCSVStreamer(w io.Writer) *csvStreamer {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true
	return &csvStreamer{buf: buf, csv: writer, flushEvery: csvFlushEvery}
}

func (s *csvStreamer) writeComment(line string) error {
	if s == nil || s.buf == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	if !strings.HasSuffix(line, "\r\n") {
		line = strings.TrimSuffix(line, "\n")
		line += "\r\n"
	}
	if _, err := s.buf.WriteString(line); err != nil {
		return err
	}
	return nil
}

func (s *csvStreamer) writeRow(row []string) error {
	if s == nil || s.csv == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	if err := s.csv.Write(row); err != nil {
		return err
	}
	s.pendingLines++
	if s.flushEvery > 0 && s.pendingLines >= s.flushEvery {
		return s.Flush()
	}
	return nil
}

func (s *csvStreamer) Flush() error {
	if s == nil || s.csv == nil || s.buf == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return err
	}
	if err := s.buf.Flush(); err != nil {
		return err
	}
	s.pendingLines = 0
	return nil
}

func (s *csvStreamer) Close() error {
	return s.Flush()
}

func writeCSVMetadata(streamer *csvStreamer, reportName string, filters map[string]string) error {
	if err := streamer.writeComment(fmt.Sprintf("# Report: %s", reportName)); err != nil {
		return err
	}
	pairs := make([]string, 0, len(filters))
	for _, k := range sortedKeys(filters) {
		pairs = append(pairs, fmt.Sprintf("%s: %s", k, filters[k]))
	}
	if len(pairs) == 0 {
		pairs = append(pairs, "none")
	}
	return streamer.writeComment("# Filters: " + strings.Join(pairs, " | "))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatDecimal(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func writeAgedAnalysisCSV(w io.Writer, payload reports.AgedAnalysis, filters map[string]string) error {
	streamer := newCSVStreamer(w)
	if err := writeCSVMetadata(streamer, "Aged Analysis", filters); err != nil {
		return err
	}
	if err := streamer.writeRow([]string{"Tenant", "Current", "31-60 Days", "61-90 Days", "91-120 Days", "120+ Days", "Total"}); err != nil {
		return err
	}
	for _, row := range payload.ByTenant {
		if err := streamer.writeRow([]string{
			row.TenantName,
			formatDecimal(row.Current),
			formatDecimal(row.Days31To60),
			formatDecimal(row.Days61To90),
			formatDecimal(row.Days91To120),
			formatDecimal(row.DaysOver120),
			formatDecimal(row.Total),
		}); err != nil {
			return err
		}
	}
	if err := streamer.writeRow([]string{""}); err != nil {
		return err
	}
	s := payload.Summary
	totalsRows := [][]string{
		{"Totals", formatDecimal(s.Current), formatDecimal(s.Days31To60), formatDecimal(s.Days61To90), formatDecimal(s.Days91To120), formatDecimal(s.DaysOver120), formatDecimal(s.TotalOutstanding)},
		{"Total Overdue", "", "", "", "", "", formatDecimal(s.TotalOverdue)},
		{"Overdue Invoices", "", "", "", "", "", strconv.Itoa(s.OverdueCount)},
	}
	for _, row := range totalsRows {
		if err := streamer.writeRow(row); err != nil {
			return err
		}
	}
	return streamer.Close()
}

func writeBankIncomeCSV(w io.Writer, matrix reports.BankIncomeMatrix, filters map[string]string) error {
	streamer := newCSVStreamer(w)
	if err := writeCSVMetadata(streamer, "Bank to Income", filters); err != nil {
		return err
	}
	header := []string{"Income Type"}
	for _, col := range matrix.BankColumns {
		header = append(header, col.BankAccountName)
	}
	header = append(header, "Total")
	if err := streamer.writeRow(header); err != nil {
		return err
	}
	for _, row := range matrix.Matrix {
		record := []string{row.IncomeTypeDisplay}
		for _, col := range matrix.BankColumns {
			record = append(record, formatDecimal(row.Cells[strconv.FormatInt(col.BankAccountID, 10)]))
		}
		record = append(record, formatDecimal(row.Total))
		if err := streamer.writeRow(record); err != nil {
			return err
		}
	}
	totals := []string{"Totals"}
	for _, col := range matrix.BankColumns {
		totals = append(totals, formatDecimal(matrix.Totals.Cells[strconv.FormatInt(col.BankAccountID, 10)]))
	}
	totals = append(totals, formatDecimal(matrix.Totals.Total))
	if err := streamer.writeRow(totals); err != nil {
		return err
	}
	return streamer.Close()
}

func writeCommissionsCSV(w io.Writer, rows []reports.PropertyCommission, filters map[string]string) error {
	streamer := newCSVStreamer(w)
	if err := writeCSVMetadata(streamer, "Commission by Property", filters); err != nil {
		return err
	}
	if err := streamer.writeRow([]string{"Property", "Landlord", "Leases", "Commission"}); err != nil {
		return err
	}
	var total float64
	for _, row := range rows {
		total += row.Amount
		if err := streamer.writeRow([]string{
			row.PropertyName,
			row.LandlordName,
			strconv.Itoa(row.LeaseCount),
			formatDecimal(row.Amount),
		}); err != nil {
			return err
		}
	}
	if err := streamer.writeRow([]string{"Totals", "", "", formatDecimal(total)}); err != nil {
		return err
	}
	return streamer.Close()
}

func writeRentRollCSV(w io.Writer, rows []reports.PropertyRent, filters map[string]string) error {
	streamer := newCSVStreamer(w)
	if err := writeCSVMetadata(streamer, "Rent Roll", filters); err != nil {
		return err
	}
	if err := streamer.writeRow([]string{"Property", "Units", "Occupied", "Monthly Rent", "Arrears"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := streamer.writeRow([]string{
			row.PropertyName,
			strconv.Itoa(row.UnitCount),
			strconv.Itoa(row.OccupiedUnits),
			formatDecimal(row.MonthlyRent),
			formatDecimal(row.Arrears),
		}); err != nil {
			return err
		}
	}
	return streamer.Close()
}

func writeTrialBalanceCSV(w io.Writer, tb reports.TrialBalance, filters map[string]string) error {
	streamer := newCSVStreamer(w)
	if err := writeCSVMetadata(streamer, "Trial Balance", filters); err != nil {
		return err
	}
	if err := streamer.writeRow([]string{"Account Code", "Account Name", "Debit", "Credit"}); err != nil {
		return err
	}
	for _, line := range tb.Lines {
		if err := streamer.writeRow([]string{
			line.AccountCode,
			line.AccountName,
			formatDecimal(line.Debit),
			formatDecimal(line.Credit),
		}); err != nil {
			return err
		}
	}
	totalsRows := [][]string{
		{"Totals", "", formatDecimal(tb.TotalDebit), formatDecimal(tb.TotalCredit)},
		{"Balanced", "", "", strconv.FormatBool(tb.Balanced)},
	}
	for _, row := range totalsRows {
		if err := streamer.writeRow(row); err != nil {
			return err
		}
	}
	return streamer.Close()
}

func writeIncomeStatementCSV(w io.Writer, st reports.IncomeStatement, filters map[string]string) error {
	streamer := newCSVStreamer(w)
	if err := writeCSVMetadata(streamer, "Income Statement", filters); err != nil {
		return err
	}
	if err := streamer.writeRow([]string{"Section", "Account", "Amount"}); err != nil {
		return err
	}
	for _, line := range st.Lines {
		if err := streamer.writeRow([]string{
			line.Section,
			line.AccountName,
			formatDecimal(line.Amount),
		}); err != nil {
			return err
		}
	}
	totalsRows := [][]string{
		{"Totals", "Income", formatDecimal(st.TotalIncome)},
		{"Totals", "Expenses", formatDecimal(st.TotalExpenses)},
		{"Totals", "Net Income", formatDecimal(st.NetIncome)},
	}
	for _, row := range totalsRows {
		if err := streamer.writeRow(row); err != nil {
			return err
		}
	}
	return streamer.Close()
}
