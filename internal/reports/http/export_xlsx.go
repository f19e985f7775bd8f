package reporthttp

import (
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/parklane-pm/parklane/internal/reports"
)

func newWorkbook(sheet string) *excelize.File {
	f := excelize.NewFile()
	_ = f.SetSheetName("Sheet1", sheet)
	return f
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func writeAgedAnalysisXLSX(w io.Writer, payload reports.AgedAnalysis) error {
	const sheet = "Aged Analysis"
	f := newWorkbook(sheet)
	defer func() { _ = f.Close() }()

	header := []interface{}{"Tenant", "Current", "31-60 Days", "61-90 Days", "91-120 Days", "120+ Days", "Total"}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	row := 2
	for _, tenant := range payload.ByTenant {
		if err := setRow(f, sheet, row, []interface{}{
			tenant.TenantName,
			tenant.Current,
			tenant.Days31To60,
			tenant.Days61To90,
			tenant.Days91To120,
			tenant.DaysOver120,
			tenant.Total,
		}); err != nil {
			return err
		}
		row++
	}
	row++
	s := payload.Summary
	if err := setRow(f, sheet, row, []interface{}{"Totals", s.Current, s.Days31To60, s.Days61To90, s.Days91To120, s.DaysOver120, s.TotalOutstanding}); err != nil {
		return err
	}
	if err := setRow(f, sheet, row+1, []interface{}{"Total Overdue", "", "", "", "", "", s.TotalOverdue}); err != nil {
		return err
	}
	return f.Write(w)
}

func writeBankIncomeXLSX(w io.Writer, matrix reports.BankIncomeMatrix) error {
	const sheet = "Bank to Income"
	f := newWorkbook(sheet)
	defer func() { _ = f.Close() }()

	header := []interface{}{"Income Type"}
	for _, col := range matrix.BankColumns {
		header = append(header, col.BankAccountName)
	}
	header = append(header, "Total")
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	row := 2
	for _, line := range matrix.Matrix {
		record := []interface{}{line.IncomeTypeDisplay}
		for _, col := range matrix.BankColumns {
			record = append(record, line.Cells[strconv.FormatInt(col.BankAccountID, 10)])
		}
		record = append(record, line.Total)
		if err := setRow(f, sheet, row, record); err != nil {
			return err
		}
		row++
	}
	totals := []interface{}{"Totals"}
	for _, col := range matrix.BankColumns {
		totals = append(totals, matrix.Totals.Cells[strconv.FormatInt(col.BankAccountID, 10)])
	}
	totals = append(totals, matrix.Totals.Total)
	if err := setRow(f, sheet, row, totals); err != nil {
		return err
	}
	return f.Write(w)
}

func writeCommissionsXLSX(w io.Writer, rows []reports.PropertyCommission) error {
	const sheet = "Commissions"
	f := newWorkbook(sheet)
	defer func() { _ = f.Close() }()

	if err := setRow(f, sheet, 1, []interface{}{"Property", "Landlord", "Leases", "Commission"}); err != nil {
		return err
	}
	var total float64
	for i, line := range rows {
		total += line.Amount
		if err := setRow(f, sheet, i+2, []interface{}{line.PropertyName, line.LandlordName, line.LeaseCount, line.Amount}); err != nil {
			return err
		}
	}
	if err := setRow(f, sheet, len(rows)+2, []interface{}{"Totals", "", "", total}); err != nil {
		return err
	}
	return f.Write(w)
}

func writeRentRollXLSX(w io.Writer, rows []reports.PropertyRent) error {
	const sheet = "Rent Roll"
	f := newWorkbook(sheet)
	defer func() { _ = f.Close() }()

	if err := setRow(f, sheet, 1, []interface{}{"Property", "Units", "Occupied", "Monthly Rent", "Arrears"}); err != nil {
		return err
	}
	for i, line := range rows {
		if err := setRow(f, sheet, i+2, []interface{}{line.PropertyName, line.UnitCount, line.OccupiedUnits, line.MonthlyRent, line.Arrears}); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func writeTrialBalanceXLSX(w io.Writer, tb reports.TrialBalance) error {
	const sheet = "Trial Balance"
	f := newWorkbook(sheet)
	defer func() { _ = f.Close() }()

	if err := setRow(f, sheet, 1, []interface{}{"Account Code", "Account Name", "Debit", "Credit"}); err != nil {
		return err
	}
	row := 2
	for _, line := range tb.Lines {
		if err := setRow(f, sheet, row, []interface{}{line.AccountCode, line.AccountName, line.Debit, line.Credit}); err != nil {
			return err
		}
		row++
	}
	if err := setRow(f, sheet, row, []interface{}{"Totals", "", tb.TotalDebit, tb.TotalCredit}); err != nil {
		return err
	}
	if err := setRow(f, sheet, row+1, []interface{}{"Balanced", "", "", strconv.FormatBool(tb.Balanced)}); err != nil {
		return err
	}
	return f.Write(w)
}

func writeIncomeStatementXLSX(w io.Writer, st reports.IncomeStatement) error {
	const sheet = "Income Statement"
	f := newWorkbook(sheet)
	defer func() { _ = f.Close() }()

	if err := setRow(f, sheet, 1, []interface{}{"Section", "Account", "Amount"}); err != nil {
		return err
	}
	row := 2
	for _, line := range st.Lines {
		if err := setRow(f, sheet, row, []interface{}{line.Section, line.AccountName, line.Amount}); err != nil {
			return err
		}
		row++
	}
	totals := [][]interface{}{
		{"Totals", "Income", st.TotalIncome},
		{"Totals", "Expenses", st.TotalExpenses},
		{"Totals", "Net Income", st.NetIncome},
	}
	for _, record := range totals {
		if err := setRow(f, sheet, row, record); err != nil {
			return err
		}
		row++
	}
	return f.Write(w)
}
