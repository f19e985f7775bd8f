package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs the pgx-backed report repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) AgingSummary(ctx context.Context, filter AsOfFilter) (BucketSummary, error) {
	const query = `
SELECT
	COALESCE(SUM(CASE WHEN $1::date - i.due_date <= 30 THEN i.balance ELSE 0 END), 0) AS current,
	COALESCE(SUM(CASE WHEN $1::date - i.due_date BETWEEN 31 AND 60 THEN i.balance ELSE 0 END), 0) AS days_31_60,
	COALESCE(SUM(CASE WHEN $1::date - i.due_date BETWEEN 61 AND 90 THEN i.balance ELSE 0 END), 0) AS days_61_90,
	COALESCE(SUM(CASE WHEN $1::date - i.due_date BETWEEN 91 AND 120 THEN i.balance ELSE 0 END), 0) AS days_91_120,
	COALESCE(SUM(CASE WHEN $1::date - i.due_date > 120 THEN i.balance ELSE 0 END), 0) AS days_over_120,
	COALESCE(SUM(i.balance), 0) AS total_outstanding,
	COALESCE(SUM(CASE WHEN $1::date - i.due_date > 30 THEN i.balance ELSE 0 END), 0) AS total_overdue,
	COUNT(*) FILTER (WHERE $1::date - i.due_date > 30) AS overdue_count
FROM invoices i
JOIN leases l ON l.id = i.lease_id
JOIN units u ON u.id = l.unit_id
JOIN properties p ON p.id = u.property_id
WHERE i.balance > 0
  AND i.invoice_date <= $1::date
  AND ($2::bigint IS NULL OR p.id = $2)
  AND ($3::bigint IS NULL OR p.landlord_id = $3)`
	var s BucketSummary
	err := r.db.QueryRow(ctx, query, filter.AsOf, filter.PropertyID, filter.LandlordID).Scan(
		&s.Current, &s.Days31To60, &s.Days61To90, &s.Days91To120, &s.DaysOver120,
		&s.TotalOutstanding, &s.TotalOverdue, &s.OverdueCount,
	)
	return s, err
}

func (r *repository) AgingByTenant(ctx context.Context, filter AsOfFilter) ([]TenantAging, error) {
	const query = `
SELECT
	t.id,
	t.name,
	COALESCE(SUM(CASE WHEN $1::date - i.due_date <= 30 THEN i.balance ELSE 0 END), 0) AS current,
	COALESCE(SUM(CASE WHEN $1::date - i.due_date BETWEEN 31 AND 60 THEN i.balance ELSE 0 END), 0) AS days_31_60,
	COALESCE(SUM(CASE WHEN $1::date - i.due_date BETWEEN 61 AND 90 THEN i.balance ELSE 0 END), 0) AS days_61_90,
	COALESCE(SUM(CASE WHEN $1::date - i.due_date BETWEEN 91 AND 120 THEN i.balance ELSE 0 END), 0) AS days_91_120,
	COALESCE(SUM(CASE WHEN $1::date - i.due_date > 120 THEN i.balance ELSE 0 END), 0) AS days_over_120,
	COALESCE(SUM(i.balance), 0) AS total
FROM invoices i
JOIN leases l ON l.id = i.lease_id
JOIN tenants t ON t.id = l.tenant_id
JOIN units u ON u.id = l.unit_id
JOIN properties p ON p.id = u.property_id
WHERE i.balance > 0
  AND i.invoice_date <= $1::date
  AND ($2::bigint IS NULL OR p.id = $2)
  AND ($3::bigint IS NULL OR p.landlord_id = $3)
GROUP BY t.id, t.name
ORDER BY total DESC, t.name`
	rows, err := r.db.Query(ctx, query, filter.AsOf, filter.PropertyID, filter.LandlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TenantAging
	for rows.Next() {
		var t TenantAging
		if err := rows.Scan(&t.TenantID, &t.TenantName, &t.Current, &t.Days31To60, &t.Days61To90, &t.Days91To120, &t.DaysOver120, &t.Total); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repository) BankIncomeMatrix(ctx context.Context, filter RangeFilter) (BankIncomeMatrix, error) {
	const columnsQuery = `
SELECT b.id, b.name
FROM bank_accounts b
WHERE b.is_active
ORDER BY b.name`
	const cellsQuery = `
SELECT rc.income_type, it.display_name, rc.bank_account_id, COALESCE(SUM(rc.amount), 0)
FROM receipts rc
JOIN income_types it ON it.code = rc.income_type
WHERE rc.received_at >= $1::date AND rc.received_at <= $2::date
GROUP BY rc.income_type, it.display_name, rc.bank_account_id
ORDER BY it.display_name`

	var m BankIncomeMatrix
	rows, err := r.db.Query(ctx, columnsQuery)
	if err != nil {
		return m, err
	}
	for rows.Next() {
		var col BankColumn
		if err := rows.Scan(&col.BankAccountID, &col.BankAccountName); err != nil {
			rows.Close()
			return m, err
		}
		m.BankColumns = append(m.BankColumns, col)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return m, err
	}

	rows, err = r.db.Query(ctx, cellsQuery, filter.From, filter.To)
	if err != nil {
		return m, err
	}
	defer rows.Close()

	index := map[string]int{}
	m.Totals = BankIncomeRow{IncomeType: "total", IncomeTypeDisplay: "Total", Cells: map[string]float64{}}
	for rows.Next() {
		var incomeType, display string
		var bankAccountID int64
		var amount float64
		if err := rows.Scan(&incomeType, &display, &bankAccountID, &amount); err != nil {
			return m, err
		}
		i, ok := index[incomeType]
		if !ok {
			i = len(m.Matrix)
			index[incomeType] = i
			m.Matrix = append(m.Matrix, BankIncomeRow{
				IncomeType:        incomeType,
				IncomeTypeDisplay: display,
				Cells:             map[string]float64{},
			})
		}
		col := formatID(bankAccountID)
		m.Matrix[i].Cells[col] += amount
		m.Matrix[i].Total += amount
		m.Totals.Cells[col] += amount
		m.Totals.Total += amount
	}
	return m, rows.Err()
}

func (r *repository) BankIncomeDetail(ctx context.Context, bankAccountID int64, filter RangeFilter) ([]IncomeLine, error) {
	const query = `
SELECT rc.income_type, it.display_name, COALESCE(SUM(rc.amount), 0), COUNT(*)
FROM receipts rc
JOIN income_types it ON it.code = rc.income_type
WHERE rc.bank_account_id = $1
  AND rc.received_at >= $2::date AND rc.received_at <= $3::date
GROUP BY rc.income_type, it.display_name
ORDER BY 3 DESC`
	rows, err := r.db.Query(ctx, query, bankAccountID, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []IncomeLine
	for rows.Next() {
		var line IncomeLine
		if err := rows.Scan(&line.IncomeType, &line.IncomeTypeDisplay, &line.Amount, &line.ReceiptCount); err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, rows.Err()
}

func (r *repository) BankIncomeReceipts(ctx context.Context, bankAccountID int64, incomeType string, filter RangeFilter) ([]Receipt, error) {
	const query = `
SELECT rc.id, rc.received_at, t.name, p.name, rc.reference, rc.amount
FROM receipts rc
JOIN leases l ON l.id = rc.lease_id
JOIN tenants t ON t.id = l.tenant_id
JOIN units u ON u.id = l.unit_id
JOIN properties p ON p.id = u.property_id
WHERE rc.bank_account_id = $1
  AND rc.income_type = $2
  AND rc.received_at >= $3::date AND rc.received_at <= $4::date
ORDER BY rc.received_at DESC, rc.id DESC`
	rows, err := r.db.Query(ctx, query, bankAccountID, incomeType, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Receipt
	for rows.Next() {
		var rec Receipt
		if err := rows.Scan(&rec.ReceiptID, &rec.ReceivedAt, &rec.TenantName, &rec.PropertyName, &rec.Reference, &rec.Amount); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *repository) CommissionByProperty(ctx context.Context, filter RangeFilter) ([]PropertyCommission, error) {
	const query = `
SELECT p.id, p.name, ll.name, COUNT(DISTINCT cp.lease_id), COALESCE(SUM(cp.fee), 0)
FROM commission_payments cp
JOIN leases l ON l.id = cp.lease_id
JOIN units u ON u.id = l.unit_id
JOIN properties p ON p.id = u.property_id
JOIN landlords ll ON ll.id = p.landlord_id
WHERE cp.paid_at >= $1::date AND cp.paid_at <= $2::date
  AND ($3::bigint IS NULL OR p.id = $3)
GROUP BY p.id, p.name, ll.name
ORDER BY 5 DESC`
	rows, err := r.db.Query(ctx, query, filter.From, filter.To, filter.PropertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PropertyCommission
	for rows.Next() {
		var pc PropertyCommission
		if err := rows.Scan(&pc.PropertyID, &pc.PropertyName, &pc.LandlordName, &pc.LeaseCount, &pc.Amount); err != nil {
			return nil, err
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

func (r *repository) CommissionLeases(ctx context.Context, propertyID int64, filter RangeFilter) ([]LeaseCommission, error) {
	const query = `
SELECT l.id, l.lease_number, t.name, u.label, COALESCE(SUM(cp.fee), 0)
FROM commission_payments cp
JOIN leases l ON l.id = cp.lease_id
JOIN tenants t ON t.id = l.tenant_id
JOIN units u ON u.id = l.unit_id
WHERE u.property_id = $1
  AND cp.paid_at >= $2::date AND cp.paid_at <= $3::date
GROUP BY l.id, l.lease_number, t.name, u.label
ORDER BY 5 DESC`
	rows, err := r.db.Query(ctx, query, propertyID, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaseCommission
	for rows.Next() {
		var lc LeaseCommission
		if err := rows.Scan(&lc.LeaseID, &lc.LeaseNumber, &lc.TenantName, &lc.UnitLabel, &lc.Amount); err != nil {
			return nil, err
		}
		out = append(out, lc)
	}
	return out, rows.Err()
}

func (r *repository) CommissionPayments(ctx context.Context, propertyID, leaseID int64, filter RangeFilter) ([]CommissionPayment, error) {
	const query = `
SELECT cp.id, cp.paid_at, cp.rent_amount, cp.rate, cp.fee
FROM commission_payments cp
JOIN leases l ON l.id = cp.lease_id
JOIN units u ON u.id = l.unit_id
WHERE u.property_id = $1
  AND cp.lease_id = $2
  AND cp.paid_at >= $3::date AND cp.paid_at <= $4::date
ORDER BY cp.paid_at DESC, cp.id DESC`
	rows, err := r.db.Query(ctx, query, propertyID, leaseID, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CommissionPayment
	for rows.Next() {
		var p CommissionPayment
		if err := rows.Scan(&p.PaymentID, &p.PaidAt, &p.RentAmount, &p.Rate, &p.Fee); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) RentRoll(ctx context.Context, filter AsOfFilter) ([]PropertyRent, error) {
	const query = `
SELECT
	p.id,
	p.name,
	COUNT(u.id) AS unit_count,
	COUNT(l.id) FILTER (WHERE l.start_date <= $1::date AND l.end_date >= $1::date) AS occupied_units,
	COALESCE(SUM(l.monthly_rent) FILTER (WHERE l.start_date <= $1::date AND l.end_date >= $1::date), 0) AS monthly_rent,
	COALESCE((SELECT SUM(i.balance) FROM invoices i JOIN leases il ON il.id = i.lease_id JOIN units iu ON iu.id = il.unit_id
		WHERE iu.property_id = p.id AND i.balance > 0 AND i.due_date < $1::date), 0) AS arrears
FROM properties p
LEFT JOIN units u ON u.property_id = p.id
LEFT JOIN leases l ON l.unit_id = u.id
WHERE ($2::bigint IS NULL OR p.id = $2)
  AND ($3::bigint IS NULL OR p.landlord_id = $3)
GROUP BY p.id, p.name
ORDER BY p.name`
	rows, err := r.db.Query(ctx, query, filter.AsOf, filter.PropertyID, filter.LandlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PropertyRent
	for rows.Next() {
		var pr PropertyRent
		if err := rows.Scan(&pr.PropertyID, &pr.PropertyName, &pr.UnitCount, &pr.OccupiedUnits, &pr.MonthlyRent, &pr.Arrears); err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

func (r *repository) RentRollLeases(ctx context.Context, propertyID int64, asOf time.Time) ([]LeaseRent, error) {
	const query = `
SELECT l.id, l.lease_number, t.name, u.label, l.start_date, l.end_date, l.monthly_rent, COALESCE(l.deposit_held, 0)
FROM leases l
JOIN tenants t ON t.id = l.tenant_id
JOIN units u ON u.id = l.unit_id
WHERE u.property_id = $1
  AND l.start_date <= $2::date AND l.end_date >= $2::date
ORDER BY u.label, l.lease_number`
	rows, err := r.db.Query(ctx, query, propertyID, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaseRent
	for rows.Next() {
		var lr LeaseRent
		if err := rows.Scan(&lr.LeaseID, &lr.LeaseNumber, &lr.TenantName, &lr.UnitLabel, &lr.StartDate, &lr.EndDate, &lr.MonthlyRent, &lr.DepositHeld); err != nil {
			return nil, err
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}

func (r *repository) TrialBalance(ctx context.Context, filter RangeFilter) (TrialBalance, error) {
	const query = `
SELECT a.code, a.name,
	COALESCE(SUM(CASE WHEN e.amount > 0 THEN e.amount ELSE 0 END), 0) AS debit,
	COALESCE(SUM(CASE WHEN e.amount < 0 THEN -e.amount ELSE 0 END), 0) AS credit
FROM gl_entries e
JOIN accounts a ON a.id = e.account_id
WHERE e.entry_date >= $1::date AND e.entry_date <= $2::date
  AND ($3::bigint IS NULL OR e.property_id = $3)
GROUP BY a.code, a.name
ORDER BY a.code`
	var tb TrialBalance
	rows, err := r.db.Query(ctx, query, filter.From, filter.To, filter.PropertyID)
	if err != nil {
		return tb, err
	}
	defer rows.Close()

	for rows.Next() {
		var line TrialBalanceLine
		if err := rows.Scan(&line.AccountCode, &line.AccountName, &line.Debit, &line.Credit); err != nil {
			return tb, err
		}
		tb.TotalDebit += line.Debit
		tb.TotalCredit += line.Credit
		tb.Lines = append(tb.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return tb, err
	}
	tb.Balanced = almostEqual(tb.TotalDebit, tb.TotalCredit)
	return tb, nil
}

func (r *repository) IncomeStatement(ctx context.Context, filter RangeFilter) (IncomeStatement, error) {
	const query = `
SELECT a.section, a.name, COALESCE(SUM(e.amount), 0) AS amount
FROM gl_entries e
JOIN accounts a ON a.id = e.account_id
WHERE a.section IN ('INCOME', 'EXPENSE')
  AND e.entry_date >= $1::date AND e.entry_date <= $2::date
  AND ($3::bigint IS NULL OR e.property_id = $3)
GROUP BY a.section, a.name
ORDER BY a.section, a.name`
	var st IncomeStatement
	rows, err := r.db.Query(ctx, query, filter.From, filter.To, filter.PropertyID)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var line IncomeStatementLine
		if err := rows.Scan(&line.Section, &line.AccountName, &line.Amount); err != nil {
			return st, err
		}
		switch line.Section {
		case "INCOME":
			st.TotalIncome += line.Amount
		case "EXPENSE":
			st.TotalExpenses += line.Amount
		}
		st.Lines = append(st.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return st, err
	}
	st.NetIncome = st.TotalIncome - st.TotalExpenses
	return st, nil
}

func (r *repository) WarmupScopes(ctx context.Context) ([]WarmupScope, error) {
	const query = `
SELECT p.id, p.landlord_id
FROM properties p
WHERE EXISTS (
	SELECT 1 FROM units u JOIN leases l ON l.unit_id = u.id
	WHERE u.property_id = p.id AND l.end_date >= CURRENT_DATE
)
ORDER BY p.id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WarmupScope
	for rows.Next() {
		var s WarmupScope
		if err := rows.Scan(&s.PropertyID, &s.LandlordID); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func almostEqual(a, b float64) bool {
	d := a - b
	return d > -0.005 && d < 0.005
}
