package reports

// Normalization runs at the fetch boundary so presenters can assume totality:
// absent collections come back as empty slices and every matrix row carries a
// cell map, never nil.

// Normalized fills defaults on a decoded aged-analysis payload.
func (a AgedAnalysis) Normalized() AgedAnalysis {
	if a.ByTenant == nil {
		a.ByTenant = []TenantAging{}
	}
	return a
}

// Normalized fills defaults on a decoded bank-to-income matrix.
func (m BankIncomeMatrix) Normalized() BankIncomeMatrix {
	if m.Matrix == nil {
		m.Matrix = []BankIncomeRow{}
	}
	if m.BankColumns == nil {
		m.BankColumns = []BankColumn{}
	}
	for i := range m.Matrix {
		if m.Matrix[i].Cells == nil {
			m.Matrix[i].Cells = map[string]float64{}
		}
	}
	if m.Totals.Cells == nil {
		m.Totals.Cells = map[string]float64{}
	}
	return m
}

// Normalized fills defaults on a decoded trial balance.
func (t TrialBalance) Normalized() TrialBalance {
	if t.Lines == nil {
		t.Lines = []TrialBalanceLine{}
	}
	return t
}

// Normalized fills defaults on a decoded income statement.
func (s IncomeStatement) Normalized() IncomeStatement {
	if s.Lines == nil {
		s.Lines = []IncomeStatementLine{}
	}
	return s
}
