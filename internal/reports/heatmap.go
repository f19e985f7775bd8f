package reports

// Tier is the coarse heatmap intensity of one matrix cell.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
	// TierNone marks non-positive cells, rendered as a placeholder dash.
	TierNone Tier = ""
)

// MaxCell scans every cell of the matrix and returns the maximum value, with
// a floor of 1 so an all-zero matrix never divides by zero.
func MaxCell(rows []map[string]float64) float64 {
	maxValue := 0.0
	for _, row := range rows {
		for _, v := range row {
			if v > maxValue {
				maxValue = v
			}
		}
	}
	if maxValue == 0 {
		return 1
	}
	return maxValue
}

// CellTier maps one cell to its intensity tier relative to the matrix max.
// Non-positive cells carry no tier.
func CellTier(value, maxValue float64) Tier {
	if value <= 0 {
		return TierNone
	}
	if maxValue <= 0 {
		maxValue = 1
	}
	intensity := value / maxValue
	if intensity > 1 {
		intensity = 1
	}
	switch {
	case intensity > 0.7:
		return TierHigh
	case intensity > 0.4:
		return TierMedium
	default:
		return TierLow
	}
}

// MatrixTiers computes the tier of every cell in the bank-to-income matrix,
// keyed by income type then bank column.
func MatrixTiers(m BankIncomeMatrix) map[string]map[string]Tier {
	cells := make([]map[string]float64, 0, len(m.Matrix))
	for _, row := range m.Matrix {
		cells = append(cells, row.Cells)
	}
	maxValue := MaxCell(cells)

	tiers := make(map[string]map[string]Tier, len(m.Matrix))
	for _, row := range m.Matrix {
		rowTiers := make(map[string]Tier, len(row.Cells))
		for col, v := range row.Cells {
			rowTiers[col] = CellTier(v, maxValue)
		}
		tiers[row.IncomeType] = rowTiers
	}
	return tiers
}
