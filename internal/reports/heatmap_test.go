package reports

import "testing"

func TestCellTierThresholds(t *testing.T) {
	cases := []struct {
		value float64
		max   float64
		want  Tier
	}{
		{750, 1000, TierHigh},
		{701, 1000, TierHigh},
		{700, 1000, TierMedium},
		{450, 1000, TierMedium},
		{401, 1000, TierMedium},
		{400, 1000, TierLow},
		{100, 1000, TierLow},
		{0, 1000, TierNone},
		{-50, 1000, TierNone},
		{1000, 1000, TierHigh},
		{2000, 1000, TierHigh},
	}
	for _, tc := range cases {
		if got := CellTier(tc.value, tc.max); got != tc.want {
			t.Fatalf("CellTier(%.0f, %.0f) = %q, want %q", tc.value, tc.max, got, tc.want)
		}
	}
}

func TestMaxCellFloorsAtOne(t *testing.T) {
	if got := MaxCell(nil); got != 1 {
		t.Fatalf("empty matrix max = %.2f, want 1", got)
	}
	if got := MaxCell([]map[string]float64{{"1": 0, "2": 0}}); got != 1 {
		t.Fatalf("all-zero matrix max = %.2f, want 1", got)
	}
	if got := MaxCell([]map[string]float64{{"1": 3, "2": 9}, {"1": 7}}); got != 9 {
		t.Fatalf("matrix max = %.2f, want 9", got)
	}
}

func TestMatrixTiers(t *testing.T) {
	m := BankIncomeMatrix{
		Matrix: []BankIncomeRow{
			{IncomeType: "rent", Cells: map[string]float64{"1": 1000, "2": 450}},
			{IncomeType: "deposit", Cells: map[string]float64{"1": 100, "2": 0}},
		},
	}
	tiers := MatrixTiers(m)
	if tiers["rent"]["1"] != TierHigh {
		t.Fatalf("rent/1 = %q, want high", tiers["rent"]["1"])
	}
	if tiers["rent"]["2"] != TierMedium {
		t.Fatalf("rent/2 = %q, want medium", tiers["rent"]["2"])
	}
	if tiers["deposit"]["1"] != TierLow {
		t.Fatalf("deposit/1 = %q, want low", tiers["deposit"]["1"])
	}
	if tiers["deposit"]["2"] != TierNone {
		t.Fatalf("deposit/2 = %q, want none", tiers["deposit"]["2"])
	}
}

func TestMatrixTiersAllZeroMatrix(t *testing.T) {
	m := BankIncomeMatrix{
		Matrix: []BankIncomeRow{{IncomeType: "rent", Cells: map[string]float64{"1": 0}}},
	}
	tiers := MatrixTiers(m)
	if tiers["rent"]["1"] != TierNone {
		t.Fatalf("all-zero matrix cell = %q, want none", tiers["rent"]["1"])
	}
}
