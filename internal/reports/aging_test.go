package reports

import (
	"math"
	"testing"
)

func almostEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBucketBarsScaleAgainstLargestBucket(t *testing.T) {
	summary := BucketSummary{
		Current:          10000,
		Days31To60:       5000,
		Days61To90:       0,
		Days91To120:      0,
		DaysOver120:      0,
		TotalOutstanding: 15000,
	}

	bars := BucketBars(summary)
	if len(bars) != 5 {
		t.Fatalf("expected 5 bars, got %d", len(bars))
	}

	wantRender := []float64{100, 50, 0.5, 0.5, 0.5}
	wantBar := []float64{100, 50, 0, 0, 0}
	for i, bar := range bars {
		if !almostEq(bar.BarWidthPercent, wantBar[i]) {
			t.Fatalf("bar %s: width %.2f, want %.2f", bar.Key, bar.BarWidthPercent, wantBar[i])
		}
		if !almostEq(bar.RenderWidthPercent, wantRender[i]) {
			t.Fatalf("bar %s: render width %.2f, want %.2f", bar.Key, bar.RenderWidthPercent, wantRender[i])
		}
	}

	if !almostEq(bars[0].ShareOfTotalPercent, 100*10000/15000.0) {
		t.Fatalf("current share %.4f, want %.4f", bars[0].ShareOfTotalPercent, 100*10000/15000.0)
	}
	if !almostEq(bars[1].ShareOfTotalPercent, 100*5000/15000.0) {
		t.Fatalf("31-60 share %.4f, want %.4f", bars[1].ShareOfTotalPercent, 100*5000/15000.0)
	}
}

func TestBucketBarsAllZero(t *testing.T) {
	bars := BucketBars(BucketSummary{})
	for _, bar := range bars {
		if bar.BarWidthPercent != 0 {
			t.Fatalf("bucket %s: zero summary must give 0%% width, got %.2f", bar.Key, bar.BarWidthPercent)
		}
		if bar.RenderWidthPercent != minRenderWidthPercent {
			t.Fatalf("bucket %s: render width must floor at %.1f%%, got %.2f", bar.Key, minRenderWidthPercent, bar.RenderWidthPercent)
		}
		if bar.ShareOfTotalPercent != 0 {
			t.Fatalf("bucket %s: zero total must give 0%% share, got %.2f", bar.Key, bar.ShareOfTotalPercent)
		}
	}
}

func TestBucketBarsOrderAndLabels(t *testing.T) {
	bars := BucketBars(BucketSummary{})
	wantKeys := []string{"current", "days_31_60", "days_61_90", "days_91_120", "days_over_120"}
	wantLabels := []string{"Current", "31-60 Days", "61-90 Days", "91-120 Days", "120+ Days"}
	for i, bar := range bars {
		if bar.Key != wantKeys[i] {
			t.Fatalf("bar %d: key %s, want %s", i, bar.Key, wantKeys[i])
		}
		if bar.Label != wantLabels[i] {
			t.Fatalf("bar %d: label %s, want %s", i, bar.Label, wantLabels[i])
		}
	}
}

func TestWorstBucketTieKeepsEarliest(t *testing.T) {
	worst := WorstBucket(BucketSummary{
		Current:     500,
		Days31To60:  500,
		DaysOver120: 100,
	})
	if worst.Key != BucketCurrent {
		t.Fatalf("tie must keep earliest bucket, got %s", worst.Key)
	}
	if worst.Amount != 500 {
		t.Fatalf("worst amount %.2f, want 500", worst.Amount)
	}

	worst = WorstBucket(BucketSummary{
		Current:     500,
		Days31To60:  500.01,
		DaysOver120: 100,
	})
	if worst.Key != BucketDays31To60 {
		t.Fatalf("strictly greater bucket must win, got %s", worst.Key)
	}
}

func TestWorstBucketAllZero(t *testing.T) {
	worst := WorstBucket(BucketSummary{})
	if worst.Key != BucketCurrent {
		t.Fatalf("all-zero summary must fall back to the first bucket, got %s", worst.Key)
	}
}
