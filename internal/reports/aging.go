package reports

// Aging bucket keys in fixed display order. Worst-bucket ties resolve to the
// first key in this order.
const (
	BucketCurrent     = "current"
	BucketDays31To60  = "days_31_60"
	BucketDays61To90  = "days_61_90"
	BucketDays91To120 = "days_91_120"
	BucketDaysOver120 = "days_over_120"
)

// BucketOrder is the canonical left-to-right bucket ordering.
var BucketOrder = []string{
	BucketCurrent,
	BucketDays31To60,
	BucketDays61To90,
	BucketDays91To120,
	BucketDaysOver120,
}

var bucketLabels = map[string]string{
	BucketCurrent:     "Current",
	BucketDays31To60:  "31-60 Days",
	BucketDays61To90:  "61-90 Days",
	BucketDays91To120: "91-120 Days",
	BucketDaysOver120: "120+ Days",
}

// minRenderWidthPercent keeps a zero-value bucket painting a visible sliver.
const minRenderWidthPercent = 0.5

// BucketValue returns the named bucket's amount; unknown keys read as zero.
func (s BucketSummary) BucketValue(key string) float64 {
	switch key {
	case BucketCurrent:
		return s.Current
	case BucketDays31To60:
		return s.Days31To60
	case BucketDays61To90:
		return s.Days61To90
	case BucketDays91To120:
		return s.Days91To120
	case BucketDaysOver120:
		return s.DaysOver120
	}
	return 0
}

// BucketBar is the presentation of one aging bucket in the summary chart.
type BucketBar struct {
	Key                 string  `json:"key"`
	Label               string  `json:"label"`
	Amount              float64 `json:"amount"`
	BarWidthPercent     float64 `json:"bar_width_percent"`
	RenderWidthPercent  float64 `json:"render_width_percent"`
	ShareOfTotalPercent float64 `json:"share_of_total_percent"`
}

// BucketBars derives the chart bars for a bucket summary. Bar widths scale
// against the largest bucket with a denominator floor of 1, so an all-zero
// summary yields 0% widths rather than a division by zero. Shares scale
// against total outstanding, reporting 0% when the total is zero.
func BucketBars(s BucketSummary) []BucketBar {
	maxValue := 0.0
	for _, key := range BucketOrder {
		if v := s.BucketValue(key); v > maxValue {
			maxValue = v
		}
	}
	denom := maxValue
	if denom < 1 {
		denom = 1
	}

	bars := make([]BucketBar, 0, len(BucketOrder))
	for _, key := range BucketOrder {
		v := s.BucketValue(key)
		bar := BucketBar{
			Key:             key,
			Label:           bucketLabels[key],
			Amount:          v,
			BarWidthPercent: 100 * v / denom,
		}
		bar.RenderWidthPercent = bar.BarWidthPercent
		if bar.RenderWidthPercent < minRenderWidthPercent {
			bar.RenderWidthPercent = minRenderWidthPercent
		}
		if s.TotalOutstanding > 0 {
			bar.ShareOfTotalPercent = 100 * v / s.TotalOutstanding
		}
		bars = append(bars, bar)
	}
	return bars
}

// WorstBucket returns the bucket with the strictly greatest value. Ties keep
// the earliest bucket in BucketOrder.
func WorstBucket(s BucketSummary) BucketBar {
	worstKey := BucketOrder[0]
	worstValue := s.BucketValue(worstKey)
	for _, key := range BucketOrder[1:] {
		if v := s.BucketValue(key); v > worstValue {
			worstKey = key
			worstValue = v
		}
	}
	return BucketBar{Key: worstKey, Label: bucketLabels[worstKey], Amount: worstValue}
}
