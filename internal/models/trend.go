package models

// Trend is the qualitative summary of the user's financial health.
type Trend string

var trendOrder = []Trend{
	TrendExceptional,
	TrendExcellent,
	TrendImproving,
	TrendStable,
	TrendModerate,
	TrendConcerning,
	TrendRisky,
	TrendCritical,
	TrendUnstable,
}

// Trends returns all tiers ordered from best to worst.
func Trends() []Trend {
	out := make([]Trend, len(trendOrder))
	copy(out, trendOrder)
	return out
}

// Rank returns 0 for the best tier and 8 for the worst, -1 if unknown.
func (t Trend) Rank() int {
	for i, known := range trendOrder {
		if t == known {
			return i
		}
	}
	return -1
}

func (t Trend) String() string {
	return string(t)
}
