package domain

import "math"

// TidyRow is one (group, bucket) cell of a CountTable in long form.
type TidyRow struct {
	Group     string
	Bucket    string
	Frequency float64
}

// Melt flattens a wide table into long rows. Buckets vary slowest: all groups of the
// first bucket come first, so city and airport tables line up row for row.
func Melt(t CountTable) []TidyRow {
	rows := make([]TidyRow, 0, len(t.Groups)*len(t.Buckets))
	for j, bucket := range t.Buckets {
		for i, group := range t.Groups {
			rows = append(rows, TidyRow{Group: group, Bucket: bucket, Frequency: t.Cells[i][j]})
		}
	}
	return rows
}

// ComparisonRow holds one month's average mean speed and average extreme speed.
type ComparisonRow struct {
	Month   string
	Mean    float64
	Extreme float64
}

// CompareMeanVsExtreme averages meanField of the mean series and extremeField of the
// extreme series per calendar month. Missing values are skipped; a month with no
// values at all is missing.
func CompareMeanVsExtreme(mean []Observation, meanField Field, extreme []Observation, extremeField Field) []ComparisonRow {
	means := monthlyAverages(mean, meanField)
	extremes := monthlyAverages(extreme, extremeField)
	rows := make([]ComparisonRow, len(MonthLabels))
	for i, label := range MonthLabels {
		rows[i] = ComparisonRow{Month: label, Mean: means[i], Extreme: extremes[i]}
	}
	return rows
}

func monthlyAverages(obs []Observation, field Field) [12]float64 {
	var sums, counts [12]float64
	for _, o := range obs {
		v := o.Value(field)
		if IsMissing(v) {
			continue
		}
		m := monthIndex(o.Timestamp.Month())
		sums[m] += v
		counts[m]++
	}
	var avg [12]float64
	for i := range avg {
		if counts[i] == 0 {
			avg[i] = math.NaN()
			continue
		}
		avg[i] = sums[i] / counts[i]
	}
	return avg
}
