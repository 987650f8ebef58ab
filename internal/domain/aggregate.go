package domain

import "time"

// MonthLabels are the row labels of every monthly table.
var MonthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// CountTable is a {group x bucket} matrix. Groups are months or direction sectors and
// are fixed up front, so every group has a row even when its counts are zero.
type CountTable struct {
	Groups  []string
	Buckets []string
	Cells   [][]float64
}

func newCountTable(groups, buckets []string) CountTable {
	cells := make([][]float64, len(groups))
	for i := range cells {
		cells[i] = make([]float64, len(buckets))
	}
	return CountTable{
		Groups:  append([]string(nil), groups...),
		Buckets: append([]string(nil), buckets...),
		Cells:   cells,
	}
}

// CountByMonth counts bucketed observations per calendar month.
func CountByMonth(binned []Binned, speed SpeedScheme) CountTable {
	t := newCountTable(MonthLabels, speed.Labels)
	for _, b := range binned {
		if b.Bucket < 0 {
			continue
		}
		t.Cells[monthIndex(b.Timestamp.Month())][b.Bucket]++
	}
	return t
}

// CountBySector counts observations per direction sector and speed bucket. An
// observation is counted only when it has both a bucket and a sector.
func CountBySector(binned []Binned, speed SpeedScheme, dir DirectionScheme) CountTable {
	t := newCountTable(dir.Labels, speed.Labels)
	for _, b := range binned {
		if b.Bucket < 0 || b.Sector < 0 {
			continue
		}
		t.Cells[b.Sector][b.Bucket]++
	}
	return t
}

// RowSum returns the sum of row i.
func (t CountTable) RowSum(i int) float64 {
	var sum float64
	for _, v := range t.Cells[i] {
		sum += v
	}
	return sum
}

// Sum returns the sum of all cells. Missing cells propagate as NaN.
func (t CountTable) Sum() float64 {
	var sum float64
	for i := range t.Cells {
		sum += t.RowSum(i)
	}
	return sum
}

func monthIndex(m time.Month) int { return int(m) - 1 }
