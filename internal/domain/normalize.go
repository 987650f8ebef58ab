package domain

import "time"

// CanonicalDays returns the day count a month's row is rescaled to. February is always
// 28; leap years are not special-cased.
func CanonicalDays(m time.Month) float64 {
	switch m {
	case time.January, time.March, time.May, time.July, time.August, time.October, time.December:
		return 31
	case time.February:
		return 28
	default:
		return 30
	}
}

// NormalizeMonthly rescales each month's row so it sums to CanonicalDays, turning raw
// counts into days-equivalent frequencies. A month without observations cannot be
// scaled; its row becomes missing values and the month is reported as an EmptyGroup.
// The input table is left untouched.
func NormalizeMonthly(t CountTable, table string) (CountTable, []EmptyGroup) {
	out := newCountTable(t.Groups, t.Buckets)
	var empty []EmptyGroup
	for i := range t.Cells {
		sum := t.RowSum(i)
		days := CanonicalDays(time.Month(i + 1))
		if sum == 0 {
			empty = append(empty, EmptyGroup{Table: table, Group: t.Groups[i]})
		}
		for j, v := range t.Cells[i] {
			if sum == 0 {
				out.Cells[i][j] = Missing()
				continue
			}
			out.Cells[i][j] = v / sum * days
		}
	}
	return out, empty
}
