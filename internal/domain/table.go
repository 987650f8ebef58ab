package domain

import (
	"strconv"
	"time"
)

// DistributionTimeLayout is the timestamp format of pass-through distribution tables.
const DistributionTimeLayout = "2006-01-02 15:04:05"

// Table is a named output frame with an explicit index column.
type Table struct {
	Name      string
	IndexName string
	Columns   []string
	Rows      []Row
}

// Row is one output line: the index value followed by the cells.
type Row struct {
	Index string
	Cells []string
}

// FormatValue renders a number for output. Missing values become empty cells.
func FormatValue(v float64) string {
	if IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MonthlyTable renders a normalized monthly CountTable.
func MonthlyTable(name string, t CountTable) Table {
	out := Table{Name: name, IndexName: "Months", Columns: append([]string(nil), t.Buckets...)}
	for i, group := range t.Groups {
		out.Rows = append(out.Rows, Row{Index: group, Cells: formatRow(t.Cells[i])})
	}
	return out
}

// RoseTable renders melted sector rows; unit names the speed column, e.g. "m/s".
func RoseTable(name, unit string, rows []TidyRow) Table {
	out := Table{
		Name:      name,
		IndexName: "RangeTimesDirCount",
		Columns:   []string{"Direction", "SpeedRange [" + unit + "]", "Frequency"},
		Rows:      make([]Row, len(rows)),
	}
	for i, r := range rows {
		out.Rows[i] = Row{Index: strconv.Itoa(i), Cells: []string{r.Group, r.Bucket, FormatValue(r.Frequency)}}
	}
	return out
}

// ComparisonTable renders monthly mean-vs-extreme rows; extremeName is the header of
// the extreme column ("Gust" or "Max").
func ComparisonTable(name, extremeName string, rows []ComparisonRow) Table {
	out := Table{Name: name, IndexName: "Months", Columns: []string{"Mean", extremeName}}
	for _, r := range rows {
		out.Rows = append(out.Rows, Row{Index: r.Month, Cells: []string{FormatValue(r.Mean), FormatValue(r.Extreme)}})
	}
	return out
}

// DistributionTable echoes a cleaned series. Columns are the canonical fields present
// in the series, in Fields order.
func DistributionTable(name string, obs []Observation) Table {
	present := make(map[Field]bool)
	for _, o := range obs {
		for f := range o.Values {
			present[f] = true
		}
	}
	var fields []Field
	for _, f := range Fields {
		if present[f] {
			fields = append(fields, f)
		}
	}

	out := Table{Name: name, IndexName: "Date", Rows: make([]Row, len(obs))}
	for _, f := range fields {
		out.Columns = append(out.Columns, string(f))
	}
	for i, o := range obs {
		cells := make([]string, len(fields))
		for j, f := range fields {
			cells[j] = FormatValue(o.Value(f))
		}
		out.Rows[i] = Row{Index: o.Timestamp.Format(DistributionTimeLayout), Cells: cells}
	}
	return out
}

func formatRow(values []float64) []string {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = FormatValue(v)
	}
	return cells
}

// Manifest summarizes one batch run.
type Manifest struct {
	RunID       string    `json:"run_id"`
	Profile     string    `json:"profile"`
	GeneratedAt time.Time `json:"generated_at"`
	Tables      []string  `json:"tables"`
	EmptyGroups []string  `json:"empty_groups,omitempty"`
}
