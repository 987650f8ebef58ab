package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SpeedScheme is an ordered list of speed boundaries and the labels of the
// len(Boundaries)+1 buckets they induce: below the first, between each pair, above
// the last.
type SpeedScheme struct {
	Boundaries []float64
	Labels     []string
	Unit       string
}

// NewSpeedScheme validates boundaries and labels.
func NewSpeedScheme(boundaries []float64, labels []string, unit string) (SpeedScheme, error) {
	if len(boundaries) == 0 {
		return SpeedScheme{}, &ConfigError{Msg: "speed scheme needs at least one boundary"}
	}
	for i := 1; i < len(boundaries); i++ {
		if !(boundaries[i] > boundaries[i-1]) {
			return SpeedScheme{}, &ConfigError{Msg: fmt.Sprintf("speed boundaries not strictly increasing at index %d (%g <= %g)", i, boundaries[i], boundaries[i-1])}
		}
	}
	if len(labels) != len(boundaries)+1 {
		return SpeedScheme{}, &ConfigError{Msg: fmt.Sprintf("speed scheme has %d boundaries but %d labels, want %d", len(boundaries), len(labels), len(boundaries)+1)}
	}
	return SpeedScheme{
		Boundaries: append([]float64(nil), boundaries...),
		Labels:     append([]string(nil), labels...),
		Unit:       unit,
	}, nil
}

// Len returns the number of buckets.
func (s SpeedScheme) Len() int { return len(s.Labels) }

// Bucket returns the bucket index of v. Intervals are open: a value exactly equal to a
// boundary, or NaN, matches no bucket and ok is false.
func (s SpeedScheme) Bucket(v float64) (int, bool) {
	b := s.Boundaries
	last := len(b) - 1
	switch {
	case v < b[0]:
		return 0, true
	case v > b[last]:
		return last + 1, true
	}
	for i := 1; i <= last; i++ {
		if b[i-1] < v && v < b[i] {
			return i, true
		}
	}
	return -1, false
}

// RangeLabels builds "<a", "a-b", ..., "z>" labels from display values. Display values
// may differ from the boundaries themselves, e.g. km/h labels over m/s thresholds.
func RangeLabels(display []float64) []string {
	if len(display) == 0 {
		return nil
	}
	labels := make([]string, 0, len(display)+1)
	labels = append(labels, "<"+decimal(display[0]))
	for i := 0; i < len(display)-1; i++ {
		labels = append(labels, decimal(display[i])+"-"+decimal(display[i+1]))
	}
	return append(labels, decimal(display[len(display)-1])+">")
}

// decimal formats v with at least one fractional digit: 5 -> "5.0", 2.5 -> "2.5".
func decimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// DirectionScheme divides the compass into Sectors equal sectors. Sector i is centered
// on 360/n*i degrees with half-width 180/n; sector 0 straddles north.
type DirectionScheme struct {
	Sectors int
	Labels  []string
}

// NewDirectionScheme validates the sector count and labels.
func NewDirectionScheme(sectors int, labels []string) (DirectionScheme, error) {
	if sectors <= 0 || 360%sectors != 0 {
		return DirectionScheme{}, &ConfigError{Msg: fmt.Sprintf("sector count %d does not evenly divide 360", sectors)}
	}
	if len(labels) != sectors {
		return DirectionScheme{}, &ConfigError{Msg: fmt.Sprintf("direction scheme has %d sectors but %d labels", sectors, len(labels))}
	}
	return DirectionScheme{Sectors: sectors, Labels: append([]string(nil), labels...)}, nil
}

// Compass8 is the 45° scheme labelled N, NE, E, SE, S, SW, W, NW.
func Compass8() DirectionScheme {
	return DirectionScheme{Sectors: 8, Labels: []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}}
}

// Degrees36 is the 10° scheme labelled by sector center: 0, 10, ..., 350.
func Degrees36() DirectionScheme {
	labels := make([]string, 36)
	for i := range labels {
		labels[i] = strconv.Itoa(i * 10)
	}
	return DirectionScheme{Sectors: 36, Labels: labels}
}

// Slice is the sector width in degrees.
func (d DirectionScheme) Slice() float64 { return 360.0 / float64(d.Sectors) }

// HalfWidth is half the sector width in degrees.
func (d DirectionScheme) HalfWidth() float64 { return 180.0 / float64(d.Sectors) }

// Sector returns the sector index of a direction in degrees. Sector 0 matches
// d > 360-h or d < h; sector i matches slice*i-h < d < slice*i+h. Directions exactly on
// a sector edge, and NaN, match nothing.
func (d DirectionScheme) Sector(deg float64) (int, bool) {
	h := d.HalfWidth()
	slice := d.Slice()
	if deg > 360-h || deg < h {
		return 0, true
	}
	for i := 1; i < d.Sectors; i++ {
		center := slice * float64(i)
		if center-h < deg && deg < center+h {
			return i, true
		}
	}
	return -1, false
}

// Binned is an observation annotated with its bucket and sector (-1 when unassigned).
type Binned struct {
	Observation
	Bucket int
	Sector int
}

// Bucketize assigns each observation a speed bucket from speedField and, when dir is
// non-nil, a direction sector from FieldDirection.
func Bucketize(obs []Observation, speedField Field, speed SpeedScheme, dir *DirectionScheme) []Binned {
	out := make([]Binned, len(obs))
	for i, o := range obs {
		b := Binned{Observation: o, Bucket: -1, Sector: -1}
		if idx, ok := speed.Bucket(o.Value(speedField)); ok {
			b.Bucket = idx
		}
		if dir != nil {
			if idx, ok := dir.Sector(o.Value(FieldDirection)); ok {
				b.Sector = idx
			}
		}
		out[i] = b
	}
	return out
}
