package domain

import (
	"math"
	"time"
)

// StationKind identifies which of the two stations a series belongs to.
type StationKind string

const (
	City    StationKind = "city"
	Airport StationKind = "airp"
)

// Series distinguishes sustained mean wind from short-interval peaks.
type Series string

const (
	Mean Series = "mean"
	Gust Series = "gust"
)

// Field is a canonical numeric observation attribute.
type Field string

const (
	FieldStation      Field = "Station"
	FieldQuality      Field = "Quality"
	FieldSpeed        Field = "Speed"
	FieldDirection    Field = "Direction"
	FieldMaxSpeed     Field = "MaxSpeed"
	FieldMaxDirection Field = "MaxDirection"
	FieldMaxMean      Field = "MaxMean"
	FieldMinSpeed     Field = "MinSpeed"
)

// Fields lists every canonical field in output column order.
var Fields = []Field{
	FieldStation,
	FieldQuality,
	FieldSpeed,
	FieldDirection,
	FieldMaxSpeed,
	FieldMaxDirection,
	FieldMaxMean,
	FieldMinSpeed,
}

// Observation is one cleaned measurement record. Numeric fields hold NaN when missing.
type Observation struct {
	Timestamp time.Time
	Kind      StationKind
	Series    Series
	Values    map[Field]float64
}

// Value returns the field's value, or NaN when the field is absent or missing.
func (o Observation) Value(f Field) float64 {
	v, ok := o.Values[f]
	if !ok {
		return math.NaN()
	}
	return v
}

// Missing is the in-memory missing-value marker.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v is the missing-value marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// RawTable is an untyped delimited table as read from disk.
type RawTable struct {
	Source string
	Header []string
	Rows   [][]string
}
