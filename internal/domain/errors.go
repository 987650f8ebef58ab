package domain

import "fmt"

// SchemaError reports a required column missing from a raw table.
type SchemaError struct {
	Source string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: %s: missing column %q", e.Source, e.Column)
}

// ParseError reports a timestamp or numeric cell that could not be parsed.
type ParseError struct {
	Source string
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse: %s row %d column %q value %q: %v", e.Source, e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigError reports an invalid bucket or sector scheme.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "config: " + e.Msg }

// EmptyGroup marks a month or sector without observations. It is never fatal: the
// affected cells are emitted as missing values.
type EmptyGroup struct {
	Table string
	Group string
}

func (e EmptyGroup) Error() string {
	return fmt.Sprintf("empty group %q in table %s", e.Group, e.Table)
}
