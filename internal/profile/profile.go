// Package profile holds the run configurations of the wind statistics batch. Bucket
// boundaries, sector resolutions and input layouts are data here, shared by one set
// of domain routines.
package profile

import (
	"fmt"
	"slices"
	"sort"

	"github.com/couchcryptid/wind-stats-etl/internal/domain"
)

// Dataset is one raw input file and the rules for cleaning it.
type Dataset struct {
	Name      string // logical name, e.g. "CityGust2"
	File      string
	Delimiter rune
	Clean     domain.CleanConfig
}

// Station lists the datasets making up one station's mean and extreme series.
// Several files of a series are concatenated in order.
type Station struct {
	Kind    domain.StationKind
	Mean    []Dataset
	Extreme []Dataset
}

// Rose is one direction resolution to cross-tabulate, named "coarse" or "fine".
type Rose struct {
	Name   string
	Scheme domain.DirectionScheme
}

// Profile is a complete run configuration.
type Profile struct {
	Name        string
	Description string
	Stations    []Station

	Speed      domain.SpeedScheme
	SpeedField domain.Field
	Roses      []Rose

	Monthly       bool
	Compare       bool
	Distributions bool

	// ExtremeField is averaged for the comparison table; ExtremeColumn is its header
	// and ExtremeTag names extreme-series outputs ("gust" or "max").
	ExtremeField  domain.Field
	ExtremeColumn string
	ExtremeTag    string
	CompareName   string
}

// Validate re-checks the speed and direction schemes.
func (p Profile) Validate() error {
	if _, err := domain.NewSpeedScheme(p.Speed.Boundaries, p.Speed.Labels, p.Speed.Unit); err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}
	for _, r := range p.Roses {
		if _, err := domain.NewDirectionScheme(r.Scheme.Sectors, r.Scheme.Labels); err != nil {
			return fmt.Errorf("profile %s rose %s: %w", p.Name, r.Name, err)
		}
	}
	if len(p.Stations) == 0 {
		return &domain.ConfigError{Msg: fmt.Sprintf("profile %s has no stations", p.Name)}
	}
	return nil
}

// TableName builds the output name wind_velocity_<what>_<station>.
func TableName(what string, kind domain.StationKind) string {
	return fmt.Sprintf("wind_velocity_%s_%s", what, kind)
}

var registry = map[string]func() (Profile, error){
	"dwd":            DWD,
	"general":        General,
	"comp_meteoblue": CompMeteoblue,
}

// Names lists the registered profiles in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup builds and validates the named profile.
func Lookup(name string) (Profile, error) {
	build, ok := registry[name]
	if !ok {
		return Profile{}, &domain.ConfigError{Msg: fmt.Sprintf("unknown profile %q (want one of %v)", name, Names())}
	}
	p, err := build()
	if err != nil {
		return Profile{}, err
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func roses(names ...string) []Rose {
	var out []Rose
	if slices.Contains(names, "coarse") {
		out = append(out, Rose{Name: "coarse", Scheme: domain.Compass8()})
	}
	if slices.Contains(names, "fine") {
		out = append(out, Rose{Name: "fine", Scheme: domain.Degrees36()})
	}
	return out
}
