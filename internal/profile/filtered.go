package profile

import "github.com/couchcryptid/wind-stats-etl/internal/domain"

// filteredLayout is the timestamp format of the pre-filtered CSV vintage.
const filteredLayout = "2006-01-02 15:04:05"

// General processes the pre-filtered 10-minute files of both stations with 8 buckets
// of 2.5 m/s.
func General() (Profile, error) {
	boundaries := []float64{2.5, 5.0, 7.5, 10.0, 12.5, 15.0, 17.5}
	speed, err := domain.NewSpeedScheme(boundaries, domain.RangeLabels(boundaries), "m/s")
	if err != nil {
		return Profile{}, err
	}

	return Profile{
		Name:        "general",
		Description: "pre-filtered 10-minute files, 2.5 m/s buckets, max comparison",
		Stations: []Station{
			filteredStation(domain.City, true),
			filteredStation(domain.Airport, true),
		},
		Speed:         speed,
		SpeedField:    domain.FieldSpeed,
		Roses:         roses("coarse", "fine"),
		Monthly:       true,
		Compare:       true,
		Distributions: true,
		ExtremeField:  domain.FieldSpeed,
		ExtremeColumn: "Max",
		ExtremeTag:    "max",
		CompareName:   "comp_mean_vs_max",
	}, nil
}

// CompMeteoblue matches meteoblue's km/h classes for the City mean series. Thresholds
// are km/h divided by 3.6; labels keep the km/h values.
func CompMeteoblue() (Profile, error) {
	speed, err := domain.NewSpeedScheme(
		[]float64{0.28, 1.39, 3.33, 5.28, 7.78, 10.56, 13.89, 16.95},
		domain.RangeLabels([]float64{1, 5, 12, 19, 28, 38, 50, 61}),
		"km/h",
	)
	if err != nil {
		return Profile{}, err
	}

	return Profile{
		Name:        "comp_meteoblue",
		Description: "City mean only, meteoblue km/h classes, fine wind rose",
		Stations:    []Station{filteredStation(domain.City, false)},
		Speed:       speed,
		SpeedField:  domain.FieldSpeed,
		Roses:       roses("fine"),
		Monthly:     true,
	}, nil
}

func filteredStation(kind domain.StationKind, withExtreme bool) Station {
	st := Station{
		Kind: kind,
		Mean: []Dataset{filteredDataset(kind, domain.Mean, "wind_10min_mean_"+string(kind)+".csv")},
	}
	if withExtreme {
		st.Extreme = []Dataset{filteredDataset(kind, domain.Gust, "wind_10min_max_"+string(kind)+".csv")}
	}
	return st
}

func filteredDataset(kind domain.StationKind, series domain.Series, file string) Dataset {
	return Dataset{
		Name:      file,
		File:      file,
		Delimiter: ',',
		Clean: domain.CleanConfig{
			Kind:            kind,
			Series:          series,
			TimestampColumn: "Date",
			TimestampLayout: filteredLayout,
			Columns: map[string]domain.Field{
				"WindVelocity":  domain.FieldSpeed,
				"WindDirection": domain.FieldDirection,
			},
			Required: []domain.Field{domain.FieldSpeed, domain.FieldDirection},
			Validity: []domain.Field{domain.FieldSpeed}, // negative or missing speeds are not measurements
			Sentinel: domain.DefaultSentinel,
		},
	}
}
