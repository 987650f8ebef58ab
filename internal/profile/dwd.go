package profile

import (
	"time"

	"github.com/couchcryptid/wind-stats-etl/internal/domain"
)

// DWDFiles maps logical dataset names to the raw DWD file names in the input directory.
var DWDFiles = map[string]string{
	"CityMean":  "produkt_ff_stunde_city.txt",
	"CityGust1": "produkt_zehn_min_fx_city_1.txt",
	"CityGust2": "produkt_zehn_min_fx_city_2.txt",
	"CityGust3": "produkt_zehn_min_fx_city_3.txt",
	"CityGust4": "produkt_zehn_min_fx_city_4.txt",
	"AirpMean":  "produkt_ff_stunde_airp.txt",
	"AirpGust1": "produkt_zehn_min_fx_airp_1.txt",
	"AirpGust2": "produkt_zehn_min_fx_airp_2.txt",
	"AirpGust3": "produkt_zehn_min_fx_airp_3.txt",
	"AirpGust4": "produkt_zehn_min_fx_airp_4.txt",
}

// CityAutomationCutoff is when the City station switched to automated readings.
var CityAutomationCutoff = time.Date(1997, time.July, 1, 0, 0, 0, 0, time.UTC)

// DWD processes the raw DWD climate data center files: hourly mean and 10-minute
// extreme wind for both stations, 5 speed buckets in m/s.
func DWD() (Profile, error) {
	speed, err := domain.NewSpeedScheme(
		[]float64{1, 3, 6, 10},
		[]string{"<1", "1-3", "3-6", "6-10", ">10"},
		"m/s",
	)
	if err != nil {
		return Profile{}, err
	}

	return Profile{
		Name:        "dwd",
		Description: "raw DWD station files, 5 m/s buckets, gust comparison",
		Stations: []Station{
			dwdStation(domain.Airport, "Airp", time.Time{}),
			dwdStation(domain.City, "City", CityAutomationCutoff),
		},
		Speed:         speed,
		SpeedField:    domain.FieldSpeed,
		Roses:         roses("coarse", "fine"),
		Monthly:       true,
		Compare:       true,
		Distributions: true,
		ExtremeField:  domain.FieldMaxSpeed,
		ExtremeColumn: "Gust",
		ExtremeTag:    "gust",
		CompareName:   "comp_gust_vs_mean",
	}, nil
}

func dwdStation(kind domain.StationKind, prefix string, meanCutoff time.Time) Station {
	mean := Dataset{
		Name:      prefix + "Mean",
		File:      DWDFiles[prefix+"Mean"],
		Delimiter: ';',
		Clean: domain.CleanConfig{
			Kind:            kind,
			Series:          domain.Mean,
			TimestampColumn: "MESS_DATUM",
			TimestampLayout: "2006010215",
			Columns: map[string]domain.Field{
				"STATIONS_ID": domain.FieldStation,
				"QN_3":        domain.FieldQuality,
				"F":           domain.FieldSpeed,
				"D":           domain.FieldDirection,
			},
			Required: []domain.Field{domain.FieldSpeed, domain.FieldDirection},
			Validity: []domain.Field{domain.FieldSpeed, domain.FieldDirection},
			Sentinel: domain.DefaultSentinel,
			Cutoff:   meanCutoff,
		},
	}

	st := Station{Kind: kind, Mean: []Dataset{mean}}
	for _, n := range []string{"1", "2", "3", "4"} {
		name := prefix + "Gust" + n
		st.Extreme = append(st.Extreme, Dataset{
			Name:      name,
			File:      DWDFiles[name],
			Delimiter: ';',
			Clean: domain.CleanConfig{
				Kind:            kind,
				Series:          domain.Gust,
				TimestampColumn: "MESS_DATUM",
				TimestampLayout: "200601021504",
				Columns: map[string]domain.Field{
					"STATIONS_ID": domain.FieldStation,
					"QN":          domain.FieldQuality,
					"FX_10":       domain.FieldMaxSpeed,
					"DX_10":       domain.FieldMaxDirection,
					"FMX_10":      domain.FieldMaxMean,
					"FNX_10":      domain.FieldMinSpeed,
				},
				Required: []domain.Field{domain.FieldMaxSpeed},
				Validity: []domain.Field{domain.FieldMaxSpeed},
				Sentinel: domain.DefaultSentinel,
			},
		})
	}
	return st
}
