package pipeline

import (
	"github.com/couchcryptid/wind-stats-etl/internal/domain"
	"github.com/couchcryptid/wind-stats-etl/internal/profile"
)

// BuildTables derives every output table of one station from its cleaned series. It is
// pure: the same series always produce the same tables in the same order.
func BuildTables(prof profile.Profile, kind domain.StationKind, mean, extreme []domain.Observation) ([]domain.Table, []domain.EmptyGroup) {
	var (
		tables []domain.Table
		empty  []domain.EmptyGroup
	)

	if prof.Monthly {
		name := profile.TableName("mean_monthly", kind)
		counts := domain.CountByMonth(domain.Bucketize(mean, prof.SpeedField, prof.Speed, nil), prof.Speed)
		normalized, missing := domain.NormalizeMonthly(counts, name)
		empty = append(empty, missing...)
		tables = append(tables, domain.MonthlyTable(name, normalized))
	}

	for _, rose := range prof.Roses {
		scheme := rose.Scheme
		name := profile.TableName("mean_windrose_"+rose.Name, kind)
		counts := domain.CountBySector(domain.Bucketize(mean, prof.SpeedField, prof.Speed, &scheme), prof.Speed, scheme)
		tables = append(tables, domain.RoseTable(name, prof.Speed.Unit, domain.Melt(counts)))
	}

	hasExtreme := prof.ExtremeTag != "" && len(extreme) > 0

	if prof.Compare && hasExtreme {
		name := profile.TableName(prof.CompareName, kind)
		rows := domain.CompareMeanVsExtreme(mean, prof.SpeedField, extreme, prof.ExtremeField)
		for _, r := range rows {
			if domain.IsMissing(r.Mean) || domain.IsMissing(r.Extreme) {
				empty = append(empty, domain.EmptyGroup{Table: name, Group: r.Month})
			}
		}
		tables = append(tables, domain.ComparisonTable(name, prof.ExtremeColumn, rows))
	}

	if prof.Distributions {
		tables = append(tables, domain.DistributionTable(profile.TableName("distrib_mean", kind), mean))
		if hasExtreme {
			tables = append(tables, domain.DistributionTable(profile.TableName("distrib_"+prof.ExtremeTag, kind), extreme))
		}
	}

	return tables, empty
}
