// Package domain models station wind observations and the statistics derived from them.
//
// # Data Sources
//
// Two raw vintages feed the pipeline. The DWD (Deutscher Wetterdienst) climate data
// center publishes semicolon-separated station files: hourly mean wind
// ("produkt_ff_stunde_*") and 10-minute extremes ("produkt_zehn_min_fx_*"). A second,
// pre-filtered vintage is comma-separated and already uses descriptive column names so
// that it can be compared against meteoblue climate diagrams.
//
// # DWD Data Conventions
//
// Column names are padded with spaces ("   F", "   D") and every row ends with an
// "eor" (end of record) marker column. Timestamps are compact:
//
//	hourly:    YYYYMMDDHH    e.g. "1997070113"
//	10-minute: YYYYMMDDHHMM  e.g. "199707011350"
//
// Column mapping applied by the cleaner:
//
//	MESS_DATUM  -> Date           STATIONS_ID -> Station
//	QN, QN_3    -> Quality        F           -> Speed (m/s)
//	D           -> Direction (°)  FX_10       -> MaxSpeed (m/s)
//	DX_10       -> MaxDirection   FMX_10      -> MaxMean
//	FNX_10      -> MinSpeed
//
// Unknown values:
//
//	-999 is the DWD sentinel for "not available". In the fields that decide whether a
//	row is a valid measurement the row is dropped; everywhere else the sentinel becomes
//	a missing value (NaN) and the row is kept.
//
// The City station switched from manual to automated readings in mid-1997; the DWD
// profile drops City mean records before 1997-07-01.
//
// # Binning
//
// Speed buckets and direction sectors use open intervals: a value exactly on a
// boundary belongs to no bucket. Sector 0 wraps the
// 0°/360° seam. See [SpeedScheme.Bucket] and [DirectionScheme.Sector].
//
// # Missing Values
//
// NaN is the single in-memory marker for a missing value. Output tables render it as
// an empty cell, never as zero.
package domain
