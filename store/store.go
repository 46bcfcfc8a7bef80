// Package store persists enriched contest datasets to SQLite. One run saves
// the full scored row set plus a metadata record (drop counts, fingerprint,
// contest window) so downstream dashboards can load a scope without rerunning
// the pipeline.
package store

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	jsoniter "github.com/json-iterator/go"
	_ "modernc.org/sqlite"

	"contestlog/contest"
	"contestlog/qso"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store wraps the SQLite database holding processed datasets.
type Store struct {
	db *sql.DB
}

// RunMeta is the per-run metadata blob stored alongside the rows.
type RunMeta struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Rows        int       `json:"rows"`
	DroppedRows int       `json:"dropped_rows"`
	Suspects    int       `json:"suspects"`
	Fingerprint uint64    `json:"fingerprint"`
	SavedAt     time.Time `json:"saved_at"`
}

// Open opens (or creates) the dataset store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if _, err := db.Exec(`pragma journal_mode=WAL; pragma synchronous=NORMAL`); err != nil {
		return nil, fmt.Errorf("store: pragmas: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

func ensureSchema(db *sql.DB) error {
	schema := `
	create table if not exists contest_log (
		id integer primary key autoincrement,
		callsign text not null,
		contest text not null,
		year integer not null,
		mode text not null,
		ts integer not null,
		frequency real,
		band integer,
		band_id integer,
		call text,
		rst_sent text,
		rst_rcvd text,
		my_exchange text,
		exchange text,
		country text,
		continent text,
		cqz integer,
		ituz integer,
		adif integer,
		latitude real,
		longitude real,
		locator text,
		my_country text,
		my_continent text,
		distance real,
		distance_lp real,
		heading real,
		heading_lp real,
		sunrise integer,
		sunset integer,
		hour real,
		prefix text,
		is_valid integer,
		qso_points integer,
		is_dxcc integer,
		is_zone integer,
		is_mult integer,
		n_mult integer,
		cum_qso_points integer,
		cum_mult integer,
		cum_valid_qsos integer,
		cum_contest_score integer,
		diff_contest_score integer,
		cum_points_per_qso real,
		mult_worth_points real,
		mult_worth_qsos real,
		minutes_from_previous_call real,
		band_from_previous_call integer,
		band_transition text
	);
	create index if not exists idx_contest_log_scope
		on contest_log(callsign, contest, year, mode, ts);
	create table if not exists runs (
		callsign text not null,
		contest text not null,
		year integer not null,
		mode text not null,
		meta text not null,
		primary key (callsign, contest, year, mode)
	);`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("store: ensure schema: %w", err)
	}
	return nil
}

// Save replaces the stored dataset for the result's scope in one transaction.
func (s *Store) Save(result *contest.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	scope := result.Scope
	if _, err := tx.Exec(
		`delete from contest_log where callsign=? and contest=? and year=? and mode=?`,
		scope.Callsign, scope.Contest, scope.Year, scope.Mode); err != nil {
		return fmt.Errorf("store: clear scope: %w", err)
	}

	stmt, err := tx.Prepare(`insert into contest_log(
		callsign, contest, year, mode, ts, frequency, band, band_id, call,
		rst_sent, rst_rcvd, my_exchange, exchange,
		country, continent, cqz, ituz, adif, latitude, longitude, locator,
		my_country, my_continent, distance, distance_lp, heading, heading_lp,
		sunrise, sunset, hour, prefix,
		is_valid, qso_points, is_dxcc, is_zone, is_mult, n_mult,
		cum_qso_points, cum_mult, cum_valid_qsos, cum_contest_score,
		diff_contest_score, cum_points_per_qso, mult_worth_points, mult_worth_qsos,
		minutes_from_previous_call, band_from_previous_call, band_transition
	) values (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("store: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range result.Records {
		r := &result.Records[i]
		if _, err := stmt.Exec(
			scope.Callsign, scope.Contest, scope.Year, scope.Mode,
			r.Datetime.UTC().Unix(), r.Frequency, r.Band, r.BandID, r.Call,
			r.RSTSent, r.RSTRcvd, r.MyExchange, r.Exchange,
			r.Country, r.Continent, r.CQZone, r.ITUZone, r.ADIF,
			r.Latitude, r.Longitude, r.Locator,
			r.MyCountry, r.MyContinent,
			r.Distance, r.DistanceLP, r.Heading, r.HeadingLP,
			unixOrNil(r.Sunrise), unixOrNil(r.Sunset),
			r.Hour, r.Prefix,
			boolToInt(r.IsValid), r.QSOPoints, r.IsDXCC, r.IsZone, r.IsMult, r.NMult,
			r.CumQSOPoints, r.CumMult, r.CumValidQSOs, r.CumContestScore,
			r.DiffContestScore,
			floatOrNil(r.CumPointsPerQSO), floatOrNil(r.MultWorthPoints), floatOrNil(r.MultWorthQSOs),
			floatOrNil(r.MinutesFromPreviousCall), r.BandFromPreviousCall,
			r.BandTransitionFromPreviousCall,
		); err != nil {
			return fmt.Errorf("store: insert row %d: %w", i, err)
		}
	}

	meta := RunMeta{
		Start:       result.Start,
		End:         result.End,
		Rows:        len(result.Records),
		DroppedRows: result.DroppedRows,
		Suspects:    len(result.Suspects),
		Fingerprint: result.Fingerprint,
		SavedAt:     time.Now().UTC(),
	}
	blob, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("store: encode metadata: %w", err)
	}
	if _, err := tx.Exec(
		`insert into runs(callsign, contest, year, mode, meta) values(?,?,?,?,?)
		 on conflict(callsign, contest, year, mode) do update set meta=excluded.meta`,
		scope.Callsign, scope.Contest, scope.Year, scope.Mode, string(blob)); err != nil {
		return fmt.Errorf("store: upsert run metadata: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// Load reads back the dataset and run metadata for a scope, in timestamp
// order (ties keep insert order via the rowid).
func (s *Store) Load(scope contest.Scope) ([]qso.Record, *RunMeta, error) {
	metaRow := s.db.QueryRow(
		`select meta from runs where callsign=? and contest=? and year=? and mode=?`,
		scope.Callsign, scope.Contest, scope.Year, scope.Mode)
	var blob string
	if err := metaRow.Scan(&blob); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, fmt.Errorf("store: no dataset for %s", scope)
		}
		return nil, nil, fmt.Errorf("store: read run metadata: %w", err)
	}
	var meta RunMeta
	if err := json.Unmarshal([]byte(blob), &meta); err != nil {
		return nil, nil, fmt.Errorf("store: decode metadata: %w", err)
	}

	rows, err := s.db.Query(`select
		ts, frequency, band, band_id, call, rst_sent, rst_rcvd, my_exchange, exchange,
		country, continent, cqz, ituz, adif, latitude, longitude, locator,
		my_country, my_continent, distance, distance_lp, heading, heading_lp,
		sunrise, sunset, hour, prefix,
		is_valid, qso_points, is_dxcc, is_zone, is_mult, n_mult,
		cum_qso_points, cum_mult, cum_valid_qsos, cum_contest_score,
		diff_contest_score, cum_points_per_qso, mult_worth_points, mult_worth_qsos,
		minutes_from_previous_call, band_from_previous_call, band_transition
		from contest_log
		where callsign=? and contest=? and year=? and mode=?
		order by ts, id`,
		scope.Callsign, scope.Contest, scope.Year, scope.Mode)
	if err != nil {
		return nil, nil, fmt.Errorf("store: query rows: %w", err)
	}
	defer rows.Close()

	var records []qso.Record
	for rows.Next() {
		var (
			r                          qso.Record
			ts                         int64
			sunrise, sunset            sql.NullInt64
			isValid                    int
			ppq, worthP, worthQ, mins  sql.NullFloat64
		)
		if err := rows.Scan(
			&ts, &r.Frequency, &r.Band, &r.BandID, &r.Call,
			&r.RSTSent, &r.RSTRcvd, &r.MyExchange, &r.Exchange,
			&r.Country, &r.Continent, &r.CQZone, &r.ITUZone, &r.ADIF,
			&r.Latitude, &r.Longitude, &r.Locator,
			&r.MyCountry, &r.MyContinent,
			&r.Distance, &r.DistanceLP, &r.Heading, &r.HeadingLP,
			&sunrise, &sunset, &r.Hour, &r.Prefix,
			&isValid, &r.QSOPoints, &r.IsDXCC, &r.IsZone, &r.IsMult, &r.NMult,
			&r.CumQSOPoints, &r.CumMult, &r.CumValidQSOs, &r.CumContestScore,
			&r.DiffContestScore, &ppq, &worthP, &worthQ,
			&mins, &r.BandFromPreviousCall, &r.BandTransitionFromPreviousCall,
		); err != nil {
			return nil, nil, fmt.Errorf("store: scan row: %w", err)
		}
		r.MyCall = scope.Callsign
		r.Datetime = time.Unix(ts, 0).UTC()
		if sunrise.Valid {
			r.Sunrise = time.Unix(sunrise.Int64, 0).UTC()
		}
		if sunset.Valid {
			r.Sunset = time.Unix(sunset.Int64, 0).UTC()
		}
		r.IsValid = isValid != 0
		r.CumPointsPerQSO = nullToNaN(ppq)
		r.MultWorthPoints = nullToNaN(worthP)
		r.MultWorthQSOs = nullToNaN(worthQ)
		r.MinutesFromPreviousCall = nullToNaN(mins)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("store: iterate rows: %w", err)
	}
	return records, &meta, nil
}

// floatOrNil maps NaN and infinities to NULL; SQLite has no NaN literal and
// the "undefined ratio" semantics round-trip as null.
func floatOrNil(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

func unixOrNil(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Unix()
}

func nullToNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
