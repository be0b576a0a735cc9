// Package journal records evaluation outcomes in SQLite. It backs the
// optional alert cooldown and the /status endpoint; journal failures are
// best-effort and never abort a pass.
package journal

import (
	"database/sql"
	"time"

	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

type DB interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	Close() error
}

// Entry is one evaluation pass outcome.
type Entry struct {
	At             time.Time `json:"at"`
	WeightedReturn float64   `json:"weighted_return"`
	Observed       int       `json:"observed"`
	Skipped        int       `json:"skipped"`
	Triggered      bool      `json:"triggered"`
	Delivered      bool      `json:"delivered"`
}

func Open(dsn string) (DB, error) {
	return sql.Open("sqlite3", dsn)
}

func InitSchema(db DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS evaluations(
		ts INTEGER, weighted_return REAL, observed INTEGER, skipped INTEGER,
		triggered INTEGER, delivered INTEGER
	)`)
	return err
}

type Journal struct{ db DB }

func New(db DB) *Journal { return &Journal{db: db} }

func (j *Journal) Record(e Entry) error {
	_, err := j.db.Exec(`INSERT INTO evaluations(ts,weighted_return,observed,skipped,triggered,delivered) VALUES(?,?,?,?,?,?)`,
		e.At.Unix(), e.WeightedReturn, e.Observed, e.Skipped, boolToInt(e.Triggered), boolToInt(e.Delivered))
	return err
}

// LastTriggered returns the time of the most recent triggered evaluation.
// ok is false when none exists.
func (j *Journal) LastTriggered() (t time.Time, ok bool, err error) {
	rows, err := j.db.Query(`SELECT ts FROM evaluations WHERE triggered=1 ORDER BY ts DESC LIMIT 1`)
	if err != nil {
		return time.Time{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return time.Time{}, false, rows.Err()
	}
	var ts int64
	if err := rows.Scan(&ts); err != nil {
		return time.Time{}, false, err
	}
	return time.Unix(ts, 0), true, nil
}

// Latest returns the most recent evaluation of any outcome.
func (j *Journal) Latest() (Entry, bool, error) {
	rows, err := j.db.Query(`SELECT ts,weighted_return,observed,skipped,triggered,delivered
		FROM evaluations ORDER BY ts DESC LIMIT 1`)
	if err != nil {
		return Entry{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return Entry{}, false, rows.Err()
	}
	var ts int64
	var e Entry
	var triggered, delivered int
	if err := rows.Scan(&ts, &e.WeightedReturn, &e.Observed, &e.Skipped, &triggered, &delivered); err != nil {
		return Entry{}, false, err
	}
	e.At = time.Unix(ts, 0)
	e.Triggered = triggered != 0
	e.Delivered = delivered != 0
	return e, true, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
