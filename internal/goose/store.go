// Package goose holds the dataset operations measured by the harness: fetching
// the goose-eggs CSV, loading it into SQLite, and a handful of CRUD statements.
package goose

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Table is the name of the table the dataset is loaded into.
const Table = "GooseDB"

// ErrDatasetMissing is returned by Load when the CSV file does not exist.
var ErrDatasetMissing = errors.New("dataset does not exist")

// Results returned by the CRUD operations.
const (
	QueryResult  = "Query Successfully"
	CreateResult = "Create Successfully"
	ReadResult   = "Read Successfully"
	UpdateResult = "Update Successfully"
	DeleteResult = "Delete Successfully"
)

const schema = `
DROP TABLE IF EXISTS GooseDB;
CREATE TABLE GooseDB (
	name TEXT,
	year INTEGER,
	team TEXT,
	league TEXT,
	goose_eggs INTEGER,
	broken_eggs INTEGER,
	mehs INTEGER,
	league_average_gpct REAL,
	ppf REAL,
	replacement_gpct REAL,
	gwar REAL,
	key_retro TEXT
);
`

const insertRow = `INSERT INTO GooseDB VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Record is one row of the GooseDB table.
type Record struct {
	Name              string  `json:"name"`
	Year              int     `json:"year"`
	Team              string  `json:"team"`
	League            string  `json:"league"`
	GooseEggs         int     `json:"goose_eggs"`
	BrokenEggs        int     `json:"broken_eggs"`
	Mehs              int     `json:"mehs"`
	LeagueAverageGpct float64 `json:"league_average_gpct"`
	PPF               float64 `json:"ppf"`
	ReplacementGpct   float64 `json:"replacement_gpct"`
	GWAR              float64 `json:"gwar"`
	KeyRetro          string  `json:"key_retro"`
}

func (r Record) args() []any {
	return []any{
		r.Name, r.Year, r.Team, r.League, r.GooseEggs, r.BrokenEggs, r.Mehs,
		r.LeagueAverageGpct, r.PPF, r.ReplacementGpct, r.GWAR, r.KeyRetro,
	}
}

// Store runs the dataset statements against one SQLite database.
type Store struct {
	db   *sql.DB
	path string
	out  io.Writer
}

// Open opens (creating if needed) the SQLite database at path.
func Open(path string, out io.Writer) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return NewStore(db, path, out), nil
}

// NewStore wraps an already open database.
func NewStore(db *sql.DB, path string, out io.Writer) *Store {
	if out == nil {
		out = io.Discard
	}
	return &Store{db: db, path: path, out: out}
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Load recreates the table from the CSV at dataset and returns the database
// path. The header row is skipped; unparseable numbers load as zero.
func (s *Store) Load(ctx context.Context, dataset string) (string, error) {
	f, err := os.Open(dataset)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrDatasetMissing, dataset)
		}
		return "", err
	}
	defer f.Close()

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return "", fmt.Errorf("failed to create table: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertRow)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	if _, err := r.Read(); err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read header: %w", err)
	}

	n := 0
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", dataset, err)
		}
		if _, err := stmt.ExecContext(ctx, parseRecord(fields).args()...); err != nil {
			return "", fmt.Errorf("failed to insert row %d: %w", n+1, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	fmt.Fprintf(s.out, "Data successfully loaded into %s (%d rows)\n", s.path, n)
	return s.path, nil
}

func parseRecord(fields []string) Record {
	field := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}
	atoi := func(i int) int {
		v, err := strconv.Atoi(field(i))
		if err != nil {
			return 0
		}
		return v
	}
	atof := func(i int) float64 {
		v, err := strconv.ParseFloat(field(i), 64)
		if err != nil {
			return 0
		}
		return v
	}

	return Record{
		Name:              field(0),
		Year:              atoi(1),
		Team:              field(2),
		League:            field(3),
		GooseEggs:         atoi(4),
		BrokenEggs:        atoi(5),
		Mehs:              atoi(6),
		LeagueAverageGpct: atof(7),
		PPF:               atof(8),
		ReplacementGpct:   atof(9),
		GWAR:              atof(10),
		KeyRetro:          field(11),
	}
}

// Top returns the first limit rows of the table.
func (s *Store) Top(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT * FROM GooseDB LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Name, &r.Year, &r.Team, &r.League, &r.GooseEggs, &r.BrokenEggs, &r.Mehs,
			&r.LeagueAverageGpct, &r.PPF, &r.ReplacementGpct, &r.GWAR, &r.KeyRetro); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Query prints the first ten rows.
func (s *Store) Query(ctx context.Context) (string, error) {
	rows, err := s.Top(ctx, 10)
	if err != nil {
		return "", fmt.Errorf("query failed: %w", err)
	}
	fmt.Fprintf(s.out, "Top 10 rows of the %s table:\n", Table)
	for _, r := range rows {
		fmt.Fprintf(s.out, "%+v\n", r)
	}
	return QueryResult, nil
}

// Create inserts a fixed row.
func (s *Store) Create(ctx context.Context) (string, error) {
	row := Record{Name: "Jennifer Li", Year: 2024, Team: "DKU", League: "AL", KeyRetro: "jennifer101"}
	if err := s.exec(ctx, insertRow, row.args()...); err != nil {
		return "", fmt.Errorf("create failed: %w", err)
	}
	return CreateResult, nil
}

// Read fetches the first ten rows without printing them.
func (s *Store) Read(ctx context.Context) (string, error) {
	if _, err := s.Top(ctx, 10); err != nil {
		return "", fmt.Errorf("read failed: %w", err)
	}
	return ReadResult, nil
}

// Update moves one player's rows to 2024.
func (s *Store) Update(ctx context.Context) (string, error) {
	if err := s.exec(ctx, `UPDATE GooseDB SET year = 2024 WHERE key_retro = ?`, "luqud101"); err != nil {
		return "", fmt.Errorf("update failed: %w", err)
	}
	return UpdateResult, nil
}

// Delete removes one player's rows.
func (s *Store) Delete(ctx context.Context) (string, error) {
	if err := s.exec(ctx, `DELETE FROM GooseDB WHERE key_retro = ?`, "kircm101"); err != nil {
		return "", fmt.Errorf("delete failed: %w", err)
	}
	return DeleteResult, nil
}

func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return tx.Commit()
}
