package goose

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDataset = `name,year,team,league,goose_eggs,broken_eggs,mehs,league_average_gpct,ppf,replacement_gpct,gwar,key_retro
Bob Locker,1967,CHW,AL,13,1,1,0.7,0.8,0.6,1.1,lockb101
Ron Kline,1961,LAA/DET,AL,5,0,1,0.7,0.9,0.6,0.5,klinr101
Mike Lum,1975,ATL,NL,0,0,0,0.7,,0.6,0,luqud101
Jim Kircher,1980,OAK,AL,n/a,2,0,0.7,1.0,0.6,0.2,kircm101
`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goose_rawdata.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func openStore(t *testing.T, out *bytes.Buffer) *Store {
	t.Helper()
	if out == nil {
		out = new(bytes.Buffer)
	}
	s, err := Open(filepath.Join(t.TempDir(), "GooseDB.db"), out)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func countRows(t *testing.T, s *Store, where string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM GooseDB "+where, args...).Scan(&n))
	return n
}

func TestStore_Load(t *testing.T) {
	var out bytes.Buffer
	s := openStore(t, &out)
	ctx := context.Background()

	path, err := s.Load(ctx, writeDataset(t, sampleDataset))
	require.NoError(t, err)
	assert.Equal(t, s.path, path)
	assert.Equal(t, 4, countRows(t, s, ""))
	assert.Contains(t, out.String(), "(4 rows)")

	rows, err := s.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Record{
		Name: "Bob Locker", Year: 1967, Team: "CHW", League: "AL",
		GooseEggs: 13, BrokenEggs: 1, Mehs: 1,
		LeagueAverageGpct: 0.7, PPF: 0.8, ReplacementGpct: 0.6, GWAR: 1.1,
		KeyRetro: "lockb101",
	}, rows[0])
	assert.Equal(t, 0.0, rows[2].PPF, "empty numeric field loads as zero")
	assert.Equal(t, 0, rows[3].GooseEggs, "unparseable numeric field loads as zero")

	t.Run("reload replaces table", func(t *testing.T) {
		_, err := s.Load(ctx, writeDataset(t, sampleDataset))
		require.NoError(t, err)
		assert.Equal(t, 4, countRows(t, s, ""))
	})
}

func TestStore_LoadMissingDataset(t *testing.T) {
	s := openStore(t, nil)
	_, err := s.Load(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, ErrDatasetMissing)
}

func TestStore_CRUD(t *testing.T) {
	var out bytes.Buffer
	s := openStore(t, &out)
	ctx := context.Background()
	_, err := s.Load(ctx, writeDataset(t, sampleDataset))
	require.NoError(t, err)

	result, err := s.Query(ctx)
	require.NoError(t, err)
	assert.Equal(t, QueryResult, result)
	assert.Contains(t, out.String(), "Top 10 rows of the GooseDB table:")
	assert.Contains(t, out.String(), "Bob Locker")

	result, err = s.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, CreateResult, result)
	assert.Equal(t, 1, countRows(t, s, "WHERE key_retro = ? AND team = 'DKU'", "jennifer101"))

	result, err = s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, ReadResult, result)

	result, err = s.Update(ctx)
	require.NoError(t, err)
	assert.Equal(t, UpdateResult, result)
	assert.Equal(t, 1, countRows(t, s, "WHERE key_retro = ? AND year = 2024", "luqud101"))

	result, err = s.Delete(ctx)
	require.NoError(t, err)
	assert.Equal(t, DeleteResult, result)
	assert.Equal(t, 0, countRows(t, s, "WHERE key_retro = ?", "kircm101"))
	assert.Equal(t, 4, countRows(t, s, ""))
}

func TestStore_HeaderOnlyDataset(t *testing.T) {
	s := openStore(t, nil)
	_, err := s.Load(context.Background(), writeDataset(t, "name,year\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, countRows(t, s, ""))
}

func TestStore_Errors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(db, "mock.db", nil)
	ctx := context.Background()

	t.Run("Query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM GooseDB").WithArgs(10).WillReturnError(errors.New("no such table"))
		_, err := s.Query(ctx)
		assert.ErrorContains(t, err, "query failed")
		assert.ErrorContains(t, err, "no such table")
	})

	t.Run("Read scan error", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"name"}).AddRow("only one column")
		mock.ExpectQuery("SELECT \\* FROM GooseDB").WithArgs(10).WillReturnRows(rows)
		_, err := s.Read(ctx)
		assert.ErrorContains(t, err, "read failed")
	})

	t.Run("Update rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE GooseDB SET year = 2024").WithArgs("luqud101").WillReturnError(errors.New("locked"))
		mock.ExpectRollback()
		_, err := s.Update(ctx)
		assert.ErrorContains(t, err, "update failed")
	})

	t.Run("Delete commits", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM GooseDB").WithArgs("kircm101").WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()
		result, err := s.Delete(ctx)
		require.NoError(t, err)
		assert.Equal(t, DeleteResult, result)
	})

	t.Run("Create begin error", func(t *testing.T) {
		mock.ExpectBegin().WillReturnError(sql.ErrConnDone)
		_, err := s.Create(ctx)
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})

	t.Run("Load schema error", func(t *testing.T) {
		mock.ExpectExec("DROP TABLE IF EXISTS GooseDB").WillReturnError(errors.New("readonly"))
		_, err := s.Load(ctx, writeDataset(t, sampleDataset))
		assert.ErrorContains(t, err, "failed to create table")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
