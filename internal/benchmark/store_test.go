package benchmark

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVStore(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "nested", "go_benchmarks.csv")
	store := NewCSVStore(path)
	assert.Equal(t, path, store.Path())

	// Missing file
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrUnavailable)
	var missing *UnavailableError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, path, missing.Path)

	first := Run{
		Language: "Go",
		Samples: []Sample{
			{Operation: "Extract", Language: "Go", ExecutionTime: 0.123, MemoryUsed: 10.5},
			{Operation: "Query", Language: "Go", ExecutionTime: 0.004, MemoryUsed: 2},
		},
	}
	require.NoError(t, store.Save(first))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, first, *loaded)

	// A second save replaces the file wholesale.
	second := Run{
		Language: "Go",
		Samples:  []Sample{{Operation: "Sieve-100", Language: "Go", ExecutionTime: 0.001, MemoryUsed: 1.25}},
	}
	require.NoError(t, store.Save(second))

	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, second, *loaded)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "operation,language,execution_time,memory_used\n"))
}

func TestReadRecord_ForeignColumnOrder(t *testing.T) {
	input := "language,operation,memory_used,execution_time\n" +
		"Python,Extract,1024.5,0.25\n" +
		"Python,CRUD-Read,64,0.001\n"

	run, err := ReadRecord(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "Python", run.Language)
	require.Len(t, run.Samples, 2)
	assert.Equal(t, Sample{Operation: "Extract", Language: "Python", ExecutionTime: 0.25, MemoryUsed: 1024.5}, run.Samples[0])
}

func TestReadRecord_Errors(t *testing.T) {
	t.Run("Missing Column", func(t *testing.T) {
		_, err := ReadRecord(strings.NewReader("operation,language,execution_time\nX,Go,1\n"))
		assert.Error(t, err)
	})

	t.Run("Bad Number", func(t *testing.T) {
		_, err := ReadRecord(strings.NewReader("operation,language,execution_time,memory_used\nX,Go,fast,1\n"))
		assert.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		run, err := ReadRecord(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, run.Samples)
	})
}
