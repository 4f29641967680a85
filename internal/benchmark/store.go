package benchmark

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// ErrUnavailable means a run record has not been produced yet.
var ErrUnavailable = errors.New("comparison data not yet available")

// UnavailableError names the run record that is missing. It matches
// ErrUnavailable with errors.Is.
type UnavailableError struct {
	Path string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnavailable, e.Path)
}

func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// Column names of a persisted run record.
const (
	ColumnOperation     = "operation"
	ColumnLanguage      = "language"
	ColumnExecutionTime = "execution_time"
	ColumnMemoryUsed    = "memory_used"
)

var recordHeader = []string{ColumnOperation, ColumnLanguage, ColumnExecutionTime, ColumnMemoryUsed}

// Store defines the interface for persisting a run record.
type Store interface {
	Save(run Run) error
	Load() (*Run, error)
	Path() string
}

// CSVStore keeps one run record in a CSV file. Every Save replaces the file.
type CSVStore struct {
	path string
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

func (s *CSVStore) Path() string {
	return s.path
}

func (s *CSVStore) Save(run Run) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create run record %s: %w", s.path, err)
	}
	defer f.Close()

	if err := WriteRecord(f, run); err != nil {
		return fmt.Errorf("failed to write run record %s: %w", s.path, err)
	}
	return f.Close()
}

func (s *CSVStore) Load() (*Run, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &UnavailableError{Path: s.path}
		}
		return nil, err
	}
	defer f.Close()

	run, err := ReadRecord(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read run record %s: %w", s.path, err)
	}
	return run, nil
}

// WriteRecord encodes run as CSV with a header row.
func WriteRecord(w io.Writer, run Run) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(recordHeader); err != nil {
		return err
	}
	for _, s := range run.Samples {
		language := s.Language
		if language == "" {
			language = run.Language
		}
		row := []string{
			s.Operation,
			language,
			strconv.FormatFloat(s.ExecutionTime, 'f', -1, 64),
			strconv.FormatFloat(s.MemoryUsed, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadRecord decodes a CSV run record. Columns are located by header name so
// records written by other implementations may order them differently.
func ReadRecord(r io.Reader) (*Run, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Run{}, nil
		}
		return nil, err
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range recordHeader {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	cr.FieldsPerRecord = len(header)

	run := &Run{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		elapsed, err := strconv.ParseFloat(rec[idx[ColumnExecutionTime]], 64)
		if err != nil {
			return nil, fmt.Errorf("bad %s for %s: %w", ColumnExecutionTime, rec[idx[ColumnOperation]], err)
		}
		memory, err := strconv.ParseFloat(rec[idx[ColumnMemoryUsed]], 64)
		if err != nil {
			return nil, fmt.Errorf("bad %s for %s: %w", ColumnMemoryUsed, rec[idx[ColumnOperation]], err)
		}

		s := Sample{
			Operation:     rec[idx[ColumnOperation]],
			Language:      rec[idx[ColumnLanguage]],
			ExecutionTime: elapsed,
			MemoryUsed:    memory,
		}
		if run.Language == "" {
			run.Language = s.Language
		}
		run.Samples = append(run.Samples, s)
	}
	return run, nil
}
