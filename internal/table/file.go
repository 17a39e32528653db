package table

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jyoun110/FantasyComp/internal/league"
	"github.com/jyoun110/FantasyComp/internal/provider"
)

// FileStore keeps the table in a single .xlsx or .csv file at a fixed path.
type FileStore struct {
	path string
	cats league.Categories
}

// NewFileStore returns a store for path. The format follows the extension;
// anything other than .csv is written as .xlsx.
func NewFileStore(path string, cats league.Categories) *FileStore {
	return &FileStore{path: path, cats: cats}
}

// Name identifies the store in logs.
func (s *FileStore) Name() string {
	return "file:" + s.path
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) isCSV() bool {
	return strings.EqualFold(filepath.Ext(s.path), ".csv")
}

// Save writes the table to a temporary file in the target directory and
// renames it over the target, so readers never observe a partial table.
func (s *FileStore) Save(ctx context.Context, records []provider.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	var err error
	if s.isCSV() {
		err = writeCSV(&buf, records, s.cats)
	} else {
		err = writeXLSX(&buf, records, s.cats)
	}
	if err != nil {
		return fmt.Errorf("encode table: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create table directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".table-*"+filepath.Ext(s.path))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// Load reads the table. A missing or unreadable file wraps ErrUnavailable.
func (s *FileStore) Load(ctx context.Context) ([]provider.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrUnavailable, s.path)
		}
		return nil, fmt.Errorf("%w: open %s: %v", ErrUnavailable, s.path, err)
	}
	defer f.Close()

	var rows [][]string
	if s.isCSV() {
		rows, err = readCSV(f)
	} else {
		rows, err = readXLSX(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, s.path, err)
	}
	return DecodeRows(rows, s.cats)
}

// SavedAt returns the modification time of the table file.
func (s *FileStore) SavedAt(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	info, err := os.Stat(s.path)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return info.ModTime(), nil
}

// Close is a no-op for files.
func (s *FileStore) Close() error {
	return nil
}

// --------------------------------------------------------------------------
// CSV
// --------------------------------------------------------------------------

func writeCSV(w io.Writer, records []provider.Record, cats league.Categories) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(cats)); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(EncodeRow(r, cats)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}

// --------------------------------------------------------------------------
// XLSX
// --------------------------------------------------------------------------

// writeXLSX writes numbers as numeric cells so the sheet stays usable in a
// spreadsheet; Games Played stays a "completed/total" string.
func writeXLSX(w io.Writer, records []provider.Record, cats league.Categories) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := Header(cats)
	hdr := make([]interface{}, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		return err
	}

	all := cats.All()
	for i, r := range records {
		row := make([]interface{}, 0, len(header))
		row = append(row, r.Manager, r.Week)
		for _, c := range all {
			if v, ok := r.Stat(c.Name); ok {
				row = append(row, v)
			} else {
				row = append(row, nil)
			}
		}
		row = append(row, r.Games.String())

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return f.Write(w)
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
}
