// Package report sorts scanned PDF records and renders them as a table, CSV or JSON.
package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"
	"unicode"

	"github.com/quidome/pdf-dates-go/pkg/pdfdate"
	"github.com/quidome/pdf-dates-go/pkg/scan"
)

// Header is the column header shared by the table and CSV output.
var Header = []string{"File Name", "Creation Date", "Software", "Creator"}

// unknownDate is shown in the console table for records without a date.
const unknownDate = "-"

// Sort orders records by creation date ascending. Records without a date come
// first; ties are broken by file name.
func Sort(records []scan.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.CreatedAt.IsZero() != b.CreatedAt.IsZero() {
			return a.CreatedAt.IsZero()
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.FileName < b.FileName
	})
}

// WriteTable renders records as a column-aligned table.
func WriteTable(w io.Writer, records []scan.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", Header[0], Header[1], Header[2], Header[3])
	for _, r := range records {
		date := pdfdate.Format(r.CreatedAt)
		if date == "" {
			date = unknownDate
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", cell(r.FileName), date, cell(r.Software), cell(r.Creator))
	}

	return tw.Flush()
}

// cell replaces control characters, which would break the table layout, with spaces.
func cell(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

// WriteCSV writes records as comma-separated rows preceded by Header.
// Unknown dates are written as empty fields.
func WriteCSV(w io.Writer, records []scan.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{r.FileName, pdfdate.Format(r.CreatedAt), r.Software, r.Creator}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", r.FileName, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes records to path, replacing any existing file.
func SaveCSV(path string, records []scan.Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	return WriteCSV(f, records)
}

// Row is one data row read back from a CSV report.
type Row struct {
	FileName     string
	CreationDate string
	Software     string
	Creator      string
}

// ErrBadHeader is returned by ReadCSV when the first row is not Header.
var ErrBadHeader = errors.New("unexpected CSV header")

// ReadCSV parses a report written by WriteCSV.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	lines, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrBadHeader
	}
	for i, h := range Header {
		if lines[0][i] != h {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i, lines[0][i], h)
		}
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, l := range lines[1:] {
		rows = append(rows, Row{FileName: l[0], CreationDate: l[1], Software: l[2], Creator: l[3]})
	}
	return rows, nil
}

type jsonRecord struct {
	FileName      string     `json:"file_name"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	Software      string     `json:"software"`
	Creator       string     `json:"creator"`
	Status        string     `json:"status"`
	FileSizeBytes int64      `json:"file_size_bytes"`
	ModTime       time.Time  `json:"mod_time"`
}

// WriteJSON writes records as an indented JSON array.
func WriteJSON(w io.Writer, records []scan.Record) error {
	out := make([]jsonRecord, 0, len(records))
	for _, r := range records {
		jr := jsonRecord{
			FileName:      r.FileName,
			Software:      r.Software,
			Creator:       r.Creator,
			Status:        string(r.Status),
			FileSizeBytes: r.FileSizeBytes,
			ModTime:       r.ModTime,
		}
		if !r.CreatedAt.IsZero() {
			createdAt := r.CreatedAt
			jr.CreatedAt = &createdAt
		}
		out = append(out, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
