package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quidome/pdf-dates-go/pkg/pdfmeta"
	"github.com/quidome/pdf-dates-go/pkg/scan"
)

func sampleRecords() []scan.Record {
	return []scan.Record{
		{
			FileName:  "a.pdf",
			CreatedAt: time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC),
			Software:  "Acrobat",
			Creator:   "Word",
			Status:    pdfmeta.StatusOK,
		},
		{
			FileName: "b.pdf",
			Software: pdfmeta.NotDefined,
			Creator:  pdfmeta.NotDefined,
			Status:   pdfmeta.StatusDateMissing,
		},
		{
			FileName:  "c.pdf",
			CreatedAt: time.Date(2022, 6, 1, 8, 0, 0, 0, time.UTC),
			Software:  pdfmeta.NotDefined,
			Creator:   pdfmeta.NotDefined,
			Status:    pdfmeta.StatusOK,
		},
	}
}

func fileNames(records []scan.Record) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.FileName)
	}
	return names
}

func TestSort_UnknownDatesFirst(t *testing.T) {
	records := sampleRecords()

	Sort(records)

	assert.Equal(t, []string{"b.pdf", "c.pdf", "a.pdf"}, fileNames(records))
}

func TestSort_IsNonDecreasingAndDeterministic(t *testing.T) {
	same := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)
	records := []scan.Record{
		{FileName: "z.pdf", CreatedAt: same},
		{FileName: "failed.pdf", Software: pdfmeta.Failed, Creator: pdfmeta.Failed},
		{FileName: "late.pdf", CreatedAt: same.Add(time.Hour)},
		{FileName: "m.pdf", CreatedAt: same},
		{FileName: "early.pdf", CreatedAt: same.Add(-time.Hour)},
		{FileName: "missing.pdf"},
	}

	Sort(records)

	assert.Equal(t, []string{"failed.pdf", "missing.pdf", "early.pdf", "m.pdf", "z.pdf", "late.pdf"}, fileNames(records))
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1].CreatedAt, records[i].CreatedAt
		assert.False(t, cur.Before(prev), "records %d and %d out of order", i-1, i)
	}
}

func TestWriteTable_AlignsColumns(t *testing.T) {
	records := sampleRecords()
	Sort(records)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, records))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.True(t, strings.HasPrefix(lines[0], "File Name"))
	assert.Contains(t, lines[0], "Creation Date")
	assert.Contains(t, lines[1], "b.pdf")
	assert.Contains(t, lines[1], unknownDate)
	assert.Contains(t, lines[2], "2022-06-01 08:00:00")
	assert.Contains(t, lines[3], "2023-01-01 12:00:00")
	assert.Contains(t, lines[3], "Acrobat")

	col := strings.Index(lines[0], "Creation Date")
	for _, l := range lines[1:] {
		assert.NotEqual(t, ' ', rune(l[col]), "date column misaligned in %q", l)
		assert.Equal(t, ' ', rune(l[col-1]), "date column misaligned in %q", l)
	}
}

func TestWriteCSV_Format(t *testing.T) {
	records := sampleRecords()
	Sort(records)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	want := "File Name,Creation Date,Software,Creator\n" +
		"b.pdf,,N/D,N/D\n" +
		"c.pdf,2022-06-01 08:00:00,N/D,N/D\n" +
		"a.pdf,2023-01-01 12:00:00,Acrobat,Word\n"
	assert.Equal(t, want, buf.String())
}

func TestCSV_RoundTrip(t *testing.T) {
	records := append(sampleRecords(), scan.Record{
		FileName: "quoted, \"name\".pdf",
		Software: "Microsoft® Word, 365",
		Creator:  "Errore",
	})
	Sort(records)

	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, SaveCSV(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := ReadCSV(f)
	require.NoError(t, err)
	require.Len(t, rows, len(records))

	for i, r := range records {
		assert.Equal(t, r.FileName, rows[i].FileName)
		assert.Equal(t, r.Software, rows[i].Software)
		assert.Equal(t, r.Creator, rows[i].Creator)
		if r.CreatedAt.IsZero() {
			assert.Empty(t, rows[i].CreationDate)
		} else {
			assert.Equal(t, r.CreatedAt.Format("2006-01-02 15:04:05"), rows[i].CreationDate)
		}
	}
}

func TestSaveCSV_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale data\n", 100)), 0o644))

	require.NoError(t, SaveCSV(path, sampleRecords()[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "File Name,Creation Date,Software,Creator\na.pdf,2023-01-01 12:00:00,Acrobat,Word\n", string(data))
}

func TestSaveCSV_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "report.csv")

	err := SaveCSV(path, sampleRecords())
	assert.Error(t, err)
}

func TestReadCSV_RejectsWrongHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Name,Date,Producer,Creator\na,b,c,d\n"))
	assert.ErrorIs(t, err, ErrBadHeader)

	_, err = ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrBadHeader)
}

func TestWriteJSON(t *testing.T) {
	records := sampleRecords()
	Sort(records)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, records))

	var got []struct {
		FileName  string     `json:"file_name"`
		CreatedAt *time.Time `json:"created_at"`
		Software  string     `json:"software"`
		Creator   string     `json:"creator"`
		Status    string     `json:"status"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)

	assert.Equal(t, "b.pdf", got[0].FileName)
	assert.Nil(t, got[0].CreatedAt)
	assert.Equal(t, "date_missing", got[0].Status)

	require.NotNil(t, got[2].CreatedAt)
	assert.True(t, got[2].CreatedAt.Equal(time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Acrobat", got[2].Software)
	assert.Equal(t, "Word", got[2].Creator)
}

func TestWriteTable_ControlCharactersStayInTheirCell(t *testing.T) {
	records := []scan.Record{
		{
			FileName:  "tab\tname.pdf",
			CreatedAt: time.Date(2022, 6, 1, 8, 0, 0, 0, time.UTC),
			Software:  "Acrobat\nDistiller",
			Creator:   "Word\r\t2019",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, records))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "tab name.pdf"))
	assert.Contains(t, lines[1], "Acrobat Distiller")
	assert.Contains(t, lines[1], "Word  2019")

	col := strings.Index(lines[0], "Creation Date")
	assert.Equal(t, "2022-06-01 08:00:00", lines[1][col:col+len("2022-06-01 08:00:00")])
}

func TestWriteCSV_KeepsControlCharacters(t *testing.T) {
	records := []scan.Record{{FileName: "a.pdf", Software: "Acrobat\nDistiller", Creator: "Word"}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acrobat\nDistiller", rows[0].Software)
}
