package pdfmeta

import (
	"bytes"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/quidome/pdf-dates-go/pkg/pdfdate"
)

const (
	// NotDefined replaces a producer or creator missing from the document.
	NotDefined = "N/D"

	// Failed replaces producer and creator when the file could not be read.
	Failed = "Errore"
)

// Status describes the outcome of Extract.
type Status string

const (
	StatusOK              Status = "ok"
	StatusDateMissing     Status = "date_missing"
	StatusDateUnparseable Status = "date_unparseable"
	StatusOpenFailed      Status = "open_failed"
	StatusReadFailed      Status = "read_failed"
)

// Info holds the raw document information entries. Missing entries are "".
type Info struct {
	CreationDate string
	Producer     string
	Creator      string
}

// Source reads the document information dictionary of a PDF stream.
//
// Implementations return a zero Info and a nil error for documents without an
// information dictionary.
type Source interface {
	Info(path string, r io.ReadSeeker) (Info, error)
}

// Result is the outcome of extracting metadata from one file.
type Result struct {
	// CreatedAt is zero when the date is missing, unparseable or the file failed.
	CreatedAt       time.Time
	RawCreationDate string
	Producer        string
	Creator         string

	Status Status
	// Err is set for StatusOpenFailed and StatusReadFailed.
	Err error
}

// Failed reports whether the file could not be opened or read.
func (r Result) Failed() bool {
	return r.Status == StatusOpenFailed || r.Status == StatusReadFailed
}

// Options configures Extract.
type Options struct {
	// Location is used to interpret creation dates. If nil, UTC is used.
	Location *time.Location

	// Source parses the PDF. If nil, the pdfcpu-backed source is used.
	Source Source

	// Logger receives failure reports. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Extract opens path in fsys, reads its metadata and closes it again.
func Extract(fsys fs.FS, path string, opts Options) Result {
	path = filepath.ToSlash(filepath.Clean(path))

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	source := opts.Source
	if source == nil {
		source = NewPDFCPUSource(logger)
	}

	info, status, err := readInfo(fsys, path, source)
	if err != nil {
		logger.Error("failed to read PDF metadata", "path", path, "status", string(status), "error", err)
		return Result{
			Producer: Failed,
			Creator:  Failed,
			Status:   status,
			Err:      err,
		}
	}

	result := Result{
		RawCreationDate: info.CreationDate,
		Producer:        orNotDefined(info.Producer),
		Creator:         orNotDefined(info.Creator),
		Status:          StatusOK,
	}

	switch createdAt, ok := pdfdate.Parse(info.CreationDate, opts.Location); {
	case ok:
		result.CreatedAt = createdAt
	case info.CreationDate == "":
		result.Status = StatusDateMissing
		logger.Debug("no creation date", "path", path)
	default:
		result.Status = StatusDateUnparseable
		logger.Warn("unparseable creation date", "path", path, "value", info.CreationDate)
	}

	return result
}

func readInfo(fsys fs.FS, path string, source Source) (Info, Status, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return Info{}, StatusOpenFailed, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return Info{}, StatusOpenFailed, err
	}
	if stat.IsDir() {
		return Info{}, StatusOpenFailed, &fs.PathError{Op: "open", Path: path, Err: fs.ErrInvalid}
	}

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		data, readErr := io.ReadAll(f)
		if readErr != nil {
			return Info{}, StatusReadFailed, readErr
		}
		rs = bytes.NewReader(data)
	}

	info, err := source.Info(path, rs)
	if err != nil {
		return Info{}, StatusReadFailed, err
	}
	return info, StatusOK, nil
}

func orNotDefined(s string) string {
	if s == "" {
		return NotDefined
	}
	return s
}
