package pdfmeta

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

type pdfcpuSource struct {
	conf   *model.Configuration
	logger *slog.Logger
}

// NewPDFCPUSource returns a Source that reads the trailer /Info dictionary
// with pdfcpu. The document is not validated.
//
// Entries of the wrong type are logged to logger and treated as missing; a
// malformed /CreationDate is passed on in its textual form so it does not
// parse as a date. If logger is nil, slog.Default() is used.
func NewPDFCPUSource(logger *slog.Logger) Source {
	// pdfcpu otherwise creates a config directory under the user's home.
	model.ConfigPath = "disable"

	if logger == nil {
		logger = slog.Default()
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return pdfcpuSource{conf: conf, logger: logger}
}

func (s pdfcpuSource) Info(path string, r io.ReadSeeker) (info Info, err error) {
	// pdfcpu may panic on badly damaged input.
	defer func() {
		if p := recover(); p != nil {
			info, err = Info{}, fmt.Errorf("parse %s: %v", path, p)
		}
	}()

	ctx, err := api.ReadContext(r, s.conf)
	if err != nil {
		return Info{}, fmt.Errorf("parse %s: %w", path, err)
	}
	xref := ctx.XRefTable
	if xref.Info == nil {
		return Info{}, nil
	}

	d, err := xref.DereferenceDict(*xref.Info)
	if err != nil {
		return Info{}, fmt.Errorf("info dictionary: %w", err)
	}
	if d == nil {
		return Info{}, nil
	}

	date, raw, ok := s.stringEntry(xref, d, path, "CreationDate")
	if !ok {
		date = raw
	}
	info.CreationDate = date
	info.Producer, _, _ = s.stringEntry(xref, d, path, "Producer")
	info.Creator, _, _ = s.stringEntry(xref, d, path, "Creator")
	return info, nil
}

// stringEntry returns the decoded text of d[key]. When the entry is not a
// string, ok is false and raw holds its PDF representation.
func (s pdfcpuSource) stringEntry(xref *model.XRefTable, d types.Dict, path, key string) (text, raw string, ok bool) {
	obj, found := d.Find(key)
	if !found || obj == nil {
		return "", "", true
	}
	text, err := xref.DereferenceStringOrHexLiteral(obj, model.V10, nil)
	if err != nil {
		s.logger.Warn("malformed info entry", "path", path, "key", key, "error", err)
		return "", obj.String(), false
	}
	return text, "", true
}
