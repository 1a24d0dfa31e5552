package scan

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/quidome/pdf-dates-go/pkg/pdfmeta"
)

type Options struct {
	// MaxDepth limits recursion: 0 scans only the root, -1 is unlimited.
	MaxDepth int

	Extensions []string
}

func DefaultOptions() Options {
	return Options{
		MaxDepth:   0,
		Extensions: []string{".pdf"},
	}
}

// Record is one scanned PDF together with its extracted metadata.
type Record struct {
	// FileName is relative to the scan root, slash separated.
	FileName      string
	FileSizeBytes int64
	ModTime       time.Time

	// CreatedAt is zero when unknown.
	CreatedAt time.Time
	Software  string
	Creator   string
	Status    pdfmeta.Status
}

// Scan returns the paths of matching files relative to root, sorted.
func Scan(fsys fs.FS, root string, opts Options) ([]string, error) {
	entries, err := walk(fsys, root, opts)
	if err != nil {
		return nil, err
	}

	matches := make([]string, 0, len(entries))
	for _, e := range entries {
		matches = append(matches, e.rel)
	}
	return matches, nil
}

// ScanRecords extracts metadata from every matching file.
//
// Per-file failures are carried in Record.Status; only errors listing the
// directory itself are returned.
func ScanRecords(fsys fs.FS, root string, opts Options, extract pdfmeta.Options) ([]Record, error) {
	entries, err := walk(fsys, root, opts)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		res := pdfmeta.Extract(fsys, path.Join(root, e.rel), extract)
		records = append(records, Record{
			FileName:      e.rel,
			FileSizeBytes: e.size,
			ModTime:       e.modTime,
			CreatedAt:     res.CreatedAt,
			Software:      res.Producer,
			Creator:       res.Creator,
			Status:        res.Status,
		})
	}
	return records, nil
}

type entry struct {
	rel     string
	size    int64
	modTime time.Time
}

func walk(fsys fs.FS, root string, opts Options) ([]entry, error) {
	if opts.MaxDepth < -1 {
		return nil, fs.ErrInvalid
	}

	exts := normalizeExts(opts.Extensions)

	var matches []entry

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if opts.MaxDepth >= 0 {
				rel, relErr := filepath.Rel(root, p)
				if relErr != nil {
					return relErr
				}
				if rel == "." {
					return nil
				}
				if depth(rel) > opts.MaxDepth-1 {
					return fs.SkipDir
				}
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}

		if opts.MaxDepth >= 0 && depth(rel) > opts.MaxDepth {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(rel))
		if !exts[ext] {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			return infoErr
		}

		matches = append(matches, entry{
			rel:     filepath.ToSlash(rel),
			size:    info.Size(),
			modTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].rel < matches[j].rel
	})
	return matches, nil
}

func normalizeExts(exts []string) map[string]bool {
	m := make(map[string]bool, len(exts))
	for _, ext := range exts {
		e := strings.TrimSpace(strings.ToLower(ext))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		m[e] = true
	}
	return m
}

func depth(rel string) int {
	rel = filepath.Clean(rel)
	if rel == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/")
}
