// Package pdftest builds small PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"sort"
)

// Minimal returns a single-page PDF whose info dictionary holds info as
// literal strings. The info dictionary is omitted when info is empty.
func Minimal(info map[string]string) []byte {
	raw := make(map[string]string, len(info))
	for k, v := range info {
		raw[k] = "(" + v + ")"
	}
	return MinimalRaw(raw)
}

// MinimalRaw is like Minimal but writes each value verbatim, so entries can be
// names (/Word), numbers or hex strings (<FEFF...>).
func MinimalRaw(entries map[string]string) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	}
	if len(entries) > 0 {
		keys := make([]string, 0, len(entries))
		for k := range entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var sb bytes.Buffer
		sb.WriteString("<<")
		for _, k := range keys {
			fmt.Fprintf(&sb, " /%s %s", k, entries[k])
		}
		sb.WriteString(" >>")
		objects = append(objects, sb.String())
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}

	buf.WriteString("trailer\n")
	if len(entries) > 0 {
		fmt.Fprintf(&buf, "<< /Size %d /Root 1 0 R /Info 4 0 R >>\n", len(objects)+1)
	} else {
		fmt.Fprintf(&buf, "<< /Size %d /Root 1 0 R >>\n", len(objects)+1)
	}
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xref)

	return buf.Bytes()
}
