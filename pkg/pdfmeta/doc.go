// Package pdfmeta reads the creation date, producer and creator of a PDF file.
//
// The PDF itself is parsed by a Source; the default Source is backed by pdfcpu.
// Extract never fails: problems opening or reading a file are reported through
// Result.Status so a directory scan can keep going.
package pdfmeta
