// Package pdfdate parses the date strings stored in a PDF document information
// dictionary.
//
// PDF dates have the form D:YYYYMMDDHHmmSSOHH'mm'. Only the leading fourteen
// digits are used; any timezone suffix is ignored and the wall clock is
// interpreted in the caller-supplied location.
package pdfdate
