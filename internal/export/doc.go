// Package export delivers the CSV rendering of the record list to a file in
// the export directory or to the system clipboard.
package export
