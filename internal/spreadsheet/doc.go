// Package spreadsheet reads loan sheets into header-keyed rows.
//
// The first sheet of an .xlsx workbook or the whole of a .csv file is read;
// the first non-blank row is the header and blank rows are dropped. Cell
// values are handed to ledger.NormalizeRow untouched apart from trimming.
package spreadsheet
