// Package flatfile extracts a CSV file from disk or object storage.
//
// The header row is the discovery unit: it is checked against the expected
// headers even when no data rows follow, and it is kept as the table's
// headers in file order. Every record must have as many fields as the
// header row; a ragged record is a source protocol fault.
package flatfile
