// Package spreadsheet writes canonical tables to .xlsx workbooks and reads
// them back.
//
// The workbook has one sheet. Row 1 holds the headers, data rows follow in
// table order, every cell is a string. A row whose width disagrees with the
// headers is a sink fault; nothing is padded or truncated on write.
package spreadsheet
