// Package relational extracts the result set of a SQL query (or a whole
// table) from PostgreSQL, MySQL or SQLite.
//
// Headers are the result set's column names in declared order. Values are
// scanned untyped and converted with coerce.SQL, using the column's
// database type name to recognise JSON. A result set with no rows yields an
// empty table and skips the expected-header check.
package relational
