// Package coerce converts native backend values into the display strings
// stored in a canonical table.
//
// Every function here is total: any input, including nil and types the package
// does not know, yields a string and never an error. Unknown types map to the
// empty string. Composite values (arrays, nested documents) are flattened into
// a single debug-style cell and are not split into further columns.
//
// There is one entry point per backend family:
//   - SQL: values scanned from database/sql rows
//   - BSON: values decoded from MongoDB documents
//   - JSON: values decoded from search-engine responses
package coerce
