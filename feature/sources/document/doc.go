// Package document extracts a MongoDB collection.
//
// Headers are the first document's field names, sorted. Later documents
// contribute only those fields; a field a document lacks is an empty cell
// and fields first seen later are dropped. The optional filter is an
// extended JSON document, e.g. {"status": "active"}.
package document
