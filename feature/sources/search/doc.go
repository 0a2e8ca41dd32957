// Package search extracts documents from an Elasticsearch index.
//
// The query body is opaque and sent as is. Only hits.hits[]._source is read;
// a response without that envelope, a _source that is not an object, or a
// non-2xx status is a source protocol fault. Headers are the first hit's
// field names, sorted. Numbers keep their literal JSON text and nested
// values become compact JSON in one cell.
package search
