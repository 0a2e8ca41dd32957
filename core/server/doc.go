// Package server holds the HTTP server configuration.
//
// The serve command builds the fiber app; this package only defines the
// listen port, the optional API key, and the per-request deadline.
package server
