// Package pipeline wires sources and sinks into the two actions the tool
// offers: extract a canonical table into a workbook, and push one record
// update to a remote datasheet.
//
// Service holds the orchestration and is shared by the CLI and the HTTP
// Handler. Source kinds are listed by Kinds.
package pipeline
