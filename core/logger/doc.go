// Package logger builds the zap logger used by every command and handler.
//
// Level debug switches to zap's development preset; any other level uses
// the production preset at that level. Format console prints coloured
// levels without stack traces, json prints one object per line. Output
// always goes to stderr.
//
// WithRayID attaches the request id set by the rayid middleware so that
// every line of one HTTP request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Extraction complete", zap.Int("rows", n))
//
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
