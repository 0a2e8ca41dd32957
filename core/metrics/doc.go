// Package metrics exposes Prometheus counters and histograms for
// extractions and remote updates. The serve command mounts Handler on
// /metrics; CLI runs record into the same registry but never expose it.
package metrics
