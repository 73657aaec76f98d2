// Package instrumentation provides OpenTelemetry run metrics for mailstash.
//
// A one-shot CLI has no scrape endpoint, so metrics accumulate in memory
// and are written to stdout exactly once at process exit via the stdout
// metric exporter. When metrics are disabled the package hands out no-op
// instruments, keeping call sites unconditional.
package instrumentation
