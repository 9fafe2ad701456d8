// Package dora computes the four DORA software delivery metrics
// (deployment frequency, lead time for changes, change failure rate,
// mean time to recovery) from raw counters and samples, classifies each
// value against the standard benchmark thresholds, and aggregates the
// four classifications into an overall performance assessment.
//
// All functions are pure and stateless; the only non-deterministic part
// of a result is the timestamp recorded at the moment of calculation.
package dora
