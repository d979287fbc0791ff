// Package report builds and persists the JSON reports for download and
// check runs: aggregate counts, per-zoom breakdowns, and size estimates.
// Pure aggregation plus one bucket write; no other I/O.
package report
