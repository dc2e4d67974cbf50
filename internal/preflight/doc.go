// Package preflight provides readiness checks for the filesystem paths a
// filesort run depends on.
//
// The run command calls RunAll before scanning. A failed blocking check
// (the source directory) aborts the run; other failures are reported and
// the affected files are left in place by the organizer.
package preflight
