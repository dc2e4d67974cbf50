// Package main hosts the filesort CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, applies flag
// overrides, and hands the work to the internal packages: category builds
// the destination table, organizer sorts the directory, preflight and
// runlock guard the run. This package only wires them together and renders
// results for the terminal or as JSON.
package main
