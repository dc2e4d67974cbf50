package preflight

import (
	"filesort/internal/category"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// Blocking marks checks whose failure must stop the run.
	Blocking bool
}

// Options tunes RunAll.
type Options struct {
	// ReadOnly relaxes the source check to read and search access, for
	// runs that move nothing.
	ReadOnly bool
}

// RunAll checks the source directory of table and every destination that
// already exists on disk.
func RunAll(table category.Table, opts Options) []Result {
	var source Result
	if opts.ReadOnly {
		source = CheckDirectoryReadable("Source directory", table.Source())
	} else {
		source = CheckDirectoryAccess("Source directory", table.Source())
	}
	source.Blocking = true
	results := []Result{source}

	seen := make(map[string]struct{})
	for _, c := range table.Categories() {
		if _, ok := seen[c.Destination]; ok {
			continue
		}
		seen[c.Destination] = struct{}{}
		if r, ok := CheckDestinationSlot(c.Label, c.Destination); ok {
			results = append(results, r)
		}
	}
	return results
}

// FirstBlocking returns the first failed blocking result.
func FirstBlocking(results []Result) (Result, bool) {
	for _, r := range results {
		if r.Blocking && !r.Passed {
			return r, true
		}
	}
	return Result{}, false
}
