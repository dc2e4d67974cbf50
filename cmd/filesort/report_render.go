package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"filesort/internal/category"
	"filesort/internal/organizer"
	"filesort/internal/preflight"
)

// displayLabel turns a category label into a heading: "image/webp" becomes
// "Image/Webp", "application" becomes "Application".
func displayLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "-"
	}
	return cases.Title(language.Und).String(label)
}

func outcomeKind(outcome organizer.Outcome) statusKind {
	switch outcome {
	case organizer.OutcomeMoved:
		return statusOK
	case organizer.OutcomePlanned:
		return statusInfo
	case organizer.OutcomeFailed:
		return statusError
	default:
		return statusWarn
	}
}

// relativeTo shortens path for display when it lies below base.
func relativeTo(base, path string) string {
	if path == "" {
		return "-"
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// renderReport prints a table on terminals and plain lines otherwise.
func renderReport(w io.Writer, report *organizer.Report, terminal bool) {
	if report == nil {
		return
	}
	title := "Organized"
	if report.DryRun {
		title = "Dry run"
	}
	fmt.Fprintf(w, "%s %s (run %s)\n", title, report.Source, report.RunID)

	if len(report.Items) == 0 {
		fmt.Fprintln(w, "No files to organize")
		return
	}

	if !terminal {
		renderReportLines(w, report)
		fmt.Fprintln(w, summaryLine(report))
		return
	}

	rows := make([][]string, 0, len(report.Items))
	for _, item := range report.Items {
		detail := string(item.Decision.Reason)
		if item.Error != "" {
			detail = item.Error
		}
		rows = append(rows, []string{
			item.Name,
			displayLabel(item.Decision.Label),
			relativeTo(report.Source, item.Decision.Destination),
			humanize.IBytes(uint64(max(item.Size, 0))),
			paint(string(item.Outcome), statusKindColor(outcomeKind(item.Outcome)), true),
			detail,
		})
	}
	fmt.Fprintln(w, renderTable(tableLayout{
		headers: []string{"File", "Category", "Destination", "Size", "Outcome", "Detail"},
		rows:    rows,
		aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	}))
	fmt.Fprintln(w, summaryLine(report))
}

// renderReportLines prints one line per file for pipes and log captures.
func renderReportLines(w io.Writer, report *organizer.Report) {
	for _, item := range report.Items {
		line := fmt.Sprintf("%-8s %s", item.Outcome, item.Name)
		if item.Decision.Target != "" {
			line += " -> " + relativeTo(report.Source, item.Decision.Target)
		}
		switch {
		case item.Error != "":
			line += " (" + item.Error + ")"
		case item.Outcome == organizer.OutcomeSkipped:
			line += " (" + string(item.Decision.Reason) + ")"
		}
		fmt.Fprintln(w, line)
	}
}

func summaryLine(report *organizer.Report) string {
	s := report.Summary
	moved := fmt.Sprintf("%d moved", s.Moved)
	if report.DryRun {
		moved = fmt.Sprintf("%d planned", s.Planned)
	}
	return fmt.Sprintf("%s (%s), %d skipped, %d failed in %s",
		moved, humanize.IBytes(uint64(max(s.Bytes, 0))), s.Skipped, s.Failed,
		report.Duration().Round(time.Millisecond))
}

func renderPreflight(w io.Writer, results []preflight.Result, colorize bool) {
	for _, r := range results {
		kind := statusOK
		if !r.Passed {
			kind = statusWarn
			if r.Blocking {
				kind = statusError
			}
		}
		fmt.Fprintln(w, renderStatusLine(r.Name, kind, r.Detail, colorize))
	}
}

func renderRules(w io.Writer, table category.Table) {
	rules := table.Rules()
	requested := make(map[string]bool)
	for _, c := range table.Categories() {
		requested[c.Label] = c.Requested
	}
	rows := make([][]string, 0, len(rules))
	for i, rule := range rules {
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			rule.Label,
			displayLabel(rule.Label),
			relativeTo(table.Source(), rule.Destination),
			yesNo(requested[rule.Label]),
		})
	}
	fmt.Fprintf(w, "Rules for %s (first match wins)\n", table.Source())
	fmt.Fprintln(w, renderTable(tableLayout{
		headers: []string{"#", "Label", "Category", "Destination", "Requested"},
		rows:    rows,
		aligns:  []columnAlignment{alignRight},
		footer:  []string{"", "", "", fmt.Sprintf("%d rules", len(rows))},
	}))
}
