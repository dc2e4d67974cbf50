package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"filesort/internal/category"
	"filesort/internal/fileutil"
	"filesort/internal/logging"
	"filesort/internal/mediatype"
)

// Guesser maps a file name to a media type.
type Guesser interface {
	Guess(name string) (string, bool)
}

// Sniffer reports the image format stored in a file.
type Sniffer interface {
	SniffFile(path string) (string, error)
}

// Options configures an Organizer.
type Options struct {
	Table   category.Table
	Guesser Guesser
	Sniffer Sniffer
	// Overwrite replaces existing files at the target instead of failing.
	Overwrite bool
	// DryRun makes decisions without creating directories or moving files.
	DryRun bool
	// UnmatchedLabel, when set, receives files whose media type matches no
	// rule.
	UnmatchedLabel string
	// Exclude lists paths that are never moved.
	Exclude []string
	Logger  *slog.Logger
}

// Organizer moves the files of one source directory into their category
// destinations.
type Organizer struct {
	table     category.Table
	source    string
	guesser   Guesser
	sniffer   Sniffer
	overwrite bool
	dryRun    bool
	unmatched string
	exclude   map[string]struct{}
	logger    *slog.Logger

	prepared   bool
	failedDirs map[string]error
}

// New validates opts and builds an Organizer.
func New(opts Options) (*Organizer, error) {
	source := opts.Table.Source()
	if len(opts.Table.Categories()) == 0 {
		return nil, errors.New("organizer: destination table is empty")
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("resolve source directory: %w", err)
	}
	unmatched := strings.TrimSpace(opts.UnmatchedLabel)
	if unmatched != "" {
		if err := category.ValidateLabel(unmatched); err != nil {
			return nil, fmt.Errorf("unmatched label: %w", err)
		}
	}

	o := &Organizer{
		table:      opts.Table,
		source:     abs,
		guesser:    opts.Guesser,
		sniffer:    opts.Sniffer,
		overwrite:  opts.Overwrite,
		dryRun:     opts.DryRun,
		unmatched:  unmatched,
		exclude:    make(map[string]struct{}, len(opts.Exclude)),
		logger:     opts.Logger,
		failedDirs: make(map[string]error),
	}
	if o.guesser == nil {
		o.guesser = mediatype.NewGuesser(nil)
	}
	if o.sniffer == nil {
		o.sniffer = mediatype.Sniffer{}
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	o.logger = logging.NewComponentLogger(o.logger, "organizer")
	for _, path := range opts.Exclude {
		if strings.TrimSpace(path) == "" {
			continue
		}
		if p, err := filepath.Abs(path); err == nil {
			o.exclude[p] = struct{}{}
		}
	}
	return o, nil
}

// Source returns the absolute source directory.
func (o *Organizer) Source() string {
	return o.source
}

// Prepare creates the destination directory of every requested label, even
// when no file will be routed there. Failures are remembered so files
// routed to a missing destination are reported instead of moved; the
// returned error joins them for the caller's information.
func (o *Organizer) Prepare(ctx context.Context) error {
	o.prepared = true
	if o.dryRun {
		return nil
	}
	logger := logging.WithContext(ctx, o.logger)
	var errs []error
	for _, dir := range o.table.Requested() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			o.failedDirs[dir] = err
			errs = append(errs, fmt.Errorf("create %s: %w", dir, err))
			logging.WarnWithContext(logger, "destination directory unavailable", "mkdir_failed",
				logging.String("destination", dir),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "files for this category stay in place; check permissions or remove the conflicting file"),
			)
			continue
		}
		logger.Debug("destination ready", logging.String("destination", dir))
	}
	return errors.Join(errs...)
}

// Run organizes the source directory once. Entries are visited in name
// order. Only a failure to read the source directory, or cancellation of
// ctx, is returned as an error; per-file failures are part of the report.
func (o *Organizer) Run(ctx context.Context) (*Report, error) {
	runID, _ := logging.RunIDFromContext(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = logging.WithRunID(ctx, runID)
	}
	logger := logging.WithContext(ctx, o.logger)

	report := &Report{
		RunID:     runID,
		Source:    o.source,
		DryRun:    o.dryRun,
		StartedAt: time.Now().UTC(),
		Items:     []ItemResult{},
	}

	entries, err := os.ReadDir(o.source)
	if err != nil {
		report.finish()
		return report, fmt.Errorf("read source directory: %w", err)
	}
	if !o.prepared {
		_ = o.Prepare(ctx)
	}

	logger.Info("organizing directory",
		logging.String("source", o.source),
		logging.Int("entries", len(entries)),
		logging.Bool("dry_run", o.dryRun),
	)

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			report.finish()
			logger.Warn("run interrupted", logging.Int("processed", len(report.Items)), logging.Error(err))
			return report, err
		}
		path := filepath.Join(o.source, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			logger.Debug("skipping unreadable entry", logging.String(logging.FieldFile, entry.Name()), logging.Error(err))
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		report.add(o.process(ctx, entry.Name(), path, info.Size()))
	}

	report.finish()
	logger.Info("organization completed",
		logging.Int("moved", report.Summary.Moved),
		logging.Int("planned", report.Summary.Planned),
		logging.Int("skipped", report.Summary.Skipped),
		logging.Int("failed", report.Summary.Failed),
		logging.Duration("duration", report.Duration()),
	)
	return report, nil
}

func (o *Organizer) process(ctx context.Context, name, path string, size int64) ItemResult {
	logger := logging.WithContext(ctx, o.logger).With(logging.String(logging.FieldFile, name))
	result := ItemResult{Name: name, Size: size}

	if _, ok := o.exclude[path]; ok {
		result.Decision = Decision{Action: ActionSkip, Reason: ReasonExcluded}
		result.Outcome = OutcomeSkipped
		logger.Debug("file excluded")
		return result
	}

	var ev Evidence
	if mediaType, ok := o.guesser.Guess(name); ok {
		ev.MediaType = mediaType
	} else {
		format, err := o.sniffer.SniffFile(path)
		if err != nil {
			result.Decision = Decision{Action: ActionSkip, Reason: ReasonSniffFailed}
			return o.fail(logger, result, "sniff_failed", fmt.Errorf("sniff content: %w", err))
		}
		ev.Format = format
	}

	d := toBucket(o.table, name, Route(o.table, name, ev), o.unmatched)
	result.Decision = d
	logger = logger.With(logging.String(logging.FieldCategory, d.Label))

	if d.Action == ActionSkip {
		result.Outcome = OutcomeSkipped
		logger.Debug("no category for file", logging.String("media_type", d.MediaType))
		return result
	}

	if err, ok := o.failedDirs[d.Destination]; ok {
		return o.fail(logger, result, "destination_unavailable", fmt.Errorf("destination %s unavailable: %w", d.Destination, err))
	}

	if o.dryRun {
		result.Outcome = OutcomePlanned
		logger.Info("would move file", logging.String("source", path), logging.String("target", d.Target))
		return result
	}

	if err := os.MkdirAll(d.Destination, 0o755); err != nil {
		o.failedDirs[d.Destination] = err
		return o.fail(logger, result, "mkdir_failed", fmt.Errorf("create destination: %w", err))
	}

	logger.Info("moving file", logging.String("source", path), logging.String("target", d.Target))
	moved, err := fileutil.Move(path, d.Target, fileutil.MoveOptions{Overwrite: o.overwrite})
	if err != nil {
		return o.fail(logger, result, "move_failed", err)
	}
	if moved.CrossDevice {
		logger.Debug("moved across filesystems", logging.Int64("bytes", moved.Bytes))
	}
	result.Outcome = OutcomeMoved
	result.CrossDevice = moved.CrossDevice
	return result
}

func (o *Organizer) fail(logger *slog.Logger, result ItemResult, eventType string, err error) ItemResult {
	result.Outcome = OutcomeFailed
	result.Error = err.Error()
	hint := "check logs for details"
	switch {
	case errors.Is(err, fileutil.ErrDestinationExists):
		hint = "a file with the same name already exists at the destination; rerun with --overwrite to replace it"
	case errors.Is(err, os.ErrPermission):
		hint = "check permissions on the source and destination directories"
	}
	logging.WarnWithContext(logger, "file left in place", eventType,
		logging.Error(err),
		logging.String(logging.FieldErrorHint, hint),
	)
	return result
}
