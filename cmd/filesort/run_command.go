package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"filesort/internal/category"
	"filesort/internal/config"
	"filesort/internal/logging"
	"filesort/internal/mediatype"
	"filesort/internal/organizer"
	"filesort/internal/preflight"
	"filesort/internal/runlock"
)

// runSettings is the merged view of config values and flag overrides.
type runSettings struct {
	source    string
	labels    []string
	unmatched string
	overwrite bool
	dryRun    bool
	jsonOut   bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var labels []string
	var unmatched string
	var overwrite bool
	var dryRun bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "run [dir]",
		Short: "Move the files of a directory into category folders",
		Long: `Scan the top level of a directory (the configured source_dir, or the
working directory) and move every regular file into the folder of the
first category whose label prefixes its media type.

Files without a known extension are sniffed: WebP content goes to the image
folder, anything else to the video folder.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			settings, err := resolveRunSettings(cmd, cfg, args, labels, unmatched, overwrite)
			if err != nil {
				return err
			}
			settings.dryRun = dryRun
			settings.jsonOut = jsonOut
			return runOrganize(cmd, ctx, cfg, settings)
		},
	}

	cmd.Flags().StringSliceVarP(&labels, "label", "l", nil, "Category label to organize (repeatable; replaces configured labels)")
	cmd.Flags().StringVar(&unmatched, "unmatched", "", "Catch-all folder for files whose media type matches no label")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace files that already exist at the destination")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report what would be moved without touching anything")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the run report as JSON")
	return cmd
}

func resolveRunSettings(cmd *cobra.Command, cfg *config.Config, args, labels []string, unmatched string, overwrite bool) (runSettings, error) {
	settings := runSettings{
		source:    cfg.Organize.SourceDir,
		labels:    cfg.Organize.Labels,
		unmatched: cfg.Organize.UnmatchedLabel,
		overwrite: cfg.Organize.Overwrite,
	}
	if len(args) == 1 {
		source, err := config.ExpandPath(strings.TrimSpace(args[0]))
		if err != nil {
			return runSettings{}, fmt.Errorf("resolve source directory: %w", err)
		}
		settings.source = source
	}
	if cmd.Flags().Changed("label") {
		settings.labels = labels
	}
	if cmd.Flags().Changed("unmatched") {
		settings.unmatched = strings.TrimSpace(unmatched)
	}
	if cmd.Flags().Changed("overwrite") {
		settings.overwrite = overwrite
	}
	return settings, nil
}

func runOrganize(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, settings runSettings) error {
	logger, err := ctx.logger()
	if err != nil {
		return err
	}

	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	table, err := category.Build(settings.source, settings.labels)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	results := preflight.RunAll(table, preflight.Options{ReadOnly: settings.dryRun})
	if failed, ok := preflight.FirstBlocking(results); ok {
		return fmt.Errorf("preflight %s: %s", strings.ToLower(failed.Name), failed.Detail)
	}
	for _, r := range results {
		if !r.Passed {
			logging.WarnWithContext(logger, "preflight check failed", "preflight_failed",
				logging.String("check", r.Name),
				logging.String("detail", r.Detail),
				logging.String(logging.FieldErrorHint, "files for this destination will be left in place"),
			)
		}
	}

	lock, err := runlock.Acquire(table.Source())
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release run lock", logging.String("lock", lock.Path()), logging.Error(err))
		}
	}()

	var exclude []string
	if path, ok := ctx.activeConfigFile(); ok {
		exclude = append(exclude, path)
	}

	org, err := organizer.New(organizer.Options{
		Table:          table,
		Guesser:        mediatype.NewGuesser(cfg.MimeTypes),
		Sniffer:        mediatype.Sniffer{},
		Overwrite:      settings.overwrite,
		DryRun:         settings.dryRun,
		UnmatchedLabel: settings.unmatched,
		Exclude:        exclude,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	report, runErr := org.Run(signalCtx)
	if report != nil {
		if settings.jsonOut {
			if err := writeJSON(cmd, report); err != nil {
				return err
			}
		} else {
			if hasFailedChecks(results) {
				renderPreflight(out, results, colorize)
			}
			renderReport(out, report, colorize)
		}
	}
	if runErr != nil {
		return runErr
	}
	if report.HasFailures() {
		return fmt.Errorf("%d file(s) could not be organized", report.Summary.Failed)
	}
	return nil
}

func hasFailedChecks(results []preflight.Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
