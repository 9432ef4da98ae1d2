// Package domain implements the onelevel workflows: discovering Java sources,
// evaluating them against the indentation rule and presenting the reports.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"onelevel.dev/pkg/onelevel/internal/adapter"
	"onelevel.dev/pkg/onelevel/internal/controller"
	m "onelevel.dev/pkg/onelevel/internal/model"
)

// ErrViolationsFound is returned by Check when any file violates the rule or
// could not be parsed.
var ErrViolationsFound = errors.New("violations found")

// DefaultWatchQuietPeriod is how long Watch waits for more changes before
// re-checking.
const DefaultWatchQuietPeriod = 200 * time.Millisecond

// SourceArgs selects the sources a workflow operates on.
type SourceArgs struct {
	Paths   []m.Path
	Include []string
	Exclude []string
}

// CheckArgs contains the arguments for evaluating sources.
type CheckArgs struct {
	SourceArgs
	Reports         m.Path
	UseCache        bool
	Threads         int
	ShardIndex      int
	TotalShardCount int
	// SpillDir holds the scratch file reports are collected in.
	SpillDir string
}

// ListArgs contains the arguments for listing sources.
type ListArgs struct {
	SourceArgs
}

// ViewArgs contains the arguments for viewing stored reports.
type ViewArgs struct {
	Reports m.Path
}

// WatchArgs contains the arguments for watch mode.
type WatchArgs struct {
	CheckArgs
	// QuietPeriod batches bursts of file events; zero means DefaultWatchQuietPeriod.
	QuietPeriod time.Duration
}

// Workflow defines the user facing operations of onelevel.
type Workflow interface {
	Check(ctx context.Context, args CheckArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
	Watch(ctx context.Context, args WatchArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	controller.UI
	watcher adapter.Watcher
	checker Checker
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	watcher adapter.Watcher,
	ui controller.UI,
	checker Checker,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		watcher:         watcher,
		checker:         checker,
	}
}

// Check evaluates the selected sources, stores the reports and displays them.
func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	if err := w.Start(ctx, controller.WithCheckMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	reports, err := w.run(ctx, args, true)
	if err != nil {
		w.Close(ctx)
		slog.Error("Failed to check sources", "error", err)

		return err
	}

	summary := m.Summarize(reports)

	if err := w.DisplayReports(ctx, reports); err != nil {
		w.Close(ctx)
		return fmt.Errorf("display: %w", err)
	}

	w.DisplaySummary(ctx, summary)

	w.Wait(ctx)
	w.Close(ctx)

	slog.Info("Check finished",
		"files", summary.Total,
		"violations", summary.Violations,
		"errors", summary.Errors,
		"skipped", summary.Skipped,
	)

	if summary.Failed() {
		return fmt.Errorf("%d violation(s), %d error(s): %w", summary.Violations, summary.Errors, ErrViolationsFound)
	}

	return nil
}

// run discovers, shards and evaluates sources, reusing cached reports when
// enabled, and persists the merged result.
func (w *workflow) run(ctx context.Context, args CheckArgs, announce bool) ([]m.Report, error) {
	sources, err := w.Get(ctx, args.Paths, args.Include, args.Exclude)
	if err != nil {
		return nil, fmt.Errorf("get sources: %w", err)
	}

	sources = ShardSources(sources, args.ShardIndex, args.TotalShardCount)

	cached, changed, err := w.changedSources(ctx, args, sources)
	if err != nil {
		return nil, fmt.Errorf("check cache: %w", err)
	}

	threads := args.Threads
	if threads <= 0 {
		threads = 1
	}

	if announce {
		w.DisplayConcurrencyInfo(ctx, threads, args.ShardIndex, max(args.TotalShardCount, 1), len(changed))
	}

	fresh, err := w.evaluate(ctx, changed, threads, args.SpillDir)
	if err != nil {
		return nil, fmt.Errorf("evaluate sources: %w", err)
	}

	reports := make([]m.Report, 0, len(cached)+len(fresh))
	reports = append(reports, cached...)
	reports = append(reports, fresh...)

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Path < reports[j].Path
	})

	if args.Reports != "" {
		if err := w.SaveReports(ctx, args.Reports, reports); err != nil {
			return nil, fmt.Errorf("save reports: %w", err)
		}
	}

	return reports, nil
}

func (w *workflow) changedSources(ctx context.Context, args CheckArgs, sources []m.Source) ([]m.Report, []m.Source, error) {
	if !args.UseCache || args.Reports == "" {
		return nil, sources, nil
	}

	return w.CheckUpdates(ctx, args.Reports, sources)
}

// ShardSources keeps the sources whose position modulo totalShardCount equals
// shardIndex. A zero or one shard count keeps everything.
func ShardSources(sources []m.Source, shardIndex int, totalShardCount int) []m.Source {
	if totalShardCount <= 1 {
		return sources
	}

	var shard []m.Source

	for i, source := range sources {
		if i%totalShardCount == shardIndex {
			shard = append(shard, source)
		}
	}

	return shard
}

// List displays the discovered sources and their primary types.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	sources, err := w.Get(ctx, args.Paths, args.Include, args.Exclude)
	if err != nil {
		w.Close(ctx)
		return fmt.Errorf("get sources: %w", err)
	}

	infos := make([]m.SourceInfo, 0, len(sources))

	for _, source := range sources {
		info, err := w.checker.Inspect(ctx, source)
		if err != nil {
			w.Close(ctx)
			return fmt.Errorf("inspect %s: %w", source.Origin.FullPath, err)
		}

		infos = append(infos, info)
	}

	if err := w.DisplaySources(ctx, infos); err != nil {
		w.Close(ctx)
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

// View displays previously stored reports.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	reports, err := w.LoadReports(ctx, args.Reports)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	if err := w.DisplayReports(ctx, reports); err != nil {
		w.Close(ctx)
		return fmt.Errorf("display: %w", err)
	}

	w.DisplaySummary(ctx, m.Summarize(reports))

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

// Watch checks once, then re-checks whenever watched Java files change until
// ctx is done or the user closes the UI.
func (w *workflow) Watch(ctx context.Context, args WatchArgs) error {
	quiet := args.QuietPeriod
	if quiet <= 0 {
		quiet = DefaultWatchQuietPeriod
	}

	if err := w.Start(ctx, controller.WithWatchMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	reports, err := w.run(ctx, args.CheckArgs, true)
	if err != nil {
		return err
	}

	if err := w.DisplayReports(ctx, reports); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.DisplaySummary(ctx, m.Summarize(reports))

	changes, watchErrs, err := w.watcher.Watch(ctx, args.Paths)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	// Cached reports make re-checks cheap, so later runs always use them.
	rerun := args.CheckArgs
	rerun.UseCache = rerun.Reports != ""

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Done():
			return nil
		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}

			slog.Warn("Watch error", "error", err)
		case path, ok := <-changes:
			if !ok {
				return nil
			}

			batch := collectBatch(ctx, path, changes, quiet)
			slog.Debug("Re-checking after changes", "files", len(batch))

			reports, err := w.run(ctx, rerun, false)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}

				slog.Error("Re-check failed", "error", err)

				continue
			}

			for _, report := range reports {
				if batch[report.Path] {
					w.DisplayReport(ctx, report)
				}
			}

			w.DisplaySummary(ctx, m.Summarize(reports))
		}
	}
}

// collectBatch gathers first and every further change that arrives before
// the stream stays quiet for the given period.
func collectBatch(ctx context.Context, first m.Path, changes <-chan m.Path, quiet time.Duration) map[m.Path]bool {
	batch := map[m.Path]bool{first: true}

	timer := time.NewTimer(quiet)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return batch
		case <-timer.C:
			return batch
		case path, ok := <-changes:
			if !ok {
				return batch
			}

			batch[path] = true

			timer.Reset(quiet)
		}
	}
}
