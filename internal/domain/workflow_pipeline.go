package domain

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	m "onelevel.dev/pkg/onelevel/internal/model"
	"onelevel.dev/pkg/onelevel/pkg"
)

// evaluate checks sources with a bounded worker pool. Reports are spilled to
// disk as they arrive and read back once every worker has finished.
func (w *workflow) evaluate(ctx context.Context, sources []m.Source, threads int, spillDir string) ([]m.Report, error) {
	if len(sources) == 0 {
		return nil, nil
	}

	spill, err := pkg.NewFileSpill[m.Report](spillDir)
	if err != nil {
		return nil, fmt.Errorf("create report spill: %w", err)
	}

	defer func() {
		if err := spill.Remove(); err != nil {
			slog.Warn("Failed to remove report spill", "path", spill.Path(), "error", err)
		}
	}()

	sourcesChannel, sourcesErrorChannel := streamSources(ctx, sources, threads)
	reportsChannel, reportsErrorChannel := w.evaluateChannel(ctx, sourcesChannel, threads)
	errorChannel := mergeErrorChannels(sourcesErrorChannel, reportsErrorChannel)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var spillErr error

		// Keep draining after a failure so workers never block on send.
		for report := range reportsChannel {
			if spillErr != nil {
				continue
			}

			if err := spill.Append(report); err != nil {
				spillErr = fmt.Errorf("spill report %s: %w", report.Path, err)
			}
		}

		return spillErr
	})

	group.Go(func() error {
		select {
		case <-groupCtx.Done():
			return groupCtx.Err()
		case err, ok := <-errorChannel:
			if ok && err != nil {
				return err
			}

			return nil
		}
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	reports := make([]m.Report, 0, spill.Len())

	err = spill.Range(func(_ uint64, report m.Report) error {
		reports = append(reports, report)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read report spill: %w", err)
	}

	return reports, nil
}

func streamSources(ctx context.Context, sources []m.Source, threads int) (<-chan m.Source, <-chan error) {
	sourcesChannel := make(chan m.Source, threads)
	errorChannel := make(chan error, 1)

	go func() {
		defer close(sourcesChannel)
		defer close(errorChannel)

		for _, source := range sources {
			if err := ctx.Err(); err != nil {
				errorChannel <- err
				return
			}

			select {
			case <-ctx.Done():
				errorChannel <- ctx.Err()
				return
			case sourcesChannel <- source:
			}
		}
	}()

	return sourcesChannel, errorChannel
}

func (w *workflow) evaluateChannel(ctx context.Context, sourcesChannel <-chan m.Source, threads int) (<-chan m.Report, <-chan error) {
	reportsChannel := make(chan m.Report, threads)
	errorChannel := make(chan error, 1)

	var group errgroup.Group
	group.SetLimit(threads)

	go func() {
		defer close(errorChannel)
		defer close(reportsChannel)

		for source := range sourcesChannel {
			currentSource := source

			group.Go(func() error {
				report, err := w.checker.Check(ctx, currentSource)
				if err != nil {
					return fmt.Errorf("check %s: %w", currentSource.Origin.FullPath, err)
				}

				select {
				case <-ctx.Done():
					return ctx.Err()
				case reportsChannel <- report:
				}

				return nil
			})
		}

		if err := group.Wait(); err != nil {
			errorChannel <- err
		}
	}()

	return reportsChannel, errorChannel
}

// mergeErrorChannels forwards the first error from either channel and closes
// once both inputs are closed.
func mergeErrorChannels(ch1, ch2 <-chan error) <-chan error {
	merged := make(chan error, 1)

	go func() {
		defer close(merged)

		for ch1 != nil || ch2 != nil {
			select {
			case err, ok := <-ch1:
				if !ok {
					ch1 = nil
					continue
				}

				merged <- err

				return
			case err, ok := <-ch2:
				if !ok {
					ch2 = nil
					continue
				}

				merged <- err

				return
			}
		}
	}()

	return merged
}
