package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	m "onelevel.dev/pkg/onelevel/internal/model"
)

// ReportsFileName is the name of the report document inside the output directory.
const ReportsFileName = "reports.yaml"

const reportsFormatVersion = 1

// ErrReportsNotFound is returned when the output directory holds no reports.
var ErrReportsNotFound = errors.New("reports not found")

// ReportStore persists evaluation reports between runs.
type ReportStore interface {
	// SaveReports replaces the stored reports in dir.
	SaveReports(ctx context.Context, dir m.Path, reports []m.Report) error
	// LoadReports returns the stored reports in dir, sorted by path.
	LoadReports(ctx context.Context, dir m.Path) ([]m.Report, error)
	// CheckUpdates splits sources into those whose stored report is still
	// valid (same path and hash) and those that must be evaluated again.
	CheckUpdates(ctx context.Context, dir m.Path, sources []m.Source) ([]m.Report, []m.Source, error)
}

type reportDocument struct {
	Version int        `yaml:"version"`
	Reports []m.Report `yaml:"reports"`
}

// LocalReportStore stores reports as a YAML document on disk.
type LocalReportStore struct{}

// NewReportStore constructs a LocalReportStore.
func NewReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// SaveReports writes reports to dir/reports.yaml, creating dir when needed.
func (s *LocalReportStore) SaveReports(ctx context.Context, dir m.Path, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		slog.Error("Failed to create reports directory", "path", dir, "error", err)
		return fmt.Errorf("create reports directory: %w", err)
	}

	sorted := make([]m.Report, len(reports))
	copy(sorted, reports)
	sortReports(sorted)

	data, err := yaml.Marshal(reportDocument{Version: reportsFormatVersion, Reports: sorted})
	if err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}

	target := filepath.Join(string(dir), ReportsFileName)

	tmp, err := os.CreateTemp(string(dir), ReportsFileName+".*")
	if err != nil {
		slog.Error("Failed to create temp reports file", "path", dir, "error", err)
		return fmt.Errorf("create temp reports file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("write reports: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close reports: %w", err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(tmp.Name())

		slog.Error("Failed to replace reports file", "path", target, "error", err)

		return fmt.Errorf("replace reports: %w", err)
	}

	slog.Debug("Saved reports", "path", target, "count", len(sorted))

	return nil
}

// LoadReports reads dir/reports.yaml.
func (s *LocalReportStore) LoadReports(ctx context.Context, dir m.Path) ([]m.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(string(dir), ReportsFileName)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", path, ErrReportsNotFound)
	}

	if err != nil {
		slog.Error("Failed to read reports", "path", path, "error", err)
		return nil, fmt.Errorf("read reports: %w", err)
	}

	var doc reportDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		slog.Error("Failed to decode reports", "path", path, "error", err)
		return nil, fmt.Errorf("decode reports %s: %w", path, err)
	}

	if doc.Version != reportsFormatVersion {
		return nil, fmt.Errorf("decode reports %s: unsupported version %d", path, doc.Version)
	}

	sortReports(doc.Reports)

	return doc.Reports, nil
}

// CheckUpdates returns the reusable reports and the sources that changed.
// A missing report document means every source changed.
func (s *LocalReportStore) CheckUpdates(ctx context.Context, dir m.Path, sources []m.Source) ([]m.Report, []m.Source, error) {
	stored, err := s.LoadReports(ctx, dir)
	if errors.Is(err, ErrReportsNotFound) {
		return nil, sources, nil
	}

	if err != nil {
		return nil, nil, err
	}

	byPath := make(map[m.Path]m.Report, len(stored))
	for _, report := range stored {
		byPath[report.Path] = report
	}

	var (
		cached  []m.Report
		changed []m.Source
	)

	for _, source := range sources {
		if source.Origin == nil {
			continue
		}

		report, ok := byPath[source.Origin.FullPath]
		if ok && report.Hash == source.Origin.Hash {
			cached = append(cached, report)
			continue
		}

		changed = append(changed, source)
	}

	slog.Debug("Checked cached reports", "cached", len(cached), "changed", len(changed))

	return cached, changed, nil
}

func sortReports(reports []m.Report) {
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Path < reports[j].Path
	})
}
