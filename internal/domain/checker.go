package domain

import (
	"context"
	"errors"
	"log/slog"

	"onelevel.dev/pkg/onelevel/internal/adapter"
	"onelevel.dev/pkg/onelevel/internal/domain/indentation"
	m "onelevel.dev/pkg/onelevel/internal/model"
)

// Checker evaluates a single source file.
type Checker interface {
	// Check reads, parses and evaluates source. File level failures are
	// recorded in the report; the error is non-nil only when ctx is done.
	Check(ctx context.Context, source m.Source) (m.Report, error)
	// Inspect parses source and describes its primary type.
	Inspect(ctx context.Context, source m.Source) (m.SourceInfo, error)
}

type checker struct {
	adapter.SourceFSAdapter
	adapter.JavaFileAdapter
	rule indentation.Rule
}

// NewChecker creates a Checker evaluating rule over files read through fsAdapter.
func NewChecker(fsAdapter adapter.SourceFSAdapter, javaAdapter adapter.JavaFileAdapter, rule indentation.Rule) Checker {
	return &checker{
		SourceFSAdapter: fsAdapter,
		JavaFileAdapter: javaAdapter,
		rule:            rule,
	}
}

func (c *checker) Check(ctx context.Context, source m.Source) (m.Report, error) {
	report := m.Report{
		Path: source.Origin.FullPath,
		Hash: source.Origin.Hash,
	}

	file, err := c.load(ctx, source)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return report, ctxErr
		}

		report.Status, report.Error = failureStatus(err), err.Error()

		return report, nil
	}

	report.TypeName = file.TypeName
	report.Methods = len(file.PrimaryType.Methods)

	result := c.rule.Evaluate(file)
	if result.IsConformant() {
		report.Status = m.StatusConformant
		return report, nil
	}

	v := result.Violation
	report.Status = m.StatusViolation
	report.Message = v.Message
	report.Detection = v.Detection
	report.Method = v.Method
	report.Line = v.Line

	slog.Debug("Violation found", "path", report.Path, "detection", v.Detection, "method", v.Method, "line", v.Line)

	return report, nil
}

func (c *checker) Inspect(ctx context.Context, source m.Source) (m.SourceInfo, error) {
	info := m.SourceInfo{
		Path: source.Origin.FullPath,
		Hash: source.Origin.Hash,
	}

	file, err := c.load(ctx, source)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return info, ctxErr
		}

		info.Status, info.Error = failureStatus(err), err.Error()

		return info, nil
	}

	info.TypeName = file.TypeName
	info.Methods = len(file.PrimaryType.Methods)

	return info, nil
}

func (c *checker) load(ctx context.Context, source m.Source) (m.SourceFile, error) {
	path := source.Origin.FullPath

	src, err := c.ReadFile(ctx, path)
	if err != nil {
		slog.Error("Failed to read source", "path", path, "error", err)
		return m.SourceFile{}, err
	}

	file, err := c.Parse(ctx, string(path), src)
	if err != nil {
		slog.Debug("Failed to parse source", "path", path, "error", err)
		return m.SourceFile{}, err
	}

	return file, nil
}

func failureStatus(err error) m.Status {
	if errors.Is(err, adapter.ErrNoPrimaryType) || errors.Is(err, adapter.ErrUnsupportedFile) {
		return m.StatusSkipped
	}

	return m.StatusError
}
