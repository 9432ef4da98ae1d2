package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "onelevel.dev/pkg/onelevel/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait returns immediately; SimpleUI never blocks on the user.
func (s *SimpleUI) Wait(_ context.Context) {}

// Done returns nil: plain output cannot be dismissed.
func (s *SimpleUI) Done() <-chan struct{} {
	return nil
}

// DisplayConcurrencyInfo shows concurrency settings.
func (s *SimpleUI) DisplayConcurrencyInfo(ctx context.Context, threads int, shardIndex int, shardCount int, sources int) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Checking %d file(s) with %d worker(s) (shard %d/%d)\n", sources, threads, shardIndex, shardCount)
}

// DisplaySources prints discovered sources with their primary type.
func (s *SimpleUI) DisplaySources(ctx context.Context, sources []m.SourceInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderSourcesTable(sources))

	return nil
}

// DisplayReport prints one line per evaluated file in compiler style.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s\n", FormatReportLine(report))
}

// DisplayReports prints the failing reports followed by a results table.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, report := range reports {
		if report.Failed() {
			s.printf("%s\n", FormatReportLine(report))
		}
	}

	s.printf("\n%s", renderReportsTable(reports))

	return nil
}

// DisplaySummary prints status totals.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s\n", FormatSummary(summary))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

// FormatReportLine renders a report as "path[:line]: status: detail".
func FormatReportLine(report m.Report) string {
	location := string(report.Path)
	if report.Line > 0 {
		location = fmt.Sprintf("%s:%d", location, report.Line)
	}

	detail := reportDetail(report)
	if detail == "" {
		return fmt.Sprintf("%s: %s", location, report.Status)
	}

	return fmt.Sprintf("%s: %s: %s", location, report.Status, detail)
}

// FormatSummary renders status totals on one line.
func FormatSummary(summary m.Summary) string {
	return fmt.Sprintf("Files: %d | Conformant: %d | Violations: %d | Skipped: %d | Errors: %d",
		summary.Total, summary.Conformant, summary.Violations, summary.Skipped, summary.Errors)
}

func reportDetail(report m.Report) string {
	switch report.Status {
	case m.StatusViolation:
		detail := report.Message
		if report.Method != "" {
			detail = fmt.Sprintf("%s (%s.%s, %s)", detail, report.TypeName, report.Method, report.Detection)
		} else if report.Detection != "" {
			detail = fmt.Sprintf("%s (%s, %s)", detail, report.TypeName, report.Detection)
		}

		return detail
	case m.StatusError, m.StatusSkipped:
		return report.Error
	default:
		return ""
	}
}

func renderSourcesTable(sources []m.SourceInfo) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Type", "Methods"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	totalMethods := 0

	for _, source := range sources {
		typeName := source.TypeName
		if source.Status != "" {
			typeName = fmt.Sprintf("(%s)", source.Status)
		}

		table.Append([]string{string(source.Path), typeName, strconv.Itoa(source.Methods)})

		totalMethods += source.Methods
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(sources)),
		"",
		strconv.Itoa(totalMethods),
	})

	table.Render()

	return tableBuffer.String()
}

func renderReportsTable(reports []m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Type", "Status", "Method", "Line"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, report := range reports {
		line := ""
		if report.Line > 0 {
			line = strconv.Itoa(report.Line)
		}

		table.Append([]string{string(report.Path), report.TypeName, string(report.Status), report.Method, line})
	}

	table.Render()

	return tableBuffer.String()
}
