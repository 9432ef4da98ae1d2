// Package controller provides the user interfaces that present onelevel results.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "onelevel.dev/pkg/onelevel/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeCheck StartMode = iota
	ModeList
	ModeView
	ModeWatch
)

func (s StartMode) String() string {
	switch s {
	case ModeCheck:
		return "check"
	case ModeList:
		return "list"
	case ModeView:
		return "view"
	case ModeWatch:
		return "watch"
	default:
		return "unknown"
	}
}

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// Mode returns the configured mode.
func (c StartConfig) Mode() StartMode {
	return c.mode
}

// WithCheckMode sets the UI to check mode.
func WithCheckMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCheck
	}
}

// WithListMode sets the UI to source listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithViewMode sets the UI to stored report viewing mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// WithWatchMode sets the UI to watch mode.
func WithWatchMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeWatch
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	config := StartConfig{mode: ModeCheck}
	for _, option := range options {
		option(&config)
	}

	return config
}

// UI defines the interface for presenting discovery and evaluation results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	// Done is closed when the user dismisses the UI. A nil channel means the
	// UI is never dismissed interactively.
	Done() <-chan struct{}
	DisplayConcurrencyInfo(ctx context.Context, threads int, shardIndex int, shardCount int, sources int)
	DisplaySources(ctx context.Context, sources []m.SourceInfo) error
	DisplayReport(ctx context.Context, report m.Report)
	DisplayReports(ctx context.Context, reports []m.Report) error
	DisplaySummary(ctx context.Context, summary m.Summary)
}

// NewUI picks the interactive TUI for terminals and SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	fd := f.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
