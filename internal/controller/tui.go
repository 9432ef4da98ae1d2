package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "onelevel.dev/pkg/onelevel/internal/model"
)

const (
	headerHeight = 4
	footerHeight = 3
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
	conformantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	violationStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	skippedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	options []tea.ProgramOption

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI rendering to output.
func NewTUI(output io.Writer, options ...tea.ProgramOption) *TUI {
	return &TUI{output: output, options: options}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return fmt.Errorf("tui already started")
	}

	config := newStartConfig(options...)

	programOptions := append([]tea.ProgramOption{tea.WithOutput(t.output), tea.WithAltScreen()}, t.options...)
	program := tea.NewProgram(newResultsModel(config.mode), programOptions...)
	done := make(chan struct{})

	go func() {
		defer close(done)

		if _, err := program.Run(); err != nil {
			slog.Error("TUI exited with error", "error", err)
		}
	}()

	t.program = program
	t.done = done

	return nil
}

// Close stops the program and waits for it to restore the terminal.
func (t *TUI) Close(_ context.Context) {
	program, done := t.current()
	if program == nil {
		return
	}

	program.Quit()
	<-done

	t.mu.Lock()
	t.program = nil
	t.mu.Unlock()
}

// Wait blocks until the user quits the program or ctx is done.
func (t *TUI) Wait(ctx context.Context) {
	_, done := t.current()
	if done == nil {
		return
	}

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Done is closed once the program exits.
func (t *TUI) Done() <-chan struct{} {
	_, done := t.current()
	return done
}

// DisplayConcurrencyInfo shows concurrency settings.
func (t *TUI) DisplayConcurrencyInfo(_ context.Context, threads int, shardIndex int, shardCount int, sources int) {
	t.send(infoMsg(fmt.Sprintf("Checking %d file(s) with %d worker(s) (shard %d/%d)", sources, threads, shardIndex, shardCount)))
}

// DisplaySources shows discovered sources.
func (t *TUI) DisplaySources(ctx context.Context, sources []m.SourceInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.send(sourcesMsg(sources))

	return nil
}

// DisplayReport appends a single report.
func (t *TUI) DisplayReport(_ context.Context, report m.Report) {
	t.send(reportsMsg{report})
}

// DisplayReports appends a batch of reports.
func (t *TUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.send(reportsMsg(reports))

	return nil
}

// DisplaySummary updates the footer totals.
func (t *TUI) DisplaySummary(_ context.Context, summary m.Summary) {
	t.send(summaryMsg(summary))
}

func (t *TUI) current() (*tea.Program, chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.program, t.done
}

func (t *TUI) send(msg tea.Msg) {
	program, _ := t.current()
	if program == nil {
		return
	}

	program.Send(msg)
}

type (
	infoMsg    string
	sourcesMsg []m.SourceInfo
	reportsMsg []m.Report
	summaryMsg m.Summary
)

// resultsModel is the Bubble Tea model shared by every mode: a scrollable
// list of lines between a title and a summary footer.
type resultsModel struct {
	mode     StartMode
	viewport viewport.Model
	ready    bool
	width    int
	height   int
	lines    []string
	summary  *m.Summary
	quitting bool
}

func newResultsModel(mode StartMode) resultsModel {
	return resultsModel{mode: mode}
}

func (rm resultsModel) Init() tea.Cmd {
	return nil
}

func (rm resultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		rm.height = msg.Height

		viewportHeight := max(msg.Height-headerHeight-footerHeight, 1)

		if !rm.ready {
			rm.viewport = viewport.New(msg.Width, viewportHeight)
			rm.viewport.YPosition = headerHeight
			rm.ready = true
		} else {
			rm.viewport.Width = msg.Width
			rm.viewport.Height = viewportHeight
		}

		rm.refresh(false)

		return rm, nil

	case tea.KeyMsg:
		return rm.handleKeyPress(msg)

	case infoMsg:
		rm.lines = append(rm.lines, string(msg))
		rm.refresh(true)

		return rm, nil

	case sourcesMsg:
		for _, source := range msg {
			rm.lines = append(rm.lines, formatSourceLine(source))
		}

		rm.refresh(false)

		return rm, nil

	case reportsMsg:
		for _, report := range msg {
			rm.lines = append(rm.lines, styleReportLine(report))
		}

		rm.refresh(rm.mode == ModeWatch)

		return rm, nil

	case summaryMsg:
		summary := m.Summary(msg)
		rm.summary = &summary

		return rm, nil
	}

	if !rm.ready {
		return rm, nil
	}

	var cmd tea.Cmd
	rm.viewport, cmd = rm.viewport.Update(msg)

	return rm, cmd
}

func (rm resultsModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		rm.quitting = true
		return rm, tea.Quit

	case "g", "home":
		if rm.ready {
			rm.viewport.GotoTop()
		}

		return rm, nil

	case "G", "end":
		if rm.ready {
			rm.viewport.GotoBottom()
		}

		return rm, nil
	}

	if !rm.ready {
		return rm, nil
	}

	var cmd tea.Cmd
	rm.viewport, cmd = rm.viewport.Update(msg)

	return rm, cmd
}

func (rm *resultsModel) refresh(follow bool) {
	if !rm.ready {
		return
	}

	rm.viewport.SetContent(strings.Join(rm.lines, "\n"))

	if follow {
		rm.viewport.GotoBottom()
	}
}

func (rm resultsModel) View() string {
	if rm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("onelevel - %s", rm.mode)))
	b.WriteString("\n")

	switch {
	case len(rm.lines) == 0:
		b.WriteString("  No results yet\n")
	case rm.ready:
		b.WriteString(rm.viewport.View())
		b.WriteString("\n")
	default:
		b.WriteString(strings.Join(rm.lines, "\n"))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	if rm.summary != nil {
		b.WriteString("  " + FormatSummary(*rm.summary) + "\n")
	}

	help := "↑/k: up | ↓/j: down | g: top | G: bottom | q: quit"
	if rm.ready {
		help = fmt.Sprintf("%3.f%% | %s", rm.viewport.ScrollPercent()*100, help)
	}

	b.WriteString(helpStyle.Render("  " + help))

	return b.String()
}

func formatSourceLine(source m.SourceInfo) string {
	if source.Status != "" {
		return skippedStyle.Render(fmt.Sprintf("  %s (%s)", source.Path, source.Status))
	}

	return fmt.Sprintf("  %s: %s, %d method(s)", source.Path, source.TypeName, source.Methods)
}

func styleReportLine(report m.Report) string {
	line := "  " + FormatReportLine(report)

	switch report.Status {
	case m.StatusConformant:
		return conformantStyle.Render(line)
	case m.StatusViolation:
		return violationStyle.Render(line)
	case m.StatusSkipped:
		return skippedStyle.Render(line)
	case m.StatusError:
		return errorStyle.Render(line)
	default:
		return line
	}
}
