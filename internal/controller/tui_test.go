package controller

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "onelevel.dev/pkg/onelevel/internal/model"
)

func update(t *testing.T, model resultsModel, msg tea.Msg) (resultsModel, tea.Cmd) {
	t.Helper()

	next, cmd := model.Update(msg)

	rm, ok := next.(resultsModel)
	require.True(t, ok)

	return rm, cmd
}

func TestResultsModel_ViewBeforeResize(t *testing.T) {
	model := newResultsModel(ModeView)

	assert.Contains(t, model.View(), "onelevel - view")
	assert.Contains(t, model.View(), "No results yet")

	model, _ = update(t, model, reportsMsg{
		{Path: "A.java", Status: m.StatusConformant},
		{Path: "B.java", Status: m.StatusViolation, Message: "More that one level of indentation.", Line: 4},
	})
	model, _ = update(t, model, summaryMsg(m.Summary{Total: 2, Conformant: 1, Violations: 1}))

	view := model.View()
	assert.Contains(t, view, "A.java: conformant")
	assert.Contains(t, view, "B.java:4: violation")
	assert.Contains(t, view, "Files: 2 | Conformant: 1 | Violations: 1")
}

func TestResultsModel_Sources(t *testing.T) {
	model := newResultsModel(ModeList)

	model, _ = update(t, model, sourcesMsg{
		{Path: "A.java", TypeName: "A", Methods: 3},
		{Path: "package-info.java", Status: m.StatusSkipped},
	})

	view := model.View()
	assert.Contains(t, view, "A.java: A, 3 method(s)")
	assert.Contains(t, view, "package-info.java (skipped)")
}

func TestResultsModel_ViewportScrolling(t *testing.T) {
	model := newResultsModel(ModeCheck)
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 80, Height: 12})
	require.True(t, model.ready)

	reports := make(reportsMsg, 0, 30)
	for range 30 {
		reports = append(reports, m.Report{Path: "A.java", Status: m.StatusConformant})
	}

	model, _ = update(t, model, reports)
	assert.Equal(t, 0, model.viewport.YOffset)

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	assert.Positive(t, model.viewport.YOffset)
	assert.True(t, model.viewport.AtBottom())

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	assert.Equal(t, 0, model.viewport.YOffset)
}

func TestResultsModel_WatchFollowsNewReports(t *testing.T) {
	model := newResultsModel(ModeWatch)
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 80, Height: 12})

	for range 20 {
		model, _ = update(t, model, reportsMsg{{Path: "A.java", Status: m.StatusConformant}})
	}

	assert.True(t, model.viewport.AtBottom())
}

func TestResultsModel_Quit(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		model := newResultsModel(ModeCheck)

		model, cmd := update(t, model, key)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.True(t, model.quitting)
		assert.Empty(t, model.View())
	}
}

func TestTUI_NotStarted(t *testing.T) {
	tui := NewTUI(nil)

	assert.Nil(t, tui.Done())
	tui.DisplayReport(t.Context(), m.Report{Path: "A.java"})
	tui.Wait(t.Context())
	tui.Close(t.Context())
}
