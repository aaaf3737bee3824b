package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneOverview:
		content = m.overviewModel.View()
	case SceneIncome:
		content = m.incomeModel.View()
	case SceneEvents:
		content = m.eventsModel.View()
	case SceneOptimize:
		content = m.optimizeModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	contentHeight := m.height - 4 // title (2) + status (1) + padding (1)

	contentContainer := lipgloss.NewStyle().
		Height(contentHeight).
		Render(content)

	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	))
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("GravityLess - Personal Finance")

	crumb := m.currentScene.String()
	if m.snapshot != nil && m.snapshot.Config.Owner != "" {
		crumb = fmt.Sprintf("%s / %s", m.snapshot.Config.Owner, crumb)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("h", "overview"),
		formatShortcut("i", "income"),
		formatShortcut("e", "events"),
		formatShortcut("o", "optimize"),
		formatShortcut("c", "compare"),
		formatShortcut("r", "reload"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}

	statusText := strings.Join(shortcuts, " • ")

	if m.snapshot != nil {
		asOf := SubtitleStyle.Render("as of " + m.snapshot.Now.Format("2006-01-02"))
		width := m.width - lipgloss.Width(statusText) - lipgloss.Width(asOf) - 2
		statusText = statusText + strings.Repeat(" ", max(0, width)) + asOf
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders the spinner and loading message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return m.renderApp(BorderStyle.Render(m.spinner.View() + " " + message))
}

// renderError renders an error message
func (m Model) renderError() string {
	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue, r to reload", m.err.Error()),
	)
	return m.renderApp(content)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	rows := [][2]string{
		{"h", "Overview: totals, budget, goals and crossover"},
		{"i", "Income sources and their metrics"},
		{"e", "Upcoming payouts and maturities"},
		{"o", "Efficiency ranking and surplus allocation"},
		{"c", "What-if comparison against templates"},
		{"r", "Reload the portfolio file"},
		{"?", "Show this help"},
		{"esc", "Go back"},
		{"q/ctrl+c", "Quit"},
		{"", ""},
		{"↑/↓ j/k", "Move through lists"},
		{"enter", "Select; on Income shows the source's events"},
		{"space/x", "Toggle a template on Compare"},
		{"+/-", "Widen or narrow the event window"},
		{"a", "Enter an amount on Optimize, all sources on Events"},
		{"tab", "Next allocation strategy"},
		{"g", "Toggle the crossover chart on Overview"},
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, r := range rows {
		if r[0] == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(HelpKeyStyle.Width(10).Render(r[0]))
		b.WriteString(" ")
		b.WriteString(HelpDescStyle.Render(r[1]))
		b.WriteString("\n")
	}
	return BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}
