package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/gravityless/internal/compare"
	"github.com/rgehrsitz/gravityless/internal/transform"
	"github.com/rgehrsitz/gravityless/internal/tui/tuimsg"
	"github.com/rgehrsitz/gravityless/internal/tui/tuistyles"
)

// CompareModel picks what-if templates and shows them against the current portfolio
type CompareModel struct {
	registry    *transform.TemplateRegistry
	names       []string
	selected    map[int]bool
	cursorIndex int
	result      *compare.ComparisonSet
	comparing   bool
	width       int
	height      int
}

// NewCompareModel creates a compare scene over the built-in templates
func NewCompareModel() *CompareModel {
	registry := transform.CreateBuiltInTemplates()
	return &CompareModel{
		registry: registry,
		names:    registry.List(),
		selected: make(map[int]bool),
	}
}

// SetResult stores a finished comparison
func (m *CompareModel) SetResult(set *compare.ComparisonSet) {
	m.result = set
	m.comparing = false
}

// Fail ends a running comparison without a result
func (m *CompareModel) Fail() {
	m.comparing = false
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedTemplates returns the chosen template names in list order
func (m *CompareModel) SelectedTemplates() []string {
	var out []string
	for i, name := range m.names {
		if m.selected[i] {
			out = append(out, name)
		}
	}
	return out
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.cursorIndex > 0 {
			m.cursorIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.cursorIndex < len(m.names)-1 {
			m.cursorIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys(" ", "x"))):
		m.selected[m.cursorIndex] = !m.selected[m.cursorIndex]
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		templates := m.SelectedTemplates()
		if len(templates) == 0 || m.comparing {
			return m, nil
		}
		m.comparing = true
		return m, func() tea.Msg { return tuimsg.ComparisonStartedMsg{Templates: templates} }
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("c"))):
		m.selected = make(map[int]bool)
		m.result = nil
	}
	return m, nil
}

// View renders the compare scene
func (m *CompareModel) View() string {
	selection := m.renderSelection()
	if m.comparing {
		return selection + "\n\n" + tuistyles.InfoStyle.Render("Comparing...")
	}
	if m.result == nil {
		return selection
	}

	table := (&compare.TableFormatter{}).Format(m.result)
	return lipgloss.JoinVertical(lipgloss.Left, selection, "", table)
}

func (m *CompareModel) renderSelection() string {
	var content strings.Builder

	content.WriteString(tuistyles.TitleStyle.Render("What-If Templates"))
	content.WriteString("\n")
	content.WriteString(tuistyles.HelpDescStyle.Render("↑/↓ navigate • space/x select • enter compare • c clear"))
	content.WriteString("\n\n")

	for i, name := range m.names {
		cursor := "  "
		nameStyle := tuistyles.UnselectedItemStyle
		if i == m.cursorIndex {
			cursor = "❯ "
			nameStyle = tuistyles.SelectedItemStyle
		}
		box := "[ ] "
		if m.selected[i] {
			box = "[✓] "
		}

		line := cursor + box + nameStyle.Render(name)
		if t, ok := m.registry.Get(name); ok && t.Description != "" {
			line += tuistyles.HelpDescStyle.Render(" - " + t.Description)
		}
		content.WriteString(line)
		content.WriteString("\n")
	}

	n := len(m.SelectedTemplates())
	content.WriteString("\n")
	if n == 0 {
		content.WriteString(tuistyles.HelpDescStyle.Render("Select at least one template"))
	} else {
		content.WriteString(tuistyles.MetricPositiveStyle.Render(fmt.Sprintf("%d selected", n)))
	}
	return content.String()
}
