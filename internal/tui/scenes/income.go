package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/rgehrsitz/gravityless/internal/tui/components"
	"github.com/rgehrsitz/gravityless/internal/tui/tuimsg"
	"github.com/rgehrsitz/gravityless/internal/tui/tuistyles"
)

// IncomeModel lists income sources with a detail card for the selected one
type IncomeModel struct {
	sources       []domain.SourceMetrics
	cards         []*components.SourceCard
	selectedIndex int
	width         int
	height        int
}

// NewIncomeModel creates a new income scene model
func NewIncomeModel() *IncomeModel {
	return &IncomeModel{}
}

// SetSources updates the source list, keeping the selection when the same source is still present
func (m *IncomeModel) SetSources(sources []domain.SourceMetrics) {
	selected := m.SelectedSource()

	m.sources = sources
	m.cards = make([]*components.SourceCard, 0, len(sources))
	for _, sm := range sources {
		m.cards = append(m.cards, components.NewSourceCard(sm))
	}

	m.selectedIndex = 0
	for i, sm := range sources {
		if selected != "" && sm.Source.ID == selected {
			m.selectedIndex = i
		}
	}
}

// SetSize updates the scene dimensions
func (m *IncomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedSource returns the ID of the highlighted source
func (m *IncomeModel) SelectedSource() string {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.sources) {
		return m.sources[m.selectedIndex].Source.ID
	}
	return ""
}

// Update handles messages for the income scene
func (m *IncomeModel) Update(msg tea.Msg) (*IncomeModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < len(m.sources)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("g"))):
		m.selectedIndex = 0
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("G"))):
		m.selectedIndex = max(0, len(m.sources)-1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		id := m.SelectedSource()
		if id == "" {
			return m, nil
		}
		return m, func() tea.Msg { return tuimsg.SourceSelectedMsg{SourceID: id} }
	}
	return m, nil
}

// View renders the income scene
func (m *IncomeModel) View() string {
	var list strings.Builder
	list.WriteString(tuistyles.TitleStyle.Render(fmt.Sprintf("Income Sources (%d)", len(m.sources))))
	list.WriteString("\n\n")
	list.WriteString(components.SourceListCompact(m.cards, m.selectedIndex))
	list.WriteString("\n\n")
	list.WriteString(tuistyles.HelpDescStyle.Render("↑/↓ select • g/G top/bottom • enter focus"))

	if len(m.cards) == 0 {
		return list.String()
	}

	detail := m.cards[m.selectedIndex]
	detail.SetSelected(true)
	defer detail.SetSelected(false)

	left := lipgloss.NewStyle().Width(44).Render(list.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, detail.Render())
}
