package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/rgehrsitz/gravityless/internal/tui/tuistyles"
)

// SourceCard displays one income source with its computed metrics
type SourceCard struct {
	Name       string
	Subtitle   string // type and category
	Highlights []string
	IsSelected bool
	Width      int
}

// NewSourceCard creates a card from a source and its metrics
func NewSourceCard(sm domain.SourceMetrics) *SourceCard {
	src, m := sm.Source, sm.Metrics
	card := &SourceCard{
		Name:     src.Name,
		Subtitle: fmt.Sprintf("%s • %s", m.Type, src.Category),
		Width:    50,
	}

	card.AddHighlight(fmt.Sprintf("Monthly %s", tuistyles.FormatCurrency(m.Monthly)))
	if m.Invested.IsPositive() {
		card.AddHighlight(fmt.Sprintf("Invested %s, now %s", tuistyles.FormatCurrency(m.Invested), tuistyles.FormatCurrency(m.Current)))
		card.AddHighlight(fmt.Sprintf("CAGR %s", tuistyles.FormatPercent(m.CAGR)))
	}
	if m.AccruedInterest.IsPositive() {
		card.AddHighlight(fmt.Sprintf("Accrued %s", tuistyles.FormatCurrency(m.AccruedInterest)))
	}
	if m.TDSCurrentFY.IsPositive() {
		card.AddHighlight(fmt.Sprintf("TDS this FY %s", tuistyles.FormatCurrency(m.TDSCurrentFY)))
	}
	if !m.MaturityDate.IsZero() {
		card.AddHighlight("Matures " + m.MaturityDate.Format("2006-01-02"))
	}
	return card
}

// AddHighlight adds a key metric line
func (s *SourceCard) AddHighlight(highlight string) *SourceCard {
	s.Highlights = append(s.Highlights, highlight)
	return s
}

// SetSelected marks the card as selected
func (s *SourceCard) SetSelected(selected bool) *SourceCard {
	s.IsSelected = selected
	return s
}

// WithWidth sets the card width
func (s *SourceCard) WithWidth(width int) *SourceCard {
	s.Width = width
	return s
}

// Render returns the bordered card
func (s *SourceCard) Render() string {
	var content strings.Builder

	content.WriteString(tuistyles.TitleStyle.Render(s.Name))
	content.WriteString("\n")
	if s.Subtitle != "" {
		content.WriteString(tuistyles.SubtitleStyle.Render(s.Subtitle))
		content.WriteString("\n")
	}

	if len(s.Highlights) > 0 {
		content.WriteString("\n")
		highlightStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)
		for _, h := range s.Highlights {
			content.WriteString(highlightStyle.Render("• " + h))
			content.WriteString("\n")
		}
	}

	border := tuistyles.ColorBorder
	if s.IsSelected {
		border = tuistyles.ColorPrimary
	}
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Width(s.Width)

	return cardStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// RenderCompact returns a single line with the name and first highlight
func (s *SourceCard) RenderCompact() string {
	line := s.Name
	if len(s.Highlights) > 0 {
		line += " " + tuistyles.HelpDescStyle.Render("• "+s.Highlights[0])
	}
	return line
}

// SourceListCompact renders a selectable list of cards
func SourceListCompact(cards []*SourceCard, selectedIndex int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No income sources")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		prefix := "  "
		style := tuistyles.UnselectedItemStyle
		if i == selectedIndex {
			prefix = "▸ "
			style = tuistyles.SelectedItemStyle
		}
		rendered[i] = style.Render(prefix + card.RenderCompact())
	}

	return strings.Join(rendered, "\n")
}
