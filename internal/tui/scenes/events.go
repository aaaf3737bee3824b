package scenes

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/rgehrsitz/gravityless/internal/events"
	"github.com/rgehrsitz/gravityless/internal/tui/tuistyles"
)

const (
	windowStep = 15
	maxWindow  = 365
)

// EventsModel lists upcoming payouts and maturities inside an adjustable window
type EventsModel struct {
	sources  []domain.IncomeSource
	now      time.Time
	window   int
	sourceID string // empty shows every source
	list     []events.Event
	width    int
	height   int
}

// NewEventsModel creates a new events scene model
func NewEventsModel() *EventsModel {
	return &EventsModel{window: events.DefaultWindowDays}
}

// SetSources updates the sources events are drawn from
func (m *EventsModel) SetSources(sources []domain.IncomeSource, now time.Time, windowDays int) {
	m.sources = sources
	m.now = now
	if windowDays > 0 {
		m.window = windowDays
	}
	m.refresh()
}

// FilterSource restricts the list to one source; an empty ID clears the filter
func (m *EventsModel) FilterSource(id string) {
	m.sourceID = id
	m.refresh()
}

// Window returns the look-ahead in days
func (m *EventsModel) Window() int {
	return m.window
}

// Events returns the events currently shown
func (m *EventsModel) Events() []events.Event {
	return m.list
}

// SetSize updates the scene dimensions
func (m *EventsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *EventsModel) refresh() {
	sources := m.sources
	if m.sourceID != "" {
		sources = nil
		for _, src := range m.sources {
			if src.ID == m.sourceID {
				sources = append(sources, src)
			}
		}
	}
	m.list = events.Extract(sources, m.now, m.window)
}

// Update handles messages for the events scene
func (m *EventsModel) Update(msg tea.Msg) (*EventsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("+", "="))):
		m.window = min(maxWindow, m.window+windowStep)
		m.refresh()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("-", "_"))):
		m.window = max(1, m.window-windowStep)
		m.refresh()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("a"))):
		m.FilterSource("")
	}
	return m, nil
}

// View renders the events scene
func (m *EventsModel) View() string {
	var content strings.Builder

	title := fmt.Sprintf("Upcoming Events (next %d days)", m.window)
	if m.sourceID != "" {
		title += " for " + m.sourceName()
	}
	content.WriteString(tuistyles.TitleStyle.Render(title))
	content.WriteString("\n\n")

	if len(m.list) == 0 {
		content.WriteString(tuistyles.InfoStyle.Render("Nothing due."))
	} else {
		header := fmt.Sprintf("%-12s %-10s %-34s %14s %10s", "Date", "Type", "Title", "Amount", "Due")
		content.WriteString(tuistyles.TableHeaderStyle.Render(header))
		content.WriteString("\n")

		total := decimal.Zero
		for _, e := range m.list {
			style := tuistyles.TableCellStyle
			if e.Type == events.TypeMaturity {
				style = tuistyles.TableHighlightStyle
			}
			content.WriteString(style.Render(fmt.Sprintf("%-12s %-10s %-34s %14s %10s",
				e.Date.Format("2006-01-02"), e.Type, truncate(e.Title, 34),
				tuistyles.FormatCurrency(e.Amount), dueLabel(e.DaysUntil))))
			content.WriteString("\n")
			total = total.Add(e.Amount)
		}
		content.WriteString("\n")
		content.WriteString(tuistyles.MetricLabelStyle.Render("Total expected: "))
		content.WriteString(tuistyles.MetricValueStyle.Render(tuistyles.FormatCurrency(total)))
	}

	content.WriteString("\n\n")
	content.WriteString(tuistyles.HelpDescStyle.Render("+/- change window • a all sources"))
	return content.String()
}

func (m *EventsModel) sourceName() string {
	for _, src := range m.sources {
		if src.ID == m.sourceID {
			return src.Name
		}
	}
	return m.sourceID
}

func dueLabel(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	}
	return fmt.Sprintf("in %d days", days)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
