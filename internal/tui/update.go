package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeScenes()
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case ReloadMsg:
		m.loading = true
		m.loadingMessage = "Reloading portfolio..."
		return m, tea.Batch(loadPortfolioCmd(m.configPath, m.now()), m.spinner.Tick)

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case PortfolioLoadedMsg:
		m.loading = false
		m.err = nil
		m.applySnapshot(msg)
		return m, nil

	case SourceSelectedMsg:
		m.eventsModel.FilterSource(msg.SourceID)
		m.previousScene = m.currentScene
		m.currentScene = SceneEvents
		return m, nil

	case ComparisonStartedMsg:
		if m.snapshot == nil {
			m.compareModel.Fail()
			return m, nil
		}
		return m, compareCmd(m.snapshot, msg.Templates)

	case ComparisonCompleteMsg:
		if msg.Err != nil {
			m.compareModel.Fail()
			m.err = msg.Err
			return m, nil
		}
		m.compareModel.SetResult(msg.Set)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateCurrentScene(msg)
}

func (m *Model) applySnapshot(msg PortfolioLoadedMsg) {
	snap := msg.Snapshot
	m.snapshot = snap
	m.overviewModel.SetSnapshot(snap)
	m.incomeModel.SetSources(snap.Sources)
	m.eventsModel.SetSources(snap.Config.Sources, snap.Now, snap.WindowDays)
	m.optimizeModel.SetScores(snap.Scores, snap.Suggestion)
	m.resizeScenes()
}

func (m *Model) resizeScenes() {
	h := m.height - 4
	m.overviewModel.SetSize(m.width, h)
	m.incomeModel.SetSize(m.width, h)
	m.eventsModel.SetSize(m.width, h)
	m.optimizeModel.SetSize(m.width, h)
	m.compareModel.SetSize(m.width, h)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// The amount field gets every key while it has focus
	if m.currentScene == SceneOptimize && m.optimizeModel.Editing() {
		return m.updateCurrentScene(msg)
	}

	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	targets := map[string]Scene{
		"h": SceneOverview,
		"i": SceneIncome,
		"e": SceneEvents,
		"o": SceneOptimize,
		"c": SceneCompare,
		"?": SceneHelp,
	}

	switch k := msg.String(); k {
	case "q":
		return m, tea.Quit

	case "r":
		return m, func() tea.Msg { return ReloadMsg{} }

	case "esc":
		if m.currentScene != SceneOverview {
			back := m.previousScene
			if back == m.currentScene {
				back = SceneOverview
			}
			return m, func() tea.Msg { return NavigateMsg{Scene: back} }
		}

	default:
		if scene, ok := targets[k]; ok && scene != m.currentScene {
			return m, func() tea.Msg { return NavigateMsg{Scene: scene} }
		}
	}

	// Let the current scene handle other keys
	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneOverview:
		m.overviewModel, cmd = m.overviewModel.Update(msg)
	case SceneIncome:
		m.incomeModel, cmd = m.incomeModel.Update(msg)
	case SceneEvents:
		m.eventsModel, cmd = m.eventsModel.Update(msg)
	case SceneOptimize:
		m.optimizeModel, cmd = m.optimizeModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}
