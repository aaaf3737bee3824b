package tui

import (
	"github.com/rgehrsitz/gravityless/internal/tui/tuimsg"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneOverview Scene = iota
	SceneIncome
	SceneEvents
	SceneOptimize
	SceneCompare
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneOverview:
		return "Overview"
	case SceneIncome:
		return "Income"
	case SceneEvents:
		return "Events"
	case SceneOptimize:
		return "Optimize"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// QuitMsg signals the application should exit
type QuitMsg struct{}

// ReloadMsg re-reads the portfolio file from disk
type ReloadMsg struct{}

// Shared with scenes through tuimsg
type (
	ErrorMsg              = tuimsg.ErrorMsg
	PortfolioLoadedMsg    = tuimsg.PortfolioLoadedMsg
	SourceSelectedMsg     = tuimsg.SourceSelectedMsg
	ComparisonStartedMsg  = tuimsg.ComparisonStartedMsg
	ComparisonCompleteMsg = tuimsg.ComparisonCompleteMsg
)
