package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/gravityless/internal/tui/tuistyles"
)

// Re-export styles from tuistyles to avoid import cycles
var (
	AppStyle       = tuistyles.AppStyle
	TitleStyle     = tuistyles.TitleStyle
	SubtitleStyle  = tuistyles.SubtitleStyle
	StatusBarStyle = tuistyles.StatusBarStyle
	StatusKeyStyle = tuistyles.StatusKeyStyle
	BorderStyle    = tuistyles.BorderStyle
	HelpKeyStyle   = tuistyles.HelpKeyStyle
	HelpDescStyle  = tuistyles.HelpDescStyle
	ErrorStyle     = tuistyles.ErrorStyle

	SpinnerStyle = lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true)
)
