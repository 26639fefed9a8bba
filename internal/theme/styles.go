package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/cc-orchestrator/internal/domain"
)

// Main UI styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)
)

// Status icon styles
var (
	ActiveIconStyle = lipgloss.NewStyle().
			Foreground(ColorActive)

	CreatingIconStyle = lipgloss.NewStyle().
				Foreground(ColorCreating)

	DetachedIconStyle = lipgloss.NewStyle().
				Foreground(ColorDetached)

	ErrorIconStyle = lipgloss.NewStyle().
			Foreground(ColorFailed)

	StoppedIconStyle = lipgloss.NewStyle().
				Foreground(ColorStopped)

	StoppingIconStyle = lipgloss.NewStyle().
				Foreground(ColorStopping)
)

// Table styles
var (
	CellStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeaderForeground).
			Background(ColorHeaderBackground).
			PaddingLeft(1).
			PaddingRight(1)

	OrphanStyle = lipgloss.NewStyle().
			Foreground(ColorOrphan).
			PaddingLeft(1).
			PaddingRight(1)
)

// Dialog header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorSpinner)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// StatusStyle returns the icon style for a session status
func StatusStyle(status domain.SessionStatus) lipgloss.Style {
	switch status {
	case domain.StatusActive:
		return ActiveIconStyle
	case domain.StatusCreating:
		return CreatingIconStyle
	case domain.StatusDetached:
		return DetachedIconStyle
	case domain.StatusError:
		return ErrorIconStyle
	case domain.StatusStopped:
		return StoppedIconStyle
	case domain.StatusStopping:
		return StoppingIconStyle
	default:
		return NormalStyle
	}
}

// RenderStatus renders the status symbol followed by its name
func RenderStatus(status domain.SessionStatus) string {
	return StatusStyle(status).Render(status.Symbol()) + " " + string(status)
}
