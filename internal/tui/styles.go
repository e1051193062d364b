package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // Cyan, focus
	colorAccent  = lipgloss.Color("#FFD700") // Gold, selected link
	colorDanger  = lipgloss.Color("#FF5252") // Red, errors
	colorMuted   = lipgloss.Color("#636363") // Gray, frames
	colorText    = lipgloss.Color("#EEEEEE") // Off-white, text
	colorLink    = lipgloss.Color("#5B8DEF") // Blue, links
	colorSurface = lipgloss.Color("#1E1E2E") // Dark, status bar
	colorGhost   = lipgloss.Color("#B388FF") // Violet, ghost panels
)

var (
	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	stylePanelFocused = stylePanel.
				BorderForeground(colorPrimary)

	stylePanelGhost = stylePanel.
			BorderForeground(colorGhost)

	styleTitle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	styleSource = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	styleLink = lipgloss.NewStyle().
			Foreground(colorLink).
			Underline(true)

	styleLinkSelected = lipgloss.NewStyle().
				Foreground(colorSurface).
				Background(colorAccent).
				Bold(true)

	stylePlaceholder = lipgloss.NewStyle().
				Foreground(colorMuted).
				Background(lipgloss.Color("#2A2A3C")).
				Padding(0, 1)

	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorText).
			Padding(0, 1)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)
)
