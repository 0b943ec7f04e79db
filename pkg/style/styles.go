package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#fafafa"}).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6c6c6c", Dark: "#8a8a8a"})

	PathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#005f87", Dark: "#5fafd7"}).
			Italic(true)

	SourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#005f00", Dark: "#87d787"}).
			Bold(true)

	DuplicateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#875f00", Dark: "#d7af5f"})

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#af0000", Dark: "#ff5f5f"}).
			Bold(true)
)
