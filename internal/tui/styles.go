package tui

import "github.com/charmbracelet/lipgloss"

var (
	cursorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))            // purple
	markStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))           // gray
	markSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true) // green
	dirStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true) // blue
	crumbStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	panelStyle        = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder())
)

// Size tint: hotter colors for bigger entries.
func sizeColorStyle(b int64) lipgloss.Style {
	const (
		MB = 1024 * 1024
		GB = 1024 * MB
	)
	switch {
	case b >= 8*GB:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("160")) // dark red
	case b >= 4*GB:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // light red
	case b >= 2*GB:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("208")) // orange
	case b >= 1*GB:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("226")) // yellow
	case b >= 256*MB:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("46")) // green
	case b >= 64*MB:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("250")) // light gray
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // dark gray
	}
}
