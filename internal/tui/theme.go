package tui

import "github.com/charmbracelet/lipgloss"

// theme is the session palette. Toggling flips between dark and light and is
// not persisted; the next run starts from the configured default.
type theme struct {
	name   string
	title  lipgloss.Style
	row    lipgloss.Style
	done   lipgloss.Style
	cursor lipgloss.Style
	notice lipgloss.Style
	status lipgloss.Style
	errRow lipgloss.Style
}

func darkTheme() theme {
	return theme{
		name:   "dark",
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		row:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		done:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true),
		cursor: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		notice: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B7C3")),
		errRow: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func lightTheme() theme {
	return theme{
		name:   "light",
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		row:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")),
		done:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Strikethrough(true),
		cursor: lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		notice: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		errRow: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

func themeByName(name string) theme {
	if name == "light" {
		return lightTheme()
	}
	return darkTheme()
}
