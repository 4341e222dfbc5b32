package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the styles of the viewer chrome around the arena.
type Theme struct {
	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	PanelText   lipgloss.Style
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	Help        lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		PanelText:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),

		TableHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("240")),
		TableCell: lipgloss.NewStyle().Foreground(lipgloss.Color("46")),

		Help: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without color.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.PanelTitle = lipgloss.NewStyle().Bold(true)
	theme.TableHeader = theme.TableHeader.Foreground(lipgloss.Color("255"))
	theme.TableCell = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	return theme
}
