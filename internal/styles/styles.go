package styles

import "github.com/charmbracelet/lipgloss"

// Color constants
const (
	ColorAccent     = "205" // Magenta - titles, focused prompt labels
	ColorSuccess    = "171" // Purple - confirmations
	ColorError      = "196" // Red
	ColorKeyword    = "86"  // Cyan - SQL keywords
	ColorString     = "220" // Yellow - SQL strings
	ColorFaint      = "238" // Gray - help text
	ColorCellNormal = "252" // Light Gray - unfocused labels
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent))

	Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSuccess)).
		Bold(true)

	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorError)).
		Bold(true)

	Faint = lipgloss.NewStyle().
		Faint(true)

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorCellNormal))

	FocusedLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccent)).
			Bold(true)
)

// SQL syntax highlighting styles
var (
	SQLKeyword = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorKeyword)).
			Bold(true)

	SQLString = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorString))

	Marker = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)).
		Bold(true)
)

// InitAccent recolors the accent styles. An empty color keeps the default.
func InitAccent(color string) {
	if color == "" {
		return
	}
	accent := lipgloss.Color(color)
	Title = Title.Foreground(accent)
	FocusedLabel = FocusedLabel.Foreground(accent)
	Marker = Marker.Foreground(accent)
}
