package formatter

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Styles by role on the board.
var (
	StyleDim      = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg       = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader   = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold     = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleBadge    = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleSelected = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	StyleImage    = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleError    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleSuccess  = lipgloss.NewStyle().Foreground(ColorGreen)
)

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// Error renders an inline "Error: ..." line.
func Error(err error) string {
	return StyleError.Render("Error: " + err.Error())
}

// OrderBadge renders a column or task ordinal as "#n".
func OrderBadge(ordinal int) string {
	return StyleBadge.Render(fmt.Sprintf("#%d", ordinal))
}

// Success renders a confirmation line such as "✔ Created board Roadmap".
func Success(text string) string {
	return StyleSuccess.Render("✔ ") + text
}
