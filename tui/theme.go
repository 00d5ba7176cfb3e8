// tui/theme.go
package tui

import "github.com/charmbracelet/lipgloss"

// ANSI 256 color palette
var (
	colorAccent = lipgloss.Color("73")
	colorAmber  = lipgloss.Color("179")
	colorRed    = lipgloss.Color("167")
	colorGreen  = lipgloss.Color("71")

	colorFg  = lipgloss.Color("253")
	colorDim = lipgloss.Color("242")

	colorSelBg = lipgloss.Color("238")
	colorSelFg = lipgloss.Color("255")

	colorTableHdr = lipgloss.Color("245")
)

// Braille spinner frames
var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleDim      = lipgloss.NewStyle().Foreground(colorDim)
	styleFileName = lipgloss.NewStyle().Foreground(colorFg)
	styleSelected = lipgloss.NewStyle().Background(colorSelBg).Foreground(colorSelFg)
	styleTableHdr = lipgloss.NewStyle().Foreground(colorTableHdr).Bold(true)
	styleError    = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleWarn     = lipgloss.NewStyle().Foreground(colorAmber)
	styleOK       = lipgloss.NewStyle().Foreground(colorGreen)
	styleKey      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleSortTag  = lipgloss.NewStyle().Foreground(colorAccent).Underline(true)

	styleDetailBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

func renderSpinner(frame int) string {
	f := spinnerFrames[frame%len(spinnerFrames)]
	return lipgloss.NewStyle().Foreground(colorAccent).Render(f)
}
