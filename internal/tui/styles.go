package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorFgPrimary = lipgloss.Color("#ABB2BF")
	ColorFgMuted   = lipgloss.Color("#636B78")
	ColorRed       = lipgloss.Color("#E06C75")
	ColorGreen     = lipgloss.Color("#98C379")
	ColorYellow    = lipgloss.Color("#E5C07B")
	ColorBlue      = lipgloss.Color("#61AFEF")
	ColorMagenta   = lipgloss.Color("#C678DD")
	ColorBorder    = lipgloss.Color("#3F4451")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	TimerStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	// TimerLowStyle is used once the round clock reaches the warning threshold
	TimerLowStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true).
			Blink(true)

	CellStyle = lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	WinCellStyle = CellStyle.
			BorderForeground(ColorYellow)

	MarkXStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	MarkOStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	FadingStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			Faint(true)

	// CountdownStyle draws the bar of a mark that has not started fading
	CountdownStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	CountdownFadingStyle = lipgloss.NewStyle().
				Foreground(ColorRed)

	HintStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMagenta).
			Padding(1, 3).
			Align(lipgloss.Center)
)
