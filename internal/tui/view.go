package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
)

const title = "Fading Tic-Tac-Toe"

const countdownWidth = 5

const rules = `Marks fade and then vanish a few seconds after they are placed.
Line up three of your marks before they disappear.
Too many moves without a winner, or the round clock running out, ends in a draw.`

func (m Model) View() string {
	var screen string

	switch m.overlay {
	case overlayHelp:
		screen = OverlayStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			TitleStyle.Render("How to play"),
			"",
			InfoStyle.Render(rules),
			"",
			m.help.FullHelpView(m.keys.FullHelp()),
		))
	case overlayResult:
		screen = OverlayStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			TitleStyle.Render(m.result),
			"",
			HintStyle.Render("esc to close"),
		))
	default:
		screen = m.gameView()
	}

	if m.width == 0 || m.height == 0 {
		return screen
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, screen)
}

func (m Model) gameView() string {
	game := m.game

	timerStyle := TimerStyle
	if game.LowTime {
		timerStyle = TimerLowStyle
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		InfoStyle.Render("Mode: "+string(game.Mode)),
		"   ",
		timerStyle.Render(game.RoundClock()),
	)

	status := fmt.Sprintf("Player %s's turn", renderMark(game.Turn, false))
	if game.IsFinished() {
		status = "Round over"
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		TitleStyle.Render(title),
		header,
		"",
		boardView(game),
		"",
		InfoStyle.Render(status),
		InfoStyle.Render(game.Scores.String()),
		"",
		m.help.ShortHelpView(m.keys.ShortHelp()),
	)
}

func boardView(game *entity.Game) string {
	winning := make(map[int]bool, len(game.WinningLine))
	for _, cell := range game.WinningLine {
		winning[cell] = true
	}

	rows := make([]string, 0, 3)
	for row := 0; row < 3; row++ {
		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			i := row*3 + col

			content := HintStyle.Render(strconv.Itoa(i+1)) + "\n"
			if game.Board[i] != entity.EmptyCell {
				content = renderMark(game.Board[i], game.Fading[i]) + "\n" +
					countdownBar(game.Countdown[i], game.Fading[i])
			}

			style := CellStyle
			if winning[i] {
				style = WinCellStyle
			}

			cells = append(cells, style.Render(content))
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return strings.Join(rows, "\n")
}

func renderMark(mark string, fading bool) string {
	switch {
	case fading:
		return FadingStyle.Render(mark)
	case mark == entity.PlayerX:
		return MarkXStyle.Render(mark)
	case mark == entity.PlayerO:
		return MarkOStyle.Render(mark)
	default:
		return mark
	}
}

// countdownBar shrinks with the current decay phase, rounding up so a mark
// that is still on the board always shows at least one segment.
func countdownBar(countdown entity.Countdown, fading bool) string {
	filled := 0
	if countdown.TotalMS > 0 {
		filled = int((countdown.LeftMS*countdownWidth + countdown.TotalMS - 1) / countdown.TotalMS)
		filled = min(max(filled, 0), countdownWidth)
	}

	style := CountdownStyle
	if fading {
		style = CountdownFadingStyle
	}

	return style.Render(strings.Repeat("━", filled)) + strings.Repeat(" ", countdownWidth-filled)
}
