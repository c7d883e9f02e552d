package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// faceletStyles colors each facelet letter like the sticker it stands
// for: white up, red right, green front, yellow down, orange left,
// blue back.
var faceletStyles = map[byte]lipgloss.Style{
	'U': lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	'R': lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	'F': lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	'D': lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	'L': lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	'B': lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
}

// RenderNet draws a 54-character facelet string as the usual unfolded
// cross: U on top, then L F R B side by side, then D underneath.
func RenderNet(facelets string) string {
	if len(facelets) != 54 {
		return facelets
	}

	row := func(base, r int) string {
		var sb strings.Builder
		for c := 0; c < 3; c++ {
			sticker := facelets[base+3*r+c]
			sb.WriteString(faceletStyles[sticker].Render(string(sticker)))
			sb.WriteByte(' ')
		}
		return sb.String()
	}

	var b strings.Builder
	pad := strings.Repeat(" ", 6)

	for r := 0; r < 3; r++ {
		b.WriteString(pad)
		b.WriteString(row(0, r))
		b.WriteString("\n")
	}
	for r := 0; r < 3; r++ {
		b.WriteString(row(36, r))
		b.WriteString(row(18, r))
		b.WriteString(row(9, r))
		b.WriteString(row(45, r))
		b.WriteString("\n")
	}
	for r := 0; r < 3; r++ {
		b.WriteString(pad)
		b.WriteString(row(27, r))
		b.WriteString("\n")
	}

	return b.String()
}
