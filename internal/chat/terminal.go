package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ironsheep/captmoose/internal/moose"
)

// cellText is two columns wide so cells look roughly square in a terminal.
const cellText = "  "

// RenderTerminal renders rows as lines of background-coloured blocks for an
// ANSI terminal. Colour output follows lipgloss's detection of the output
// profile, so piping to a file yields plain spaces.
func RenderTerminal(p *moose.Palette, rows [][]moose.Color) []string {
	styles := make(map[moose.Color]lipgloss.Style, p.Len())
	for i, s := range p.Swatches() {
		c := moose.Color(i)
		if c == p.Transparent() || s.Hex == "" {
			continue
		}
		styles[c] = lipgloss.NewStyle().Background(lipgloss.Color(s.Hex))
	}

	lines := make([]string, len(rows))
	for y, row := range rows {
		var b strings.Builder
		for _, c := range row {
			if style, ok := styles[c]; ok {
				b.WriteString(style.Render(cellText))
				continue
			}
			b.WriteString(cellText)
		}
		lines[y] = b.String()
	}
	return lines
}
