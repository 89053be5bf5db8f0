package chat

import (
	"fmt"
	"strings"

	"github.com/ironsheep/captmoose/internal/moose"
)

// mIRC control characters.
const (
	ircBold  = "\x02"
	ircColor = "\x03"
)

// Block is the character drawn for a painted cell.
const Block = "@"

// Token is the display form of one cell.
type Token struct {
	Color moose.Color
	Text  string
}

// Line is one rendered row.
type Line []Token

// String joins the tokens of the line.
func (l Line) String() string {
	var b strings.Builder
	for _, t := range l {
		b.WriteString(t.Text)
	}
	return b.String()
}

// RenderIRC maps every cell to an IRC token. Transparent cells become a
// single space; every other cell is a Block whose foreground and
// background are both the swatch's mIRC colour, so it shows as a solid
// square.
func RenderIRC(p *moose.Palette, rows [][]moose.Color) []Line {
	lines := make([]Line, len(rows))
	for y, row := range rows {
		line := make(Line, len(row))
		for x, c := range row {
			line[x] = Token{Color: c, Text: ircToken(p, c)}
		}
		lines[y] = line
	}
	return lines
}

// Strings converts rendered lines to the strings sent to the channel.
func Strings(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

func ircToken(p *moose.Palette, c moose.Color) string {
	if c == p.Transparent() {
		return " "
	}
	s, ok := p.Swatch(c)
	if !ok {
		return " "
	}
	return fmt.Sprintf("%s%02d,%02d%s%s", ircColor, s.IRC, s.IRC, Block, ircColor)
}

// Colorize wraps text in an mIRC foreground colour.
func Colorize(code int, text string) string {
	return fmt.Sprintf("%s%02d%s%s", ircColor, code, text, ircColor)
}

// Bold wraps text in mIRC bold.
func Bold(text string) string {
	return ircBold + text + ircBold
}

// StripFormatting removes mIRC bold and colour codes from s.
func StripFormatting(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ircBold[0]:
			continue
		case ircColor[0]:
			// skip up to two foreground digits and an optional ,NN background
			i = skipDigits(s, i+1) - 1
			if i+1 < len(s) && s[i+1] == ',' && i+2 < len(s) && isDigit(s[i+2]) {
				i = skipDigits(s, i+2) - 1
			}
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func skipDigits(s string, i int) int {
	for n := 0; n < 2 && i < len(s) && isDigit(s[i]); n++ {
		i++
	}
	return i
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
