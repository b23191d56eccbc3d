package sequence

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/teleivo/mermaidterm/config"
)

// boxChars is the glyph set a sequence diagram is rendered with. Unlike the
// graph renderer's canvas-overlay glyphs, sequence rendering builds each
// line as a string directly, so its own small glyph table lives here rather
// than in internal/canvas.
type boxChars struct {
	topLeft, topRight       rune
	bottomLeft, bottomRight rune
	horizontal, vertical    rune
	teeDown, teeRight       rune
	teeLeft, cross          rune
	arrowRight, arrowLeft   rune
	solidLine, dottedLine   rune
	selfTopRight, selfBot   rune
}

var asciiChars = boxChars{
	topLeft: '+', topRight: '+', bottomLeft: '+', bottomRight: '+',
	horizontal: '-', vertical: '|',
	teeDown: '+', teeRight: '+', teeLeft: '+', cross: '+',
	arrowRight: '>', arrowLeft: '<',
	solidLine: '-', dottedLine: '.',
	selfTopRight: '+', selfBot: '+',
}

var unicodeChars = boxChars{
	topLeft: '┌', topRight: '┐', bottomLeft: '└', bottomRight: '┘',
	horizontal: '─', vertical: '│',
	teeDown: '┬', teeRight: '├', teeLeft: '┤', cross: '┼',
	arrowRight: '►', arrowLeft: '◄',
	solidLine: '─', dottedLine: '┈',
	selfTopRight: '┐', selfBot: '┘',
}

const (
	defaultSelfMessageWidth = 4
	defaultMessageSpacing   = 1
	defaultParticipantSpc   = 5
	boxPaddingLeftRight     = 2
	minBoxWidth             = 3
	boxBorderWidth          = 2
	labelLeftMargin         = 2
	labelBufferSpace        = 10
)

type diagramLayout struct {
	participantWidths  []int
	participantCenters []int
	totalWidth         int
	messageSpacing     int
	selfMessageWidth   int
}

// displayWidth approximates terminal display width as a rune count. No
// library in the dependency pack computes East-Asian-aware display width,
// so this treats every rune as one column, matching the ASCII-centric
// diagrams this renderer targets.
func displayWidth(s string) int {
	return utf8.RuneCountInString(s)
}

func calculateLayout(m Model, cfg config.Config) diagramLayout {
	participantSpacing := cfg.SequenceParticipantSpacing
	if participantSpacing <= 0 {
		participantSpacing = defaultParticipantSpc
	}

	widths := make([]int, len(m.Participants))
	for i, p := range m.Participants {
		w := displayWidth(p.Label) + boxPaddingLeftRight
		if w < minBoxWidth {
			w = minBoxWidth
		}
		widths[i] = w
	}

	centers := make([]int, len(m.Participants))
	currentX := 0
	for i, w := range widths {
		boxWidth := w + boxBorderWidth
		if i == 0 {
			centers[i] = boxWidth / 2
			currentX = boxWidth
		} else {
			currentX += participantSpacing
			centers[i] = currentX + boxWidth/2
			currentX += boxWidth
		}
	}

	last := len(m.Participants) - 1
	totalWidth := centers[last] + (widths[last]+boxBorderWidth)/2

	messageSpacing := cfg.SequenceMessageSpacing
	if messageSpacing <= 0 {
		messageSpacing = defaultMessageSpacing
	}
	selfMessageWidth := cfg.SequenceSelfMessageWidth
	if selfMessageWidth <= 0 {
		selfMessageWidth = defaultSelfMessageWidth
	}

	return diagramLayout{
		participantWidths:  widths,
		participantCenters: centers,
		totalWidth:         totalWidth,
		messageSpacing:     messageSpacing,
		selfMessageWidth:   selfMessageWidth,
	}
}

// Render rasterizes a parsed sequenceDiagram into a block of text.
func Render(m Model, cfg config.Config) (string, error) {
	if len(m.Participants) == 0 {
		return "", fmt.Errorf("no participants")
	}

	chars := unicodeChars
	if cfg.UseASCII {
		chars = asciiChars
	}
	layout := calculateLayout(m, cfg)

	var lines []string

	lines = append(lines, buildLine(m, layout, func(i int) string {
		w := layout.participantWidths[i]
		return string(chars.topLeft) + strings.Repeat(string(chars.horizontal), w) + string(chars.topRight)
	}))

	lines = append(lines, buildLine(m, layout, func(i int) string {
		w := layout.participantWidths[i]
		label := m.Participants[i].Label
		labelLen := displayWidth(label)
		pad := (w - labelLen) / 2
		if pad < 0 {
			pad = 0
		}
		rightPad := w - pad - utf8.RuneCountInString(label)
		if rightPad < 0 {
			rightPad = 0
		}
		return string(chars.vertical) + strings.Repeat(" ", pad) + label + strings.Repeat(" ", rightPad) + string(chars.vertical)
	}))

	lines = append(lines, buildLine(m, layout, func(i int) string {
		w := layout.participantWidths[i]
		left := w / 2
		right := w - left - 1
		return string(chars.bottomLeft) + strings.Repeat(string(chars.horizontal), left) +
			string(chars.teeDown) + strings.Repeat(string(chars.horizontal), right) + string(chars.bottomRight)
	}))

	for _, msg := range m.Messages {
		for i := 0; i < layout.messageSpacing; i++ {
			lines = append(lines, buildLifeline(layout, chars))
		}
		if msg.From == msg.To {
			lines = append(lines, renderSelfMessage(msg, layout, chars)...)
		} else {
			lines = append(lines, renderMessage(msg, layout, chars)...)
		}
	}

	lines = append(lines, buildLifeline(layout, chars))

	return strings.Join(lines, "\n") + "\n", nil
}

func buildLine(m Model, layout diagramLayout, draw func(i int) string) string {
	var out strings.Builder
	for i := range m.Participants {
		boxWidth := layout.participantWidths[i] + boxBorderWidth
		left := layout.participantCenters[i] - boxWidth/2
		currentWidth := displayWidth(out.String())
		needed := left - currentWidth
		if needed > 0 {
			out.WriteString(strings.Repeat(" ", needed))
		}
		out.WriteString(draw(i))
	}
	return out.String()
}

func buildLifeline(layout diagramLayout, chars boxChars) string {
	line := make([]rune, layout.totalWidth+1)
	for i := range line {
		line[i] = ' '
	}
	for _, center := range layout.participantCenters {
		if center < len(line) {
			line[center] = chars.vertical
		}
	}
	return rtrim(line)
}

func renderMessage(msg Message, layout diagramLayout, chars boxChars) []string {
	var lines []string
	from := layout.participantCenters[msg.From]
	to := layout.participantCenters[msg.To]

	label := msg.Label
	if msg.Number > 0 {
		label = fmt.Sprintf("%d. %s", msg.Number, label)
	}

	if label != "" {
		start := min(from, to) + labelLeftMargin
		labelWidth := displayWidth(label)
		line := []rune(buildLifeline(layout, chars))
		needed := start + labelWidth + labelBufferSpace
		line = ensureLen(line, needed)
		col := start
		if col < 0 {
			col = 0
		}
		for _, ch := range label {
			if col < len(line) {
				line[col] = ch
				col++
			}
		}
		lines = append(lines, rtrim(line))
	}

	line := []rune(buildLifeline(layout, chars))
	style := chars.solidLine
	if msg.ArrowType == Dotted {
		style = chars.dottedLine
	}

	if from < to {
		line[from] = chars.teeRight
		for i := from + 1; i < to; i++ {
			line[i] = style
		}
		if to-1 >= 0 {
			line[to-1] = chars.arrowRight
		}
		line[to] = chars.vertical
	} else {
		line[to] = chars.vertical
		line[to+1] = chars.arrowLeft
		for i := to + 2; i < from; i++ {
			line[i] = style
		}
		line[from] = chars.teeLeft
	}
	lines = append(lines, rtrim(line))
	return lines
}

func renderSelfMessage(msg Message, layout diagramLayout, chars boxChars) []string {
	var lines []string
	center := layout.participantCenters[msg.From]
	width := layout.selfMessageWidth

	label := msg.Label
	if msg.Number > 0 {
		label = fmt.Sprintf("%d. %s", msg.Number, label)
	}

	fullWidth := layout.totalWidth + width + 1

	if label != "" {
		line := ensureLen([]rune(buildLifeline(layout, chars)), fullWidth)
		start := center + labelLeftMargin
		labelWidth := displayWidth(label)
		line = ensureLen(line, start+labelWidth+labelBufferSpace)
		col := start
		for _, ch := range label {
			if col < len(line) {
				line[col] = ch
				col++
			}
		}
		lines = append(lines, rtrim(line))
	}

	l1 := ensureLen([]rune(buildLifeline(layout, chars)), fullWidth)
	l1[center] = chars.teeRight
	for i := 1; i < width; i++ {
		l1[center+i] = chars.horizontal
	}
	l1[center+width-1] = chars.selfTopRight
	lines = append(lines, rtrim(l1))

	l2 := ensureLen([]rune(buildLifeline(layout, chars)), fullWidth)
	l2[center+width-1] = chars.vertical
	lines = append(lines, rtrim(l2))

	l3 := ensureLen([]rune(buildLifeline(layout, chars)), fullWidth)
	l3[center] = chars.vertical
	l3[center+1] = chars.arrowLeft
	for i := 2; i < width-1; i++ {
		l3[center+i] = chars.horizontal
	}
	l3[center+width-1] = chars.selfBot
	lines = append(lines, rtrim(l3))

	return lines
}

func ensureLen(line []rune, width int) []rune {
	if len(line) < width {
		grown := make([]rune, width)
		copy(grown, line)
		for i := len(line); i < width; i++ {
			grown[i] = ' '
		}
		return grown
	}
	return line
}

func rtrim(line []rune) string {
	end := len(line)
	for end > 0 && line[end-1] == ' ' {
		end--
	}
	return string(line[:end])
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
