package sequence

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/teleivo/mermaidterm/internal/source"
)

const sequenceKeyword = "sequenceDiagram"

const (
	solidArrowSyntax  = "->>"
	dottedArrowSyntax = "-->>"
)

var (
	participantRe = regexp.MustCompile(`^\s*participant\s+(?:"([^"]+)"|(\S+))(?:\s+as\s+(.+))?$`)
	messageRe     = regexp.MustCompile(`^\s*(?:"([^"]+)"|([^\s\->]+))\s*(-->>|->>)\s*(?:"([^"]+)"|([^\s\->]+))\s*:\s*(.*)$`)
	autonumberRe  = regexp.MustCompile(`^\s*autonumber\s*$`)
)

// ParseError reports a single malformed line of sequence diagram source.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// IsSequenceDiagram reports whether input's first non-blank, non-comment
// line opens a sequenceDiagram block.
func IsSequenceDiagram(input string) bool {
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%%") {
			continue
		}
		return strings.HasPrefix(trimmed, sequenceKeyword)
	}
	return false
}

// Parse builds a Model from a sequenceDiagram block.
func Parse(input string) (Model, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Model{}, fmt.Errorf("empty input")
	}

	rawLines := source.SplitLines(input)
	lines := source.RemoveComments(rawLines)
	if len(lines) == 0 {
		return Model{}, fmt.Errorf("no content found")
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[0]), sequenceKeyword) {
		return Model{}, fmt.Errorf("expected %q keyword", sequenceKeyword)
	}

	var m Model
	participants := map[string]int{}

	for i, line := range lines[1:] {
		lineNo := i + 2
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if autonumberRe.MatchString(trimmed) {
			m.Autonumber = true
			continue
		}

		if caps := participantRe.FindStringSubmatch(trimmed); caps != nil {
			id := caps[2]
			if caps[1] != "" {
				id = caps[1]
			}
			label := caps[3]
			if label == "" {
				label = id
			}
			if _, exists := participants[id]; exists {
				return Model{}, &ParseError{lineNo, fmt.Sprintf("duplicate participant %q", id)}
			}
			p := Participant{
				ID:    id,
				Label: strings.Trim(label, `"`),
				Index: len(m.Participants),
			}
			participants[id] = p.Index
			m.Participants = append(m.Participants, p)
			continue
		}

		if caps := messageRe.FindStringSubmatch(trimmed); caps != nil {
			fromID := caps[2]
			if caps[1] != "" {
				fromID = caps[1]
			}
			arrow := caps[3]
			toID := caps[5]
			if caps[4] != "" {
				toID = caps[4]
			}
			label := strings.TrimSpace(caps[6])

			fromIdx := getOrInsertParticipant(fromID, &m, participants)
			toIdx := getOrInsertParticipant(toID, &m, participants)

			arrowType := Solid
			if arrow == dottedArrowSyntax {
				arrowType = Dotted
			}

			number := 0
			if m.Autonumber {
				number = len(m.Messages) + 1
			}

			m.Messages = append(m.Messages, Message{
				From:      fromIdx,
				To:        toIdx,
				Label:     label,
				ArrowType: arrowType,
				Number:    number,
			})
			continue
		}

		return Model{}, &ParseError{lineNo, fmt.Sprintf("invalid syntax: %q", trimmed)}
	}

	if len(m.Participants) == 0 {
		return Model{}, fmt.Errorf("no participants found")
	}

	return m, nil
}

func getOrInsertParticipant(id string, m *Model, participants map[string]int) int {
	if idx, ok := participants[id]; ok {
		return idx
	}
	idx := len(m.Participants)
	m.Participants = append(m.Participants, Participant{ID: id, Label: id, Index: idx})
	participants[id] = idx
	return idx
}
