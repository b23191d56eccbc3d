// Package sequence parses and renders the sequenceDiagram subset: ordered
// messages passed between named participant lifelines.
package sequence

// ArrowType selects the line style a message is drawn with.
type ArrowType int

const (
	Solid ArrowType = iota
	Dotted
)

func (a ArrowType) String() string {
	if a == Dotted {
		return "dotted"
	}
	return "solid"
}

// Participant is a single lifeline, identified by its source-level id and
// displayed under its label (equal to id unless renamed with "as").
type Participant struct {
	ID    string
	Label string
	Index int
}

// Message is one arrow between two participants, in source order.
type Message struct {
	From, To  int // indexes into Model.Participants
	Label     string
	ArrowType ArrowType
	Number    int // 1-based when autonumber is active, 0 otherwise
}

// Model is the parsed form of a sequenceDiagram block.
type Model struct {
	Participants []Participant
	Messages     []Message
	Autonumber   bool
}
