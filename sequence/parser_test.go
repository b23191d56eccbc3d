package sequence

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func TestIsSequenceDiagram(t *testing.T) {
	tests := map[string]struct {
		in   string
		want bool
	}{
		"SequenceKeyword": {
			in:   "sequenceDiagram\nparticipant A",
			want: true,
		},
		"LeadingComment": {
			in:   "%% a comment\nsequenceDiagram\nparticipant A",
			want: true,
		},
		"GraphKeyword": {
			in:   "graph LR\nA-->B",
			want: false,
		},
		"Empty": {
			in:   "",
			want: false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := IsSequenceDiagram(test.in)
			assert.EqualValuesf(t, got, test.want, "IsSequenceDiagram(%q)", test.in)
		})
	}
}

func TestParse(t *testing.T) {
	tests := map[string]struct {
		in   string
		want Model
	}{
		"SimpleMessage": {
			in: "sequenceDiagram\nAlice->>Bob: hello",
			want: Model{
				Participants: []Participant{
					{ID: "Alice", Label: "Alice", Index: 0},
					{ID: "Bob", Label: "Bob", Index: 1},
				},
				Messages: []Message{
					{From: 0, To: 1, Label: "hello", ArrowType: Solid},
				},
			},
		},
		"ExplicitParticipantWithAlias": {
			in: "sequenceDiagram\nparticipant A as Alice\nparticipant B as Bob\nA-->>B: async",
			want: Model{
				Participants: []Participant{
					{ID: "A", Label: "Alice", Index: 0},
					{ID: "B", Label: "Bob", Index: 1},
				},
				Messages: []Message{
					{From: 0, To: 1, Label: "async", ArrowType: Dotted},
				},
			},
		},
		"Autonumber": {
			in: "sequenceDiagram\nautonumber\nA->>B: one\nB->>A: two",
			want: Model{
				Autonumber: true,
				Participants: []Participant{
					{ID: "A", Label: "A", Index: 0},
					{ID: "B", Label: "B", Index: 1},
				},
				Messages: []Message{
					{From: 0, To: 1, Label: "one", ArrowType: Solid, Number: 1},
					{From: 1, To: 0, Label: "two", ArrowType: Solid, Number: 2},
				},
			},
		},
		"SelfMessage": {
			in: "sequenceDiagram\nA->>A: think",
			want: Model{
				Participants: []Participant{{ID: "A", Label: "A", Index: 0}},
				Messages:     []Message{{From: 0, To: 0, Label: "think", ArrowType: Solid}},
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Parse(test.in)
			require.NoErrorf(t, err, "Parse(%q)", test.in)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", test.in, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"MissingKeyword":        "A->>B: hi",
		"Empty":                 "",
		"DuplicateParticipant":  "sequenceDiagram\nparticipant A\nparticipant A",
		"InvalidLine":           "sequenceDiagram\nthis is not valid",
		"NoParticipants":        "sequenceDiagram\n%% just a comment",
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(in)
			require.NotNil(t, err)
		})
	}
}
