package source_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/mermaidterm/internal/source"
)

func TestSplitLines(t *testing.T) {
	tests := map[string]struct {
		in   string
		want []string
	}{
		"RealNewlines": {
			in:   "a\nb\nc",
			want: []string{"a", "b", "c"},
		},
		"LiteralBackslashN": {
			in:   `a\nb\nc`,
			want: []string{"a", "b", "c"},
		},
		"Mixed": {
			in:   "a\nb\\nc",
			want: []string{"a", "b", "c"},
		},
		"Single": {
			in:   "a",
			want: []string{"a"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := source.SplitLines(test.in)

			assert.EqualValuesf(t, got, test.want, "SplitLines(%q)", test.in)
		})
	}
}

func TestRemoveComments(t *testing.T) {
	tests := map[string]struct {
		in   []string
		want []string
	}{
		"NoComments": {
			in:   []string{"A-->B", "B-->C"},
			want: []string{"A-->B", "B-->C"},
		},
		"WholeLineComment": {
			in:   []string{"A-->B", "%% a note", "B-->C"},
			want: []string{"A-->B", "B-->C"},
		},
		"TrailingComment": {
			in:   []string{"A-->B %% inline note"},
			want: []string{"A-->B"},
		},
		"BlankLines": {
			in:   []string{"A-->B", "  ", "B-->C"},
			want: []string{"A-->B", "B-->C"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := source.RemoveComments(test.in)

			assert.EqualValuesf(t, got, test.want, "RemoveComments(%v)", test.in)
		})
	}
}
