// Package config holds the rendering configuration shared by the graph and
// sequence renderers and the CLI that drives them.
package config

import "fmt"

// GraphDirection selects the axis flowchart nodes are laid out along.
type GraphDirection string

const (
	LeftToRight GraphDirection = "LR"
	TopDown     GraphDirection = "TD"
)

// StyleType selects how classDef colors are emitted.
type StyleType string

const (
	StyleCLI  StyleType = "cli"
	StyleHTML StyleType = "html"
)

// Config controls every tunable aspect of rendering. Zero value is not
// valid; use Default or New.
type Config struct {
	UseASCII   bool // restrict output to the ASCII glyph set
	ShowCoords bool // overlay grid/drawing coordinates for debugging
	Verbose    bool // enable diagnostic logging; never alters output

	BoxBorderPadding int // blank columns/rows inside a node box around its label
	PaddingBetweenX  int // minimum blank columns between adjacent grid columns
	PaddingBetweenY  int // minimum blank rows between adjacent grid rows

	GraphDirection GraphDirection
	StyleType      StyleType

	SequenceParticipantSpacing int // minimum blank columns between participant lifelines
	SequenceMessageSpacing     int // minimum blank rows between consecutive messages
	SequenceSelfMessageWidth   int // width of the loop-back stub drawn for a self message
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		UseASCII:                   false,
		ShowCoords:                 false,
		Verbose:                    false,
		BoxBorderPadding:           1,
		PaddingBetweenX:            5,
		PaddingBetweenY:            5,
		GraphDirection:             LeftToRight,
		StyleType:                  StyleCLI,
		SequenceParticipantSpacing: 5,
		SequenceMessageSpacing:     1,
		SequenceSelfMessageWidth:   4,
	}
}

// Error reports a single invalid Config field.
type Error struct {
	Field   string
	Value   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid config: %s = %s (%s)", e.Field, e.Value, e.Message)
}

// Validate checks every field's constraints, returning the first violation
// found.
func (c Config) Validate() error {
	if c.BoxBorderPadding < 0 {
		return &Error{"BoxBorderPadding", fmt.Sprint(c.BoxBorderPadding), "must be non-negative"}
	}
	if c.PaddingBetweenX < 0 {
		return &Error{"PaddingBetweenX", fmt.Sprint(c.PaddingBetweenX), "must be non-negative"}
	}
	if c.PaddingBetweenY < 0 {
		return &Error{"PaddingBetweenY", fmt.Sprint(c.PaddingBetweenY), "must be non-negative"}
	}
	if c.GraphDirection != LeftToRight && c.GraphDirection != TopDown {
		return &Error{"GraphDirection", string(c.GraphDirection), `must be "LR" or "TD"`}
	}
	if c.StyleType != StyleCLI && c.StyleType != StyleHTML {
		return &Error{"StyleType", string(c.StyleType), `must be "cli" or "html"`}
	}
	if c.SequenceParticipantSpacing < 0 {
		return &Error{"SequenceParticipantSpacing", fmt.Sprint(c.SequenceParticipantSpacing), "must be non-negative"}
	}
	if c.SequenceMessageSpacing < 0 {
		return &Error{"SequenceMessageSpacing", fmt.Sprint(c.SequenceMessageSpacing), "must be non-negative"}
	}
	if c.SequenceSelfMessageWidth < 2 {
		return &Error{"SequenceSelfMessageWidth", fmt.Sprint(c.SequenceSelfMessageWidth), "must be at least 2"}
	}
	return nil
}

// New builds the configuration the CLI exposes: the sequence-diagram
// spacing fields always take their defaults, since no flag in spec.md §6
// controls them.
func New(useASCII, showCoords, verbose bool, boxBorderPadding, paddingX, paddingY int, graphDirection GraphDirection) (Config, error) {
	defaults := Default()
	cfg := Config{
		UseASCII:                   useASCII,
		ShowCoords:                 showCoords,
		Verbose:                    verbose,
		BoxBorderPadding:           boxBorderPadding,
		PaddingBetweenX:            paddingX,
		PaddingBetweenY:            paddingY,
		GraphDirection:             graphDirection,
		StyleType:                  StyleCLI,
		SequenceParticipantSpacing: defaults.SequenceParticipantSpacing,
		SequenceMessageSpacing:     defaults.SequenceMessageSpacing,
		SequenceSelfMessageWidth:   defaults.SequenceSelfMessageWidth,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewTest builds a minimal configuration for tests that only care about the
// glyph set and style type.
func NewTest(useASCII bool, styleType StyleType) Config {
	cfg := Default()
	cfg.UseASCII = useASCII
	cfg.StyleType = styleType
	return cfg
}
