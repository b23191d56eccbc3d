package canvas

// mergeJunctions looks up how an existing box-drawing character combines
// with a newly drawn one, keyed first by the existing cell's glyph. Pairs
// not named in the table fall back to keeping the existing glyph: this is
// the identical behavior the original line-drawing code relies on when two
// lines simply touch without forming a corner.
func mergeJunctions(c1, c2 string) string {
	table, ok := junctionTable[c1]
	if !ok {
		return c1
	}
	if merged, ok := table[c2]; ok {
		return merged
	}
	return c1
}

var junctionTable = map[string]map[string]string{
	"─": {
		"│": "┼", "┌": "┬", "┐": "┬", "└": "┴", "┘": "┴",
		"├": "┼", "┤": "┼", "┬": "┬", "┴": "┴",
	},
	"│": {
		"─": "┼", "┌": "├", "┐": "┤", "└": "├", "┘": "┤",
		"├": "├", "┤": "┤", "┬": "┼", "┴": "┼",
	},
	"┌": {
		"─": "┬", "│": "├", "┐": "┬", "└": "├", "┘": "┼",
		"├": "├", "┤": "┼", "┬": "┬", "┴": "┼",
	},
	"┐": {
		"─": "┬", "│": "┤", "┌": "┬", "└": "┼", "┘": "┤",
		"├": "┼", "┤": "┤", "┬": "┬", "┴": "┼",
	},
	"└": {
		"─": "┴", "│": "├", "┌": "├", "┐": "┼", "┘": "┴",
		"├": "├", "┤": "┼", "┬": "┼", "┴": "┴",
	},
	"┘": {
		"─": "┴", "│": "┤", "┌": "┼", "┐": "┤", "└": "┴",
		"├": "┼", "┤": "┤", "┬": "┼", "┴": "┴",
	},
	"├": {
		"─": "┼", "│": "├", "┌": "├", "┐": "┼", "└": "├",
		"┘": "┼", "┤": "┼", "┬": "┼", "┴": "┼",
	},
	"┤": {
		"─": "┼", "│": "┤", "┌": "┼", "┐": "┤", "└": "┼",
		"┘": "┤", "├": "┼", "┬": "┼", "┴": "┼",
	},
	"┬": {
		"─": "┬", "│": "┼", "┌": "┬", "┐": "┬", "└": "┼",
		"┘": "┼", "├": "┼", "┤": "┼", "┴": "┼",
	},
	"┴": {
		"─": "┴", "│": "┼", "┌": "┼", "┐": "┼", "└": "┴",
		"┘": "┴", "├": "┼", "┤": "┼", "┬": "┼",
	},
}

func isJunctionChar(c string) bool {
	switch c {
	case "─", "│", "┌", "┐", "└", "┘", "├", "┤", "┬", "┴", "┼", "╴", "╵", "╶", "╷":
		return true
	}
	return false
}

// junctionDirs reports which of the four cardinal arms a box-drawing glyph
// extends: (up, down, left, right).
func junctionDirs(c string) (up, down, left, right bool) {
	switch c {
	case "─":
		return false, false, true, true
	case "│":
		return true, true, false, false
	case "┌":
		return false, true, false, true
	case "┐":
		return false, true, true, false
	case "└":
		return true, false, false, true
	case "┘":
		return true, false, true, false
	case "├":
		return true, true, false, true
	case "┤":
		return true, true, true, false
	case "┬":
		return false, true, true, true
	case "┴":
		return true, false, true, true
	case "┼":
		return true, true, true, true
	case "╴":
		return false, false, true, false
	case "╵":
		return true, false, false, false
	case "╶":
		return false, false, false, true
	case "╷":
		return false, true, false, false
	default:
		return false, false, false, false
	}
}

// junctionFromDirs maps a set of arms back to a glyph: two or more arms give
// the glyph with exactly those arms, a single arm gives the full horizontal
// or vertical line along that axis (not a one-armed stub), and no arms give
// a blank.
func junctionFromDirs(up, down, left, right bool) string {
	switch {
	case up && down && left && right:
		return "┼"
	case up && down && left && !right:
		return "┤"
	case up && down && !left && right:
		return "├"
	case up && !down && left && right:
		return "┴"
	case !up && down && left && right:
		return "┬"
	case !up && down && !left && right:
		return "┌"
	case !up && down && left && !right:
		return "┐"
	case up && !down && !left && right:
		return "└"
	case up && !down && left && !right:
		return "┘"
	case up && down && !left && !right:
		return "│"
	case !up && !down && left && right:
		return "─"
	case up && !down && !left && !right:
		return "│"
	case !up && down && !left && !right:
		return "│"
	case !up && !down && left && !right:
		return "─"
	case !up && !down && !left && right:
		return "─"
	default:
		return " "
	}
}
