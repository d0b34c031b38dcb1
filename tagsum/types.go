package tagsum

import "fmt"

// Position represents a location in the scanned input.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// String returns a human-readable position.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Mode selects how numbers are aggregated.
type Mode uint8

const (
	// ModeAll sums every number regardless of structure.
	ModeAll Mode = iota
	// ModeExcluding drops every object that directly holds the sentinel word.
	ModeExcluding
)

// String returns the mode name used on the command line and in config files.
func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeExcluding:
		return "excluding"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "all", "":
		return ModeAll, nil
	case "excluding", "exclude":
		return ModeExcluding, nil
	default:
		return ModeAll, fmt.Errorf("unknown mode %q (valid: all, excluding)", s)
	}
}

// DefaultSentinel is the word that excludes an object when none is configured.
const DefaultSentinel = "red"
