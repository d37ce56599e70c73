package compose

import (
	"fmt"
	"strings"
)

// Kind discriminates expansion failures so callers and tests can assert on
// the class of error without parsing messages.
type Kind int

const (
	// UnknownChannelAlias means a channel name had no entry in the song's
	// channel alias table.
	UnknownChannelAlias Kind = iota + 1
	// UnknownInstrumentAlias means an instrument name had no entry in the
	// song's instrument alias table.
	UnknownInstrumentAlias
	// InvalidInstrument means a resolved instrument index was outside the
	// declared instrument list.
	InvalidInstrument
	// CellOutOfBounds means a resolved (row, channel) fell outside the
	// output grid.
	CellOutOfBounds
	// InvalidTime covers malformed time expressions: zero steps, beat
	// positions outside the timebase or the pattern, a missing timebase,
	// arithmetic overflow and stray step-mask characters.
	InvalidTime
	// TimeListLimit means a time expression resolved to more rows than
	// Limits.MaxTimeListLen allows.
	TimeListLimit
	// PatternStringLimit means a step-mask string was longer than
	// Limits.MaxPatternStringLen.
	PatternStringLimit
	// InvalidExpr covers semantic errors outside timing: missing harmony
	// context, unresolvable pitch tokens, malformed chords, references to
	// undefined patterns.
	InvalidExpr
	// RecursionLimit means the pattern reference chain grew beyond
	// Limits.MaxRecursionDepth, or revisited a pattern with cycle detection
	// enabled.
	RecursionLimit
	// CellCountLimit means one expansion wrote more cells than
	// Limits.MaxCellsPerPattern allows.
	CellCountLimit
)

var kindNames = map[Kind]string{
	UnknownChannelAlias:    "UnknownChannelAlias",
	UnknownInstrumentAlias: "UnknownInstrumentAlias",
	InvalidInstrument:      "InvalidInstrument",
	CellOutOfBounds:        "CellOutOfBounds",
	InvalidTime:            "InvalidTime",
	TimeListLimit:          "TimeListLimit",
	PatternStringLimit:     "PatternStringLimit",
	InvalidExpr:            "InvalidExpr",
	RecursionLimit:         "RecursionLimit",
	CellCountLimit:         "CellCountLimit",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the typed failure produced by expansion. Kind is always set;
// Pattern names the definition being expanded when the failure occurred and
// Stack holds the reference chain at that moment, outermost first. The
// remaining fields carry the structured context relevant to the Kind, so a
// caller can report or assert without parsing text.
type Error struct {
	Kind    Kind
	Pattern string
	Stack   []string

	// Alias is the unresolved name for the alias kinds.
	Alias string
	// Row and Channel locate the offending cell for CellOutOfBounds.
	Row     int64
	Channel int
	// Count and Limit describe limit violations: Count is the observed
	// value (rows, characters, depth, cells, or an instrument index) and
	// Limit the bound it broke.
	Count int
	Limit int
	// Detail is the human-readable specifics for the message-style kinds.
	Detail string
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pattern %q: %s", e.Pattern, e.message())
	if len(e.Stack) > 1 {
		fmt.Fprintf(&b, " (reference chain: %s)", strings.Join(e.Stack, " > "))
	}
	return b.String()
}

func (e *Error) message() string {
	switch e.Kind {
	case UnknownChannelAlias:
		return fmt.Sprintf("unknown channel alias %q", e.Alias)
	case UnknownInstrumentAlias:
		return fmt.Sprintf("unknown instrument alias %q", e.Alias)
	case InvalidInstrument:
		if e.Detail != "" {
			return e.Detail
		}
		return fmt.Sprintf("instrument index %d out of range, song declares %d", e.Count, e.Limit)
	case CellOutOfBounds:
		return fmt.Sprintf("cell (row %d, channel %d) outside the pattern grid", e.Row, e.Channel)
	case InvalidTime:
		return "invalid time expression: " + e.Detail
	case TimeListLimit:
		return fmt.Sprintf("time expression resolves to %d rows, limit is %d", e.Count, e.Limit)
	case PatternStringLimit:
		return fmt.Sprintf("step mask is %d characters long, limit is %d", e.Count, e.Limit)
	case InvalidExpr:
		return e.Detail
	case RecursionLimit:
		if e.Detail != "" {
			return e.Detail
		}
		return fmt.Sprintf("pattern reference depth %d exceeds limit %d", e.Count, e.Limit)
	case CellCountLimit:
		return fmt.Sprintf("expansion exceeds %d cells", e.Limit)
	default:
		return e.Detail
	}
}

// invalidTime builds an InvalidTime error with a formatted detail message.
func invalidTime(format string, args ...any) *Error {
	return &Error{Kind: InvalidTime, Detail: fmt.Sprintf(format, args...)}
}

// invalidExpr builds an InvalidExpr error with a formatted detail message.
func invalidExpr(format string, args ...any) *Error {
	return &Error{Kind: InvalidExpr, Detail: fmt.Sprintf(format, args...)}
}

// overLimit builds one of the resource-bound errors.
func overLimit(kind Kind, count, limit int) *Error {
	return &Error{Kind: kind, Count: count, Limit: limit}
}
