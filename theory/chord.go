package theory

import (
	"fmt"
	"strings"
)

// triadIntervals maps a chord quality to its base triad, in semitones from
// the root.
var triadIntervals = map[string][]int{
	"major":      {0, 4, 7},
	"minor":      {0, 3, 7},
	"diminished": {0, 3, 6},
	"augmented":  {0, 4, 8},
	"sus2":       {0, 2, 7},
	"sus4":       {0, 5, 7},
}

// chordExtensions maps an extension suffix to the intervals it stacks on top
// of the triad. Plain numeric extensions imply the odd tones below them, so
// "9" yields both the seventh and the ninth while "add9" yields the ninth
// alone. Longer tokens must come first so that prefix matching stays
// unambiguous.
var chordExtensions = []struct {
	token     string
	intervals []int
}{
	{"maj7", []int{11}},
	{"maj9", []int{11, 14}},
	{"add11", []int{17}},
	{"add13", []int{21}},
	{"add9", []int{14}},
	{"13", []int{10, 14, 17, 21}},
	{"11", []int{10, 14, 17}},
	{"9", []int{10, 14}},
	{"7", []int{10}},
	{"6", []int{9}},
}

// Chord is a parsed chord symbol. Root is a pitch class 0..11; the interval
// list starts at 0 (the root) and ascends, so the i-th entry is the i-th
// chord tone: root, third, fifth, then any stacked extensions.
type Chord struct {
	// Symbol is the original symbol as written, e.g. "Am7".
	Symbol string
	// Root is the pitch class of the chord root, 0..11.
	Root int
	// Quality is the normalized triad quality, e.g. "minor".
	Quality string
	// Bass is the pitch class of a slash-bass note ("Am/E"), or -1 when the
	// symbol names no inversion.
	Bass int

	intervals []int
}

// ParseChord parses a chord symbol such as "C", "Em", "Am7", "Cmaj7",
// "F#dim" or "Dsus4", optionally with a slash bass like "Am/E". The suffix
// grammar is quality first, then stacked extensions; anything left over is an
// error rather than a guess.
func ParseChord(symbol string) (Chord, error) {
	s := strings.TrimSpace(symbol)
	base, bass := s, ""
	if i := strings.IndexByte(s, '/'); i >= 0 {
		base, bass = strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
	}
	if base == "" {
		return Chord{}, fmt.Errorf("empty chord symbol")
	}

	root, rest, err := parsePitchClass(base)
	if err != nil {
		return Chord{}, fmt.Errorf("invalid chord root in %q: %w", symbol, err)
	}
	root = wrapClass(root)

	quality, rest := parseChordQuality(strings.ToLower(rest))
	intervals := append([]int(nil), triadIntervals[quality]...)
	for rest != "" {
		matched := false
		for _, ext := range chordExtensions {
			if strings.HasPrefix(rest, ext.token) {
				intervals = append(intervals, ext.intervals...)
				rest = rest[len(ext.token):]
				matched = true
				break
			}
		}
		if !matched {
			return Chord{}, fmt.Errorf("unrecognized suffix %q in chord %q", rest, symbol)
		}
	}

	chord := Chord{Symbol: s, Root: root, Quality: quality, Bass: -1, intervals: intervals}
	if bass != "" {
		class, err := ParsePitchClass(bass)
		if err != nil {
			return Chord{}, fmt.Errorf("invalid bass note in %q: %w", symbol, err)
		}
		chord.Bass = class
	}
	return chord, nil
}

// parseChordQuality consumes the quality marker from the front of the
// lowercased chord suffix. A bare "m" is minor unless it opens "maj", which
// is left in place for the extension table to claim.
func parseChordQuality(rest string) (string, string) {
	switch {
	case strings.HasPrefix(rest, "sus2"):
		return "sus2", rest[4:]
	case strings.HasPrefix(rest, "sus4"):
		return "sus4", rest[4:]
	case strings.HasPrefix(rest, "dim"):
		return "diminished", rest[3:]
	case strings.HasPrefix(rest, "aug"):
		return "augmented", rest[3:]
	case rest == "maj":
		return "major", ""
	case strings.HasPrefix(rest, "maj"):
		return "major", rest
	case strings.HasPrefix(rest, "min"):
		return "minor", rest[3:]
	case strings.HasPrefix(rest, "m"):
		return "minor", rest[1:]
	default:
		return "major", rest
	}
}

// Tones returns the number of chord tones, triad plus extensions.
func (c Chord) Tones() int {
	return len(c.intervals)
}

// Tone returns the semitone interval of the i-th chord tone above the root,
// 0-based: 0 is the root, 1 the third, 2 the fifth, 3 the first extension and
// so on. It reports false when the chord has no such tone.
func (c Chord) Tone(i int) (int, bool) {
	if i < 0 || i >= len(c.intervals) {
		return 0, false
	}
	return c.intervals[i], true
}

// Intervals returns the chord's semitone intervals from the root. The slice
// is a copy and safe to mutate.
func (c Chord) Intervals() []int {
	return append([]int(nil), c.intervals...)
}

// String returns the chord symbol as written.
func (c Chord) String() string {
	return c.Symbol
}
