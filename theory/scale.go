package theory

import (
	"fmt"
	"sort"
	"strings"
)

// modeIntervals holds the semitone offsets of each supported scale, starting
// at the tonic. The seven diatonic modes come first, then the common minor
// variants and the pentatonics.
var modeIntervals = map[string][]int{
	"ionian":     {0, 2, 4, 5, 7, 9, 11},
	"dorian":     {0, 2, 3, 5, 7, 9, 10},
	"phrygian":   {0, 1, 3, 5, 7, 8, 10},
	"lydian":     {0, 2, 4, 6, 7, 9, 11},
	"mixolydian": {0, 2, 4, 5, 7, 9, 10},
	"aeolian":    {0, 2, 3, 5, 7, 8, 10},
	"locrian":    {0, 1, 3, 5, 6, 8, 10},

	"harmonicminor":   {0, 2, 3, 5, 7, 8, 11},
	"melodicminor":    {0, 2, 3, 5, 7, 9, 11},
	"majorpentatonic": {0, 2, 4, 7, 9},
	"minorpentatonic": {0, 3, 5, 7, 10},
}

// modeAliases maps the everyday names onto the mode table keys.
var modeAliases = map[string]string{
	"major":            "ionian",
	"minor":            "aeolian",
	"natural minor":    "aeolian",
	"harmonic minor":   "harmonicminor",
	"melodic minor":    "melodicminor",
	"major pentatonic": "majorpentatonic",
	"minor pentatonic": "minorpentatonic",
}

// Key is a tonal context: a tonic pitch class plus the interval set of one
// scale. The zero value is not a valid key; construct one with ParseKey.
type Key struct {
	// Tonic is the pitch class of the key center, 0..11.
	Tonic int
	// Mode is the normalized mode name, e.g. "ionian" or "aeolian".
	Mode string

	intervals []int
}

// ParseKey builds a Key from a tonic note name ("C", "f#", "Bb") and a mode
// name. Mode names are case-insensitive and accept the common aliases major,
// minor, natural minor, harmonic minor and melodic minor.
func ParseKey(tonic, mode string) (Key, error) {
	class, err := ParsePitchClass(tonic)
	if err != nil {
		return Key{}, fmt.Errorf("invalid key tonic: %w", err)
	}
	name := normalizeToken(mode)
	if alias, ok := modeAliases[name]; ok {
		name = alias
	}
	intervals, ok := modeIntervals[name]
	if !ok {
		return Key{}, fmt.Errorf("unknown mode %q (known modes: %s)", mode, knownModes())
	}
	return Key{Tonic: class, Mode: name, intervals: intervals}, nil
}

// Degrees returns the number of scale degrees in the key's mode.
func (k Key) Degrees() int {
	return len(k.intervals)
}

// Degree returns the semitone offset from the tonic of the 1-based scale
// degree n. It reports false when the mode has no such degree, which is how
// pentatonic scales reject degrees 6 and 7.
func (k Key) Degree(n int) (int, bool) {
	if n < 1 || n > len(k.intervals) {
		return 0, false
	}
	return k.intervals[n-1], true
}

// String renders the key as "C# aeolian".
func (k Key) String() string {
	return noteNames[wrapClass(k.Tonic)] + " " + k.Mode
}

// knownModes lists every accepted mode name, sorted, for error messages.
func knownModes() string {
	names := make([]string, 0, len(modeIntervals)+len(modeAliases))
	for name := range modeIntervals {
		names = append(names, name)
	}
	for alias := range modeAliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
