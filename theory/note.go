package theory

import (
	"fmt"
	"strconv"
	"strings"
)

// noteNames are the canonical spellings for the twelve pitch classes. The
// engine always emits sharps; flat input is accepted and renamed.
var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// letterClass maps a note letter to its pitch class within the octave.
var letterClass = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// ParseNote parses an absolute note name such as "C#5", "a4" or "Db-1" and
// returns its semitone index, where C0 is 0 and each octave spans 12
// semitones. Letters are case-insensitive, a single '#' or 'b' accidental is
// accepted, and the octave may be negative.
func ParseNote(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("empty note name")
	}
	class, rest, err := parsePitchClass(name)
	if err != nil {
		return 0, err
	}
	if rest == "" {
		return 0, fmt.Errorf("note %q is missing an octave", name)
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("note %q has a malformed octave: %v", name, err)
	}
	return octave*12 + class, nil
}

// ParsePitchClass parses a note name without an octave ("C", "f#", "Bb") and
// returns its pitch class 0..11.
func ParsePitchClass(name string) (int, error) {
	class, rest, err := parsePitchClass(name)
	if err != nil {
		return 0, err
	}
	if rest != "" {
		return 0, fmt.Errorf("unexpected %q after pitch class in %q", rest, name)
	}
	return wrapClass(class), nil
}

// wrapClass folds an unwrapped semitone offset into pitch class 0..11.
func wrapClass(class int) int {
	return ((class % 12) + 12) % 12
}

// parsePitchClass consumes the letter and optional accidental from the front
// of name, returning the semitone offset from C and the unconsumed
// remainder. The offset is left unwrapped (-1 for Cb, 12 for B#) so octave
// borrows survive in ParseNote; octave-less callers wrap it themselves.
func parsePitchClass(name string) (int, string, error) {
	letter := name[0]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	class, ok := letterClass[letter]
	if !ok {
		return 0, "", fmt.Errorf("invalid note letter %q in %q", string(name[0]), name)
	}
	rest := name[1:]
	if rest != "" {
		switch rest[0] {
		case '#':
			class++
			rest = rest[1:]
		case 'b':
			class--
			rest = rest[1:]
		}
	}
	return class, rest, nil
}

// NoteName renders a semitone index as a canonical sharp-spelled note name,
// the inverse of ParseNote. Negative semitones land in negative octaves, so
// NoteName(-1) is "B-1".
func NoteName(semitone int) string {
	octave := semitone / 12
	class := semitone % 12
	if class < 0 {
		class += 12
		octave--
	}
	return noteNames[class] + strconv.Itoa(octave)
}

// IsNoteName reports whether s parses as an absolute note name. It is a
// convenience for validation paths that do not need the semitone value.
func IsNoteName(s string) bool {
	_, err := ParseNote(s)
	return err == nil
}

// normalizeToken lowercases a symbol token and strips surrounding space so
// lookups against the interval tables are case-insensitive.
func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
