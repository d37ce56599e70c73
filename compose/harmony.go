package compose

import (
	"sort"
	"strings"

	"github.com/SpecCade/SpecCade-sub007/theory"
	"github.com/SpecCade/SpecCade-sub007/tracker"
)

// ChordAt pairs an absolute row with the chord taking effect there.
type ChordAt struct {
	Row   int64
	Chord theory.Chord
}

// chordToneOrdinals maps chord-tone tokens to positions in a chord's tone
// set: root, third, fifth, then stacked extensions.
var chordToneOrdinals = map[string]int{
	"root": 0, "1": 0,
	"third": 1, "3": 1,
	"fifth": 2, "5": 2,
	"seventh": 3, "7": 3,
	"ninth": 4, "9": 4,
	"eleventh": 5, "11": 5,
	"thirteenth": 6, "13": 6,
}

// keyContext resolves the song's declared key and mode. Pitches that speak
// in scale degrees or chord tones are meaningless without one, so a missing
// harmony block is an error rather than a default.
func keyContext(p *SongParams) (theory.Key, *Error) {
	if p.Harmony == nil {
		return theory.Key{}, invalidExpr("pitch sequences need a harmony block on the song")
	}
	key, err := theory.ParseKey(p.Harmony.Key, p.Harmony.Mode)
	if err != nil {
		return theory.Key{}, invalidExpr("invalid harmony key: %v", err)
	}
	return key, nil
}

// chordTimeline resolves the harmony block's chord changes to a row-ordered
// timeline. Beat positions resolve under the given timebase and pattern
// height; ties keep their declaration order.
func chordTimeline(p *SongParams, tb *TimeBase, patternRows int) ([]ChordAt, *Error) {
	if p.Harmony == nil {
		return nil, invalidExpr("chord-tone pitches need a harmony block on the song")
	}
	timeline := make([]ChordAt, 0, len(p.Harmony.Changes))
	for _, change := range p.Harmony.Changes {
		row, cerr := rowForBeatPos(tb, change.At, patternRows)
		if cerr != nil {
			return nil, cerr
		}
		chord, err := theory.ParseChord(change.Chord)
		if err != nil {
			return nil, invalidExpr("invalid chord %q: %v", change.Chord, err)
		}
		timeline = append(timeline, ChordAt{Row: row, Chord: chord})
	}
	sort.SliceStable(timeline, func(i, j int) bool { return timeline[i].Row < timeline[j].Row })
	return timeline, nil
}

// chordInEffect selects the chord whose row is the greatest value at or
// before row: the most recent change wins. A row before the first change has
// no chord and is an error.
func chordInEffect(timeline []ChordAt, row int64) (theory.Chord, *Error) {
	for i := len(timeline) - 1; i >= 0; i-- {
		if timeline[i].Row <= row {
			return timeline[i].Chord, nil
		}
	}
	return theory.Chord{}, invalidExpr("no chord in effect at row %d", row)
}

// scaleDegreeNote maps a scale-degree token ("1".."7", optionally prefixed
// with '#' or 'b' accidentals) and an octave to an absolute note name in the
// given key.
func scaleDegreeNote(key theory.Key, token string, octave int, allowAccidentals bool) (string, *Error) {
	accidental := 0
	rest := token
scan:
	for rest != "" {
		switch rest[0] {
		case '#':
			accidental++
		case 'b':
			accidental--
		default:
			break scan
		}
		rest = rest[1:]
	}
	if accidental != 0 && !allowAccidentals {
		return "", invalidExpr("scale degree %q must not carry accidentals here", token)
	}
	if len(rest) != 1 || rest[0] < '1' || rest[0] > '9' {
		return "", invalidExpr("malformed scale degree %q", token)
	}
	degree := int(rest[0] - '0')
	interval, ok := key.Degree(degree)
	if !ok {
		return "", invalidExpr("scale degree %d not in %s (%d degrees)", degree, key, key.Degrees())
	}
	return theory.NoteName(octave*12 + key.Tonic + interval + accidental), nil
}

// normalizeNote validates a literal note and canonicalizes its spelling, so
// "db5" and "C#5" expand to the same grid bytes. Key-off passes through.
func normalizeNote(s string) (string, *Error) {
	if strings.EqualFold(s, tracker.NoteOff) {
		return tracker.NoteOff, nil
	}
	semitone, err := theory.ParseNote(s)
	if err != nil {
		return "", invalidExpr("invalid note literal: %v", err)
	}
	return theory.NoteName(semitone), nil
}

// chordToneNote maps a chord-tone token ("root" through "thirteenth", or the
// matching ordinal digits) and an octave to an absolute note name within the
// given chord.
func chordToneNote(chord theory.Chord, token string, octave int) (string, *Error) {
	ordinal, ok := chordToneOrdinals[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return "", invalidExpr("unknown chord tone %q", token)
	}
	interval, ok := chord.Tone(ordinal)
	if !ok {
		return "", invalidExpr("chord %q has no %s", chord.Symbol, strings.ToLower(token))
	}
	return theory.NoteName(octave*12 + chord.Root + interval), nil
}
