package compose

import (
	"fmt"

	"github.com/SpecCade/SpecCade-sub007/tracker"
)

// SongParams is the song-level context every pattern expands against. It is
// produced by the (out of scope) spec loading layer and treated as immutable
// here; expansion never mutates it, which is what makes expanding different
// patterns in parallel safe.
type SongParams struct {
	// Channels is the number of tracker channels in every pattern grid.
	Channels uint8
	// ChannelIDs maps channel aliases ("kick", "bass") to channel indices.
	ChannelIDs map[string]uint8
	// Instruments is the declared instrument table. Cells refer to it by
	// 0-based index; the grid stores the conventional 1-based number.
	Instruments []tracker.Instrument
	// InstrumentIDs maps instrument aliases to 0-based indices into
	// Instruments.
	InstrumentIDs map[string]uint8
	// Harmony is the song's harmonic context. It may be nil, in which case
	// scale-degree and chord-tone pitches are errors.
	Harmony *Harmony
	// Patterns maps pattern names to their definitions.
	Patterns map[string]*PatternDef
}

// PatternDef is one named pattern definition.
type PatternDef struct {
	// Rows is the declared height of the pattern grid.
	Rows uint16
	// TimeBase governs beat-based time expressions in this pattern. When
	// nil, beat-based expressions in this pattern are errors.
	TimeBase *TimeBase
	// Ops are applied in order; later writes overwrite earlier ones.
	Ops []PatternOp
}

// Harmony declares the song key and a timeline of chord changes.
type Harmony struct {
	// Key is the tonic note name, e.g. "A" or "F#".
	Key string
	// Mode is the scale name, e.g. "minor" or "dorian".
	Mode string
	// Changes is the chord timeline. Entries should be in ascending time
	// order; the chord in effect at a row is the latest change at or before
	// it.
	Changes []ChordChange
}

// ChordChange places a chord symbol at a beat position.
type ChordChange struct {
	At    BeatPos
	Chord string
}

// ChannelRef names a channel either by index or by alias.
type ChannelRef struct {
	name   string
	index  uint8
	byName bool
}

// Channel refers to a channel by index. The zero ChannelRef is Channel(0).
func Channel(index uint8) ChannelRef {
	return ChannelRef{index: index}
}

// ChannelNamed refers to a channel through the song's alias table.
func ChannelNamed(name string) ChannelRef {
	return ChannelRef{name: name, byName: true}
}

func (r ChannelRef) String() string {
	if r.byName {
		return fmt.Sprintf("channel %q", r.name)
	}
	return fmt.Sprintf("channel %d", r.index)
}

// InstrumentRef names an instrument either by 0-based index or by alias.
type InstrumentRef struct {
	name   string
	index  uint8
	byName bool
}

// InstrumentIndex refers to an instrument by 0-based index into the song's
// instrument table. The zero InstrumentRef is InstrumentIndex(0).
func InstrumentIndex(index uint8) InstrumentRef {
	return InstrumentRef{index: index}
}

// InstrumentNamed refers to an instrument through the song's alias table.
func InstrumentNamed(name string) InstrumentRef {
	return InstrumentRef{name: name, byName: true}
}

func (r InstrumentRef) String() string {
	if r.byName {
		return fmt.Sprintf("instrument %q", r.name)
	}
	return fmt.Sprintf("instrument %d", r.index)
}
