package tracker

// NoteOff is the key-off note literal. It releases the playing note on the
// channel instead of triggering a new one.
const NoteOff = "OFF"

// NoVolume marks a cell whose volume column is empty. Volume values 0..64
// are explicit volume commands.
const NoVolume int8 = -1

// Effect is a tracker effect command. The zero value (type 0, param 0) means
// no effect; type 0 with a nonzero param is the arpeggio command, following
// protracker lineage.
type Effect struct {
	Type  uint8
	Param uint8
}

// None reports whether the effect column is empty.
func (e Effect) None() bool {
	return e.Type == 0 && e.Param == 0
}

// Cell is one row/channel slot of a pattern.
//
// Note is the empty string for an empty slot, NoteOff for key-off, or an
// absolute note name such as "C#5". Instrument is 0 for none, otherwise the
// 1-based instrument number. Volume is NoVolume for an empty volume column,
// otherwise 0..64.
type Cell struct {
	Note       string
	Instrument uint8
	Volume     int8
	Effect     Effect
}

// Empty reports whether the cell carries no data at all.
func (c Cell) Empty() bool {
	return c.Note == "" && c.Instrument == 0 && c.Volume == NoVolume && c.Effect.None()
}

// Instrument is a declared song instrument. The engine only needs its
// identity; synthesis parameters live with the audio generators.
type Instrument struct {
	Name string
}
