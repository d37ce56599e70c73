package compose

import "github.com/SpecCade/SpecCade-sub007/tracker"

// TimeExpr is a declarative description of a set of rows. Evaluating one
// yields absolute row indices within the enclosing pattern, not necessarily
// sorted or deduplicated.
type TimeExpr interface {
	isTimeExpr()
}

// RowRange is an arithmetic row sequence: Start, Start+Step, ... Count rows
// in total. Step must be nonzero.
type RowRange struct {
	Start int32
	Step  int32
	Count uint32
}

// RowList is an explicit list of rows, used verbatim.
type RowList struct {
	Rows []int32
}

// BeatList is an explicit list of beat positions, each converted to a row
// under the pattern's timebase.
type BeatList struct {
	Beats []BeatPos
}

// BeatRange is an arithmetic sequence in beat space: Start advanced by Step,
// Count rows in total. Step must resolve to a nonzero row delta.
type BeatRange struct {
	Start BeatPos
	Step  BeatDelta
	Count uint32
}

// Euclid distributes Pulses hits as evenly as possible across Steps slots
// using the Bjorklund construction, optionally rotated, then maps each hit
// slot i to row i*Stride + Offset. Stride 0 is treated as 1.
type Euclid struct {
	Pulses int32
	Steps  int32
	Rotate int32
	Stride int32
	Offset int32
}

// StepMask spells rows out as a drum-machine string: 'x' or 'X' emits the
// current step, '.' skips it, whitespace is ignored entirely. Step i maps to
// row i*Stride + Offset. Stride 0 is treated as 1.
type StepMask struct {
	Mask   string
	Stride int32
	Offset int32
}

func (RowRange) isTimeExpr()  {}
func (RowList) isTimeExpr()   {}
func (BeatList) isTimeExpr()  {}
func (BeatRange) isTimeExpr() {}
func (Euclid) isTimeExpr()    {}
func (StepMask) isTimeExpr()  {}

// PitchExpr is one pitch slot of a note sequence.
type PitchExpr interface {
	isPitchExpr()
}

// Note is an absolute pitch literal such as "C#5", or "OFF" for key-off.
// Spelling is canonicalized on output, so "Db5" and "C#5" expand
// identically.
type Note string

// Degree is a scale degree of the song key: Token is "1".."7" with optional
// leading '#' or 'b' accidentals. Octave anchors the key's tonic; the degree
// interval ascends from there, so degree 5 in octave 3 of A minor is E4.
type Degree struct {
	Token  string
	Octave int
}

// ChordTone is a tone of the chord in effect at the row: Token is "root",
// "third", "fifth", "seventh", "ninth", "eleventh", "thirteenth" or the
// matching ordinal digit ("1", "3", "5", "7", "9", "11", "13"), Octave the
// absolute octave of the chord root.
type ChordTone struct {
	Token  string
	Octave int
}

func (Note) isPitchExpr()      {}
func (Degree) isPitchExpr()    {}
func (ChordTone) isPitchExpr() {}

// PatternOp is one operation of a pattern definition.
type PatternOp interface {
	isPatternOp()
}

// SeqOp lays a pitch sequence across the rows of a time expression on one
// channel. Pitches cycle when the row set is longer than the sequence; it
// must not be empty. Volume is optional (nil leaves the volume column
// empty); Effect is written as given, the zero Effect meaning none.
type SeqOp struct {
	Time       TimeExpr
	Channel    ChannelRef
	Instrument InstrumentRef
	Pitches    []PitchExpr
	Volume     *uint8
	Effect     tracker.Effect
}

// FxOp writes a volume and/or effect column over the rows of a time
// expression without touching notes. At least one of the two must be set.
type FxOp struct {
	Time    TimeExpr
	Channel ChannelRef
	Volume  *uint8
	Effect  tracker.Effect
}

// RefOp splices another named pattern into this one, all of its rows
// shifted by OffsetRows. The referee is expanded against this pattern's
// output grid; reference chains are depth-limited.
type RefOp struct {
	Name       string
	OffsetRows int32
}

func (SeqOp) isPatternOp() {}
func (FxOp) isPatternOp()  {}
func (RefOp) isPatternOp() {}
