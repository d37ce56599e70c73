package compose

import (
	"context"
	"fmt"

	"github.com/SpecCade/SpecCade-sub007/internal/ctxlog"
	"github.com/SpecCade/SpecCade-sub007/theory"
	"github.com/SpecCade/SpecCade-sub007/tracker"
)

// State is the lifecycle of one expansion.
type State int

const (
	// Idle means Expand has not run yet.
	Idle State = iota
	// Resolving means the expression walk is in progress.
	Resolving
	// Done means the grid was produced.
	Done
	// Failed means expansion stopped at its first error.
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Resolving:
		return "resolving"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// frame is one level of the pattern reference chain: a definition being
// walked, the row shift accumulated from the RefOps that reached it, and a
// cursor over its ops.
type frame struct {
	name   string
	def    *PatternDef
	offset int64
	next   int
}

// Expander materializes one named pattern into a tracker grid. It holds the
// per-expansion state the walk needs: the reference stack, the cell write
// counter and the lazily resolved harmony context. A fresh Expander (or a
// fresh Expand call) starts from scratch, so nothing persists between
// patterns and nothing is shared; expanding different patterns concurrently
// is safe, one Expander from multiple goroutines is not.
type Expander struct {
	// Limits bounds the expansion. NewExpander fills in DefaultLimits;
	// override fields before calling Expand.
	Limits Limits

	params *SongParams
	name   string
	seed   uint32

	state  State
	root   *PatternDef
	frames []frame
	grid   *tracker.Pattern
	cells  int

	key           *theory.Key
	timeline      []ChordAt
	timelineBuilt bool
}

// NewExpander prepares an expansion of the named pattern under params. The
// seed is not consumed here; it is stamped onto the grid for downstream
// generators and makes the determinism contract explicit.
func NewExpander(params *SongParams, pattern string, seed uint32) *Expander {
	return &Expander{
		Limits: DefaultLimits(),
		params: params,
		name:   pattern,
		seed:   seed,
	}
}

// Expand is the one-shot form of NewExpander plus (*Expander).Expand.
func Expand(ctx context.Context, params *SongParams, pattern string, seed uint32) (*tracker.Pattern, error) {
	return NewExpander(params, pattern, seed).Expand(ctx)
}

// Expand walks the pattern's operation tree and returns the fully resolved
// grid. The first error aborts the walk; there is no partial output. The
// returned error is always a *Error carrying the pattern name, the error
// kind and the reference chain at the point of failure.
func (e *Expander) Expand(ctx context.Context) (*tracker.Pattern, error) {
	logger := ctxlog.FromContext(ctx).With("pattern", e.name)
	e.reset()

	if e.params == nil {
		return nil, e.fail(invalidExpr("nil song params"))
	}
	root, ok := e.params.Patterns[e.name]
	if !ok {
		return nil, e.fail(invalidExpr("no pattern named %q", e.name))
	}

	e.state = Resolving
	e.root = root
	e.grid = tracker.NewPattern(int(root.Rows), int(e.params.Channels))
	e.grid.Name = e.name
	e.grid.Seed = e.seed
	e.frames = []frame{{name: e.name, def: root}}
	logger.Debug("Expanding pattern.",
		"rows", root.Rows, "channels", e.params.Channels, "ops", len(root.Ops))

	for len(e.frames) > 0 {
		top := len(e.frames) - 1
		f := e.frames[top]
		if f.next >= len(f.def.Ops) {
			e.frames = e.frames[:top]
			continue
		}
		e.frames[top].next++
		if err := e.runOp(f, f.def.Ops[f.next]); err != nil {
			logger.Debug("Expansion failed.", "error", err)
			return nil, e.fail(err)
		}
	}

	e.state = Done
	logger.Debug("Pattern expanded.", "cells", e.cells)
	return e.grid, nil
}

// State reports where the expansion lifecycle currently stands.
func (e *Expander) State() State {
	return e.state
}

// RefStack returns the chain of pattern names being expanded, outermost
// first. After a failure it still holds the chain at the point of failure.
func (e *Expander) RefStack() []string {
	names := make([]string, len(e.frames))
	for i, f := range e.frames {
		names[i] = f.name
	}
	return names
}

// reset clears all walk state so an Expander can be run again.
func (e *Expander) reset() {
	e.state = Idle
	e.root = nil
	e.frames = nil
	e.grid = nil
	e.cells = 0
	e.key = nil
	e.timeline = nil
	e.timelineBuilt = false
}

// fail marks the terminal state and stamps pattern name and reference chain
// onto the error.
func (e *Expander) fail(err *Error) error {
	e.state = Failed
	if err.Pattern == "" {
		err.Pattern = e.currentName()
	}
	if err.Stack == nil {
		err.Stack = e.RefStack()
	}
	return err
}

// currentName is the innermost pattern being expanded, or the root name
// before the walk starts.
func (e *Expander) currentName() string {
	if len(e.frames) == 0 {
		return e.name
	}
	return e.frames[len(e.frames)-1].name
}

func (e *Expander) runOp(f frame, op PatternOp) *Error {
	switch o := op.(type) {
	case SeqOp:
		return e.runSeq(f, o)
	case FxOp:
		return e.runFx(f, o)
	case RefOp:
		return e.pushRef(f, o)
	case nil:
		return invalidExpr("nil operation")
	default:
		return invalidExpr("unsupported operation type %T", op)
	}
}

// pushRef opens a referenced pattern as a new frame. The depth guard fires
// before anything about the referee is resolved, so a cyclic definition
// fails cleanly instead of growing the walk without bound.
func (e *Expander) pushRef(f frame, op RefOp) *Error {
	if len(e.frames)+1 > e.Limits.MaxRecursionDepth {
		return &Error{Kind: RecursionLimit, Count: len(e.frames) + 1, Limit: e.Limits.MaxRecursionDepth}
	}
	if e.Limits.DetectRefCycles {
		for _, fr := range e.frames {
			if fr.name == op.Name {
				return &Error{
					Kind:   RecursionLimit,
					Count:  len(e.frames) + 1,
					Limit:  e.Limits.MaxRecursionDepth,
					Detail: fmt.Sprintf("pattern %q is already being expanded", op.Name),
				}
			}
		}
	}
	def, ok := e.params.Patterns[op.Name]
	if !ok {
		return invalidExpr("no pattern named %q", op.Name)
	}
	offset, ok := add64(f.offset, int64(op.OffsetRows))
	if !ok {
		return invalidTime("reference offset %d overflows", op.OffsetRows)
	}
	e.frames = append(e.frames, frame{name: op.Name, def: def, offset: offset})
	return nil
}

// runSeq lays a pitch sequence over the rows of the op's time expression.
// Pitches cycle across the emitted rows in order.
func (e *Expander) runSeq(f frame, op SeqOp) *Error {
	if len(op.Pitches) == 0 {
		return invalidExpr("pitch sequence has no pitches")
	}
	volume, err := volumeColumn(op.Volume)
	if err != nil {
		return err
	}
	rows, err := evalTimeExpr(op.Time, f.def.TimeBase, int(f.def.Rows), e.Limits)
	if err != nil {
		return err
	}
	instrument, err := resolveInstrument(e.params, op.Instrument)
	if err != nil {
		return err
	}

	for i, row := range rows {
		abs, ok := add64(f.offset, int64(row))
		if !ok {
			return invalidTime("row %d overflows after reference offset %d", row, f.offset)
		}
		channel, err := resolveChannel(e.params, op.Channel, abs)
		if err != nil {
			return err
		}
		note, err := e.resolvePitch(op.Pitches[i%len(op.Pitches)], abs)
		if err != nil {
			return err
		}
		cell := tracker.Cell{Note: note, Volume: volume, Effect: op.Effect}
		if note != tracker.NoteOff {
			cell.Instrument = instrument + 1
		}
		if err := e.writeCell(abs, channel, cell); err != nil {
			return err
		}
	}
	return nil
}

// runFx writes volume and effect columns over the rows of the op's time
// expression, merging into whatever notes are already on those cells.
func (e *Expander) runFx(f frame, op FxOp) *Error {
	if op.Volume == nil && op.Effect.None() {
		return invalidExpr("effect op sets neither volume nor effect")
	}
	volume, err := volumeColumn(op.Volume)
	if err != nil {
		return err
	}
	rows, err := evalTimeExpr(op.Time, f.def.TimeBase, int(f.def.Rows), e.Limits)
	if err != nil {
		return err
	}

	for _, row := range rows {
		abs, ok := add64(f.offset, int64(row))
		if !ok {
			return invalidTime("row %d overflows after reference offset %d", row, f.offset)
		}
		channel, err := resolveChannel(e.params, op.Channel, abs)
		if err != nil {
			return err
		}
		if abs < 0 || abs >= int64(e.grid.Rows()) {
			return &Error{Kind: CellOutOfBounds, Row: abs, Channel: int(channel)}
		}
		cell := e.grid.Cell(int(abs), int(channel))
		if op.Volume != nil {
			cell.Volume = volume
		}
		if !op.Effect.None() {
			cell.Effect = op.Effect
		}
		if err := e.writeCell(abs, channel, cell); err != nil {
			return err
		}
	}
	return nil
}

// resolvePitch turns one pitch expression into a canonical note name. row is
// the absolute grid row, which picks the chord for chord-tone pitches.
func (e *Expander) resolvePitch(pitch PitchExpr, row int64) (string, *Error) {
	switch p := pitch.(type) {
	case Note:
		return normalizeNote(string(p))
	case Degree:
		key, err := e.songKey()
		if err != nil {
			return "", err
		}
		return scaleDegreeNote(key, p.Token, p.Octave, true)
	case ChordTone:
		timeline, err := e.chords()
		if err != nil {
			return "", err
		}
		chord, err := chordInEffect(timeline, row)
		if err != nil {
			return "", err
		}
		return chordToneNote(chord, p.Token, p.Octave)
	case nil:
		return "", invalidExpr("nil pitch expression")
	default:
		return "", invalidExpr("unsupported pitch expression type %T", pitch)
	}
}

// songKey resolves the song key once and caches it for the expansion.
func (e *Expander) songKey() (theory.Key, *Error) {
	if e.key == nil {
		key, err := keyContext(e.params)
		if err != nil {
			return theory.Key{}, err
		}
		e.key = &key
	}
	return *e.key, nil
}

// chords resolves the chord timeline once and caches it. Chord change
// positions resolve against the root pattern's timebase and height, so a
// referenced sub-pattern hears the same harmony as the pattern splicing it.
func (e *Expander) chords() ([]ChordAt, *Error) {
	if !e.timelineBuilt {
		timeline, err := chordTimeline(e.params, e.root.TimeBase, int(e.root.Rows))
		if err != nil {
			return nil, err
		}
		e.timeline = timeline
		e.timelineBuilt = true
	}
	return e.timeline, nil
}

// writeCell stores a cell after the final bounds and budget checks. row is
// absolute within the root grid.
func (e *Expander) writeCell(row int64, channel uint8, cell tracker.Cell) *Error {
	if row < 0 || row >= int64(e.grid.Rows()) {
		return &Error{Kind: CellOutOfBounds, Row: row, Channel: int(channel)}
	}
	e.cells++
	if e.cells > e.Limits.MaxCellsPerPattern {
		return overLimit(CellCountLimit, e.cells, e.Limits.MaxCellsPerPattern)
	}
	e.grid.SetCell(int(row), int(channel), cell)
	return nil
}

// volumeColumn validates an optional volume into the cell representation.
func volumeColumn(v *uint8) (int8, *Error) {
	if v == nil {
		return tracker.NoVolume, nil
	}
	if *v > 64 {
		return 0, invalidExpr("volume %d out of range 0..64", *v)
	}
	return int8(*v), nil
}
