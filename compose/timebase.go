package compose

import "math"

// TimeBase maps musical time onto tracker rows: a bar holds BeatsPerBar
// beats and a beat holds RowsPerBeat rows. Both must be positive for any
// beat-relative expression to evaluate.
type TimeBase struct {
	BeatsPerBar uint16
	RowsPerBeat uint16
}

// BeatPos is an absolute musical position: bar number, beat within the bar
// and row within the beat. Beat must be below BeatsPerBar and Sub below
// RowsPerBeat.
type BeatPos struct {
	Bar  uint32
	Beat uint16
	Sub  uint16
}

// BeatDelta is a signed musical distance used to step through beat ranges.
type BeatDelta struct {
	Beats int32
	Sub   int32
}

// rowForBeatPos converts pos to an absolute row under tb and checks it
// against the pattern height. tb is nil when the pattern declares no
// timebase, which is an error for any beat-based expression.
func rowForBeatPos(tb *TimeBase, pos BeatPos, patternRows int) (int64, *Error) {
	if tb == nil {
		return 0, invalidTime("beat-based time expressions require a timebase")
	}
	if tb.BeatsPerBar == 0 || tb.RowsPerBeat == 0 {
		return 0, invalidTime("timebase %d/%d has a zero component", tb.BeatsPerBar, tb.RowsPerBeat)
	}
	if pos.Beat >= tb.BeatsPerBar {
		return 0, invalidTime("beat %d outside bar of %d beats", pos.Beat, tb.BeatsPerBar)
	}
	if pos.Sub >= tb.RowsPerBeat {
		return 0, invalidTime("sub-beat row %d outside beat of %d rows", pos.Sub, tb.RowsPerBeat)
	}

	totalBeats, ok := mul64(int64(pos.Bar), int64(tb.BeatsPerBar))
	if !ok {
		return 0, invalidTime("beat position %d:%d:%d overflows", pos.Bar, pos.Beat, pos.Sub)
	}
	totalBeats, ok = add64(totalBeats, int64(pos.Beat))
	if !ok {
		return 0, invalidTime("beat position %d:%d:%d overflows", pos.Bar, pos.Beat, pos.Sub)
	}
	row, ok := mul64(totalBeats, int64(tb.RowsPerBeat))
	if !ok {
		return 0, invalidTime("beat position %d:%d:%d overflows", pos.Bar, pos.Beat, pos.Sub)
	}
	row, ok = add64(row, int64(pos.Sub))
	if !ok {
		return 0, invalidTime("beat position %d:%d:%d overflows", pos.Bar, pos.Beat, pos.Sub)
	}

	if row < 0 || row >= int64(patternRows) {
		return 0, invalidTime("beat position %d:%d:%d is row %d, pattern has %d rows",
			pos.Bar, pos.Beat, pos.Sub, row, patternRows)
	}
	return row, nil
}

// rowsForBeatDelta converts a signed beat delta to a signed row delta under
// tb. No bounds are applied here; callers check the rows the delta lands on.
func rowsForBeatDelta(tb *TimeBase, d BeatDelta) (int64, *Error) {
	if tb == nil {
		return 0, invalidTime("beat-based time expressions require a timebase")
	}
	if tb.RowsPerBeat == 0 {
		return 0, invalidTime("timebase %d/%d has a zero component", tb.BeatsPerBar, tb.RowsPerBeat)
	}
	rows, ok := mul64(int64(d.Beats), int64(tb.RowsPerBeat))
	if !ok {
		return 0, invalidTime("beat delta %d:%d overflows", d.Beats, d.Sub)
	}
	rows, ok = add64(rows, int64(d.Sub))
	if !ok {
		return 0, invalidTime("beat delta %d:%d overflows", d.Beats, d.Sub)
	}
	return rows, nil
}

// add64 adds two int64 values, reporting false on overflow.
func add64(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// mul64 multiplies two int64 values, reporting false on overflow.
func mul64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return 0, false
	}
	product := a * b
	if product/b != a {
		return 0, false
	}
	return product, true
}

// narrow32 converts an int64 row to the int32 the evaluator emits, reporting
// false when the value does not fit.
func narrow32(v int64) (int32, bool) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, false
	}
	return int32(v), true
}
