package compose

import "unicode"

// evalTimeExpr resolves a time expression to absolute row indices within a
// pattern of patternRows rows. Beat-based variants need tb; row-based ones
// ignore it. The result is in emission order, neither sorted nor
// deduplicated, and its length never exceeds limits.MaxTimeListLen.
func evalTimeExpr(expr TimeExpr, tb *TimeBase, patternRows int, limits Limits) ([]int32, *Error) {
	switch x := expr.(type) {
	case RowRange:
		return evalRowRange(x, limits)
	case RowList:
		return evalRowList(x, limits)
	case BeatList:
		return evalBeatList(x, tb, patternRows, limits)
	case BeatRange:
		return evalBeatRange(x, tb, patternRows, limits)
	case Euclid:
		return evalEuclid(x, limits)
	case StepMask:
		return evalStepMask(x, limits)
	case nil:
		return nil, invalidTime("missing time expression")
	default:
		return nil, invalidTime("unsupported time expression type %T", expr)
	}
}

func evalRowRange(x RowRange, limits Limits) ([]int32, *Error) {
	if x.Step == 0 {
		return nil, invalidTime("range step must be nonzero")
	}
	if int64(x.Count) > int64(limits.MaxTimeListLen) {
		return nil, overLimit(TimeListLimit, int(x.Count), limits.MaxTimeListLen)
	}
	rows := make([]int32, 0, x.Count)
	for i := int64(0); i < int64(x.Count); i++ {
		step, ok := mul64(int64(x.Step), i)
		if !ok {
			return nil, invalidTime("range row %d*%d overflows", x.Step, i)
		}
		row64, ok := add64(int64(x.Start), step)
		if !ok {
			return nil, invalidTime("range row %d+%d overflows", x.Start, step)
		}
		row, ok := narrow32(row64)
		if !ok {
			return nil, invalidTime("range row %d does not fit a row index", row64)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func evalRowList(x RowList, limits Limits) ([]int32, *Error) {
	if len(x.Rows) > limits.MaxTimeListLen {
		return nil, overLimit(TimeListLimit, len(x.Rows), limits.MaxTimeListLen)
	}
	return x.Rows, nil
}

func evalBeatList(x BeatList, tb *TimeBase, patternRows int, limits Limits) ([]int32, *Error) {
	if len(x.Beats) > limits.MaxTimeListLen {
		return nil, overLimit(TimeListLimit, len(x.Beats), limits.MaxTimeListLen)
	}
	rows := make([]int32, 0, len(x.Beats))
	for _, pos := range x.Beats {
		row, err := rowForBeatPos(tb, pos, patternRows)
		if err != nil {
			return nil, err
		}
		rows = append(rows, int32(row))
	}
	return rows, nil
}

func evalBeatRange(x BeatRange, tb *TimeBase, patternRows int, limits Limits) ([]int32, *Error) {
	if int64(x.Count) > int64(limits.MaxTimeListLen) {
		return nil, overLimit(TimeListLimit, int(x.Count), limits.MaxTimeListLen)
	}
	start, err := rowForBeatPos(tb, x.Start, patternRows)
	if err != nil {
		return nil, err
	}
	delta, err := rowsForBeatDelta(tb, x.Step)
	if err != nil {
		return nil, err
	}
	if delta == 0 {
		return nil, invalidTime("beat range step resolves to zero rows")
	}
	rows := make([]int32, 0, x.Count)
	for i := int64(0); i < int64(x.Count); i++ {
		span, ok := mul64(delta, i)
		if !ok {
			return nil, invalidTime("beat range row %d*%d overflows", delta, i)
		}
		row, ok := add64(start, span)
		if !ok {
			return nil, invalidTime("beat range row %d+%d overflows", start, span)
		}
		if row < 0 || row >= int64(patternRows) {
			return nil, invalidTime("beat range row %d outside pattern of %d rows", row, patternRows)
		}
		rows = append(rows, int32(row))
	}
	return rows, nil
}

func evalEuclid(x Euclid, limits Limits) ([]int32, *Error) {
	if x.Steps <= 0 {
		return nil, invalidTime("euclid needs steps > 0, got %d", x.Steps)
	}
	if x.Pulses < 0 {
		return nil, invalidTime("euclid pulses must not be negative, got %d", x.Pulses)
	}
	if x.Pulses > x.Steps {
		return nil, invalidTime("euclid pulses %d exceed steps %d", x.Pulses, x.Steps)
	}
	if int64(x.Steps) > int64(limits.MaxTimeListLen) {
		return nil, overLimit(TimeListLimit, int(x.Steps), limits.MaxTimeListLen)
	}

	steps := int64(x.Steps)
	rotate := ((int64(x.Rotate) % steps) + steps) % steps
	stride := int64(x.Stride)
	if stride == 0 {
		stride = 1
	}

	hits := bjorklund(int(x.Pulses), int(x.Steps))
	rows := make([]int32, 0, x.Pulses)
	for slot := int64(0); slot < steps; slot++ {
		if !hits[(slot-rotate+steps)%steps] {
			continue
		}
		row64, ok := mul64(slot, stride)
		if !ok {
			return nil, invalidTime("euclid row %d*%d overflows", slot, stride)
		}
		row64, ok = add64(row64, int64(x.Offset))
		if !ok {
			return nil, invalidTime("euclid row overflows at offset %d", x.Offset)
		}
		row, ok := narrow32(row64)
		if !ok {
			return nil, invalidTime("euclid row %d does not fit a row index", row64)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func evalStepMask(x StepMask, limits Limits) ([]int32, *Error) {
	if len(x.Mask) > limits.MaxPatternStringLen {
		return nil, overLimit(PatternStringLimit, len(x.Mask), limits.MaxPatternStringLen)
	}
	stride := int64(x.Stride)
	if stride == 0 {
		stride = 1
	}

	var rows []int32
	idx := int64(0)
	for _, c := range x.Mask {
		switch {
		case c == 'x' || c == 'X':
			if len(rows) >= limits.MaxTimeListLen {
				return nil, overLimit(TimeListLimit, len(rows)+1, limits.MaxTimeListLen)
			}
			row64, ok := mul64(idx, stride)
			if !ok {
				return nil, invalidTime("step mask row %d*%d overflows", idx, stride)
			}
			row64, ok = add64(row64, int64(x.Offset))
			if !ok {
				return nil, invalidTime("step mask row overflows at offset %d", x.Offset)
			}
			row, ok := narrow32(row64)
			if !ok {
				return nil, invalidTime("step mask row %d does not fit a row index", row64)
			}
			rows = append(rows, row)
			idx++
		case c == '.':
			idx++
		case unicode.IsSpace(c):
			// Whitespace is layout, not a step.
		default:
			return nil, invalidTime("step mask character %q is neither 'x', '.' nor whitespace", c)
		}
	}
	return rows, nil
}
