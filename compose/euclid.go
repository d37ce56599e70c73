package compose

// bjorklund distributes pulses hits as evenly as possible across steps
// slots, the classic recursive bucket-splitting construction for Euclidean
// rhythms. The result always starts on a hit when pulses > 0, so
// bjorklund(3, 8) is x..x..x. with hits at {0, 3, 6}.
//
// Callers validate 0 <= pulses <= steps and steps > 0.
func bjorklund(pulses, steps int) []bool {
	if pulses <= 0 {
		return make([]bool, steps)
	}
	if pulses >= steps {
		out := make([]bool, steps)
		for i := range out {
			out[i] = true
		}
		return out
	}
	out := make([]bool, 0, steps)

	divisor := steps - pulses
	remainders := []int{pulses}
	counts := []int{}
	level := 0
	for {
		counts = append(counts, divisor/remainders[level])
		remainders = append(remainders, divisor%remainders[level])
		divisor = remainders[level]
		level++
		if remainders[level] <= 1 {
			break
		}
	}
	counts = append(counts, divisor)

	var build func(level int)
	build = func(level int) {
		switch level {
		case -1:
			out = append(out, false)
		case -2:
			out = append(out, true)
		default:
			for i := 0; i < counts[level]; i++ {
				build(level - 1)
			}
			if remainders[level] != 0 {
				build(level - 2)
			}
		}
	}
	build(level)

	// The construction ends one rotation off; shift so the sequence opens
	// with its first hit.
	first := 0
	for i, hit := range out {
		if hit {
			first = i
			break
		}
	}
	rotated := make([]bool, 0, steps)
	rotated = append(rotated, out[first:]...)
	rotated = append(rotated, out[:first]...)
	return rotated
}
