// Package compose expands declarative pattern descriptions into concrete
// tracker pattern grids.
//
// A song declares channels, instruments, an optional harmony block and a set
// of named pattern definitions. Each definition is a list of operations over
// algebraic time expressions (ranges, beat positions, Euclidean rhythms, step
// masks) whose pitches may be spelled absolutely, as scale degrees of the
// song key, or as tones of the chord in effect at the row. Expand resolves
// all of it into a tracker.Pattern: a grid of (row, channel) cells carrying
// note, instrument, volume and effect columns, ready for a format encoder.
//
// Expansion is deterministic. For a fixed set of song parameters, pattern
// name and seed the resulting grid is identical across runs, processes and
// machines: the engine never consults clocks, map iteration order or
// floating point. It is also bounded: recursion depth, time-list length,
// cell count and step-mask length are all capped by Limits, so a cyclic or
// adversarial description fails with a typed *Error instead of exhausting
// the process.
//
// One Expander expands one pattern and is not safe for concurrent use, but
// distinct patterns share nothing mutable; ExpandAll runs a bounded worker
// pool across all patterns of a song.
package compose
