// Package theory implements the music-theory arithmetic the compose engine
// resolves pitches with: note-name parsing and formatting, scale interval
// tables for the diatonic modes, key contexts, and chord-symbol parsing.
//
// All pitch math is integer semitone math. The engine's output must be
// bit-identical across runs and machines, so nothing in this package touches
// floating point, wall clocks, or map iteration order.
package theory
