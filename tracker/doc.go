// Package tracker defines the in-memory tracker-music data model shared by
// the pattern compose engine and the binary encoders: a pattern is a dense
// rows × channels grid of cells, each cell holding a note, an instrument
// number, a volume command, and an effect command.
//
// The model is deliberately dumb. It performs no validation beyond index
// bounds and carries no behavior tied to a specific file format; XM and IT
// serialization decide how these fields map to bytes.
package tracker
