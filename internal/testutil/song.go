package testutil

import (
	"github.com/SpecCade/SpecCade-sub007/compose"
	"github.com/SpecCade/SpecCade-sub007/tracker"
)

// DemoSong builds a small but complete song exercising every expansion
// feature: channel and instrument aliases, a harmony block with chord
// changes, Euclidean and step-mask drums, a beat-range bass line in scale
// degrees, chord-tone leads and a pattern splicing other patterns at row
// offsets.
//
// Layout: "beat" is one 16-row bar of drums, "bassline" one bar of bass,
// and "verse" a 32-row pattern referencing both twice. The chord changes sit
// at bars 0 and 1, so only patterns at least two bars tall may use
// chord-tone pitches.
func DemoSong() *compose.SongParams {
	fourFour := &compose.TimeBase{BeatsPerBar: 4, RowsPerBeat: 4}
	vol := func(v uint8) *uint8 { return &v }

	return &compose.SongParams{
		Channels: 4,
		ChannelIDs: map[string]uint8{
			"kick":  0,
			"snare": 1,
			"bass":  2,
			"lead":  3,
		},
		Instruments: []tracker.Instrument{
			{Name: "Kick"},
			{Name: "Snare"},
			{Name: "Bass"},
			{Name: "Saw Lead"},
		},
		InstrumentIDs: map[string]uint8{
			"kick":  0,
			"snare": 1,
			"bass":  2,
			"lead":  3,
		},
		Harmony: &compose.Harmony{
			Key:  "A",
			Mode: "minor",
			Changes: []compose.ChordChange{
				{At: compose.BeatPos{Bar: 0}, Chord: "Am"},
				{At: compose.BeatPos{Bar: 1}, Chord: "F"},
			},
		},
		Patterns: map[string]*compose.PatternDef{
			"beat": {
				Rows:     16,
				TimeBase: fourFour,
				Ops: []compose.PatternOp{
					compose.SeqOp{
						Time:       compose.Euclid{Pulses: 4, Steps: 16},
						Channel:    compose.ChannelNamed("kick"),
						Instrument: compose.InstrumentNamed("kick"),
						Pitches:    []compose.PitchExpr{compose.Note("C5")},
						Volume:     vol(64),
					},
					compose.SeqOp{
						Time:       compose.StepMask{Mask: ".... x... .... x..."},
						Channel:    compose.ChannelNamed("snare"),
						Instrument: compose.InstrumentNamed("snare"),
						Pitches:    []compose.PitchExpr{compose.Note("D5")},
					},
				},
			},
			"bassline": {
				Rows:     16,
				TimeBase: fourFour,
				Ops: []compose.PatternOp{
					compose.SeqOp{
						Time: compose.BeatRange{
							Start: compose.BeatPos{Bar: 0},
							Step:  compose.BeatDelta{Beats: 1},
							Count: 4,
						},
						Channel:    compose.ChannelNamed("bass"),
						Instrument: compose.InstrumentNamed("bass"),
						Pitches: []compose.PitchExpr{
							compose.Degree{Token: "1", Octave: 3},
							compose.Degree{Token: "5", Octave: 3},
							compose.Degree{Token: "7", Octave: 3},
							compose.Degree{Token: "5", Octave: 3},
						},
					},
				},
			},
			"verse": {
				Rows:     32,
				TimeBase: fourFour,
				Ops: []compose.PatternOp{
					compose.RefOp{Name: "beat"},
					compose.RefOp{Name: "beat", OffsetRows: 16},
					compose.RefOp{Name: "bassline"},
					compose.RefOp{Name: "bassline", OffsetRows: 16},
					compose.SeqOp{
						Time:       compose.RowRange{Start: 0, Step: 8, Count: 4},
						Channel:    compose.ChannelNamed("lead"),
						Instrument: compose.InstrumentNamed("lead"),
						Pitches: []compose.PitchExpr{
							compose.ChordTone{Token: "root", Octave: 5},
							compose.ChordTone{Token: "third", Octave: 5},
							compose.ChordTone{Token: "fifth", Octave: 5},
						},
						Volume: vol(48),
					},
					compose.FxOp{
						Time:    compose.RowList{Rows: []int32{0, 16}},
						Channel: compose.ChannelNamed("lead"),
						Effect:  tracker.Effect{Type: 0x0A, Param: 0x04},
					},
				},
			},
		},
	}
}
