package integration_tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SpecCade/SpecCade-sub007/compose"
	"github.com/SpecCade/SpecCade-sub007/internal/testutil"
)

// TestFailuresAreTypedAndTotal exercises the engine's failure contract at the
// public boundary: every failure surfaces as a *compose.Error with the
// pattern name and kind filled in, and no grid is returned alongside it.
func TestFailuresAreTypedAndTotal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		mutate   func(song *compose.SongParams)
		pattern  string
		wantKind compose.Kind
	}{
		{
			name: "unknown channel alias",
			mutate: func(song *compose.SongParams) {
				song.Patterns["bad"] = &compose.PatternDef{
					Rows: 8,
					Ops: []compose.PatternOp{
						compose.SeqOp{
							Time:    compose.RowList{Rows: []int32{0}},
							Channel: compose.ChannelNamed("tom"),
							Pitches: []compose.PitchExpr{compose.Note("C4")},
						},
					},
				}
			},
			pattern:  "bad",
			wantKind: compose.UnknownChannelAlias,
		},
		{
			name: "unknown instrument alias",
			mutate: func(song *compose.SongParams) {
				song.Patterns["bad"] = &compose.PatternDef{
					Rows: 8,
					Ops: []compose.PatternOp{
						compose.SeqOp{
							Time:       compose.RowList{Rows: []int32{0}},
							Channel:    compose.Channel(0),
							Instrument: compose.InstrumentNamed("theremin"),
							Pitches:    []compose.PitchExpr{compose.Note("C4")},
						},
					},
				}
			},
			pattern:  "bad",
			wantKind: compose.UnknownInstrumentAlias,
		},
		{
			name: "reference past the grid",
			mutate: func(song *compose.SongParams) {
				song.Patterns["bad"] = &compose.PatternDef{
					Rows: 8,
					Ops:  []compose.PatternOp{compose.RefOp{Name: "beat", OffsetRows: 4}},
				}
			},
			pattern:  "bad",
			wantKind: compose.CellOutOfBounds,
		},
		{
			name: "self reference",
			mutate: func(song *compose.SongParams) {
				song.Patterns["bad"] = &compose.PatternDef{
					Rows: 8,
					Ops:  []compose.PatternOp{compose.RefOp{Name: "bad"}},
				}
			},
			pattern:  "bad",
			wantKind: compose.RecursionLimit,
		},
		{
			name: "beat position outside the bar",
			mutate: func(song *compose.SongParams) {
				song.Patterns["bad"] = &compose.PatternDef{
					Rows:     8,
					TimeBase: &compose.TimeBase{BeatsPerBar: 4, RowsPerBeat: 4},
					Ops: []compose.PatternOp{
						compose.SeqOp{
							Time:    compose.BeatList{Beats: []compose.BeatPos{{Beat: 4}}},
							Channel: compose.Channel(0),
							Pitches: []compose.PitchExpr{compose.Note("C4")},
						},
					},
				}
			},
			pattern:  "bad",
			wantKind: compose.InvalidTime,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			song := testutil.DemoSong()
			tc.mutate(song)

			grid, err := compose.Expand(context.Background(), song, tc.pattern, 0)
			require.Error(t, err)
			assert.Nil(t, grid, "a failing expansion must not hand out a partial grid")

			var cerr *compose.Error
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tc.wantKind, cerr.Kind)
			assert.NotEmpty(t, cerr.Pattern)
			assert.NotEmpty(t, cerr.Stack)
		})
	}
}

// TestRecursionFailureIsReproducible runs the guarded failure twice and
// checks the two errors match field for field, reference chain included.
func TestRecursionFailureIsReproducible(t *testing.T) {
	t.Parallel()

	song := testutil.DemoSong()
	song.Patterns["a"] = &compose.PatternDef{Rows: 8, Ops: []compose.PatternOp{compose.RefOp{Name: "b"}}}
	song.Patterns["b"] = &compose.PatternDef{Rows: 8, Ops: []compose.PatternOp{compose.RefOp{Name: "a"}}}

	run := func() *compose.Error {
		_, err := compose.Expand(context.Background(), song, "a", 0)
		require.Error(t, err)
		var cerr *compose.Error
		require.ErrorAs(t, err, &cerr)
		return cerr
	}

	first := run()
	second := run()

	assert.Equal(t, compose.RecursionLimit, first.Kind)
	assert.Equal(t, first.Kind, second.Kind)
	assert.Equal(t, first.Count, second.Count)
	assert.Equal(t, first.Stack, second.Stack)
	assert.Equal(t, first.Error(), second.Error())
}
