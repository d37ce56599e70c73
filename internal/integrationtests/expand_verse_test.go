package integration_tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SpecCade/SpecCade-sub007/compose"
	"github.com/SpecCade/SpecCade-sub007/internal/testutil"
	"github.com/SpecCade/SpecCade-sub007/tracker"
)

// TestExpandVerse walks the demo song's "verse" pattern, which references the
// drum and bass patterns twice each and lays chord-tone leads on top, and
// checks the fully resolved grid cell by cell.
func TestExpandVerse(t *testing.T) {
	t.Parallel()

	grid, err := compose.Expand(context.Background(), testutil.DemoSong(), "verse", 1234)
	require.NoError(t, err)
	require.Equal(t, 32, grid.Rows())
	require.Equal(t, 4, grid.Channels())
	require.Equal(t, "verse", grid.Name)
	require.Equal(t, uint32(1234), grid.Seed)

	kick := tracker.Cell{Note: "C5", Instrument: 1, Volume: 64}
	for _, row := range []int{0, 4, 8, 12, 16, 20, 24, 28} {
		assert.Equal(t, kick, grid.Cell(row, 0), "kick at row %d", row)
	}

	snare := tracker.Cell{Note: "D5", Instrument: 2, Volume: tracker.NoVolume}
	for _, row := range []int{4, 12, 20, 28} {
		assert.Equal(t, snare, grid.Cell(row, 1), "snare at row %d", row)
	}

	bassNotes := map[int]string{
		0: "A3", 4: "E4", 8: "G4", 12: "E4",
		16: "A3", 20: "E4", 24: "G4", 28: "E4",
	}
	for row, note := range bassNotes {
		assert.Equal(t, tracker.Cell{Note: note, Instrument: 3, Volume: tracker.NoVolume},
			grid.Cell(row, 2), "bass at row %d", row)
	}

	slide := tracker.Effect{Type: 0x0A, Param: 0x04}
	leads := map[int]tracker.Cell{
		0:  {Note: "A5", Instrument: 4, Volume: 48, Effect: slide},
		8:  {Note: "C6", Instrument: 4, Volume: 48},
		16: {Note: "C6", Instrument: 4, Volume: 48, Effect: slide},
		24: {Note: "F5", Instrument: 4, Volume: 48},
	}
	for row, want := range leads {
		assert.Equal(t, want, grid.Cell(row, 3), "lead at row %d", row)
	}

	assert.Equal(t, 24, testutil.CountCells(grid), "nothing outside the expected cells may be written")
}

// TestExpandVerse_ChordsFollowTheBarLine pins the harmonic behavior: the lead
// voices Am tones in the first bar pair and F tones after the change at bar 1.
func TestExpandVerse_ChordsFollowTheBarLine(t *testing.T) {
	t.Parallel()

	grid, err := compose.Expand(context.Background(), testutil.DemoSong(), "verse", 0)
	require.NoError(t, err)

	assert.Equal(t, "A5", grid.Cell(0, 3).Note, "root of Am")
	assert.Equal(t, "C6", grid.Cell(8, 3).Note, "third of Am")
	assert.Equal(t, "C6", grid.Cell(16, 3).Note, "fifth of F")
	assert.Equal(t, "F5", grid.Cell(24, 3).Note, "root of F")
}

func TestExpandSinglePatterns(t *testing.T) {
	t.Parallel()

	song := testutil.DemoSong()

	beat, err := compose.Expand(context.Background(), song, "beat", 0)
	require.NoError(t, err)
	assert.Equal(t, 16, beat.Rows())
	assert.Equal(t, "C5", beat.Cell(0, 0).Note)
	assert.Equal(t, "D5", beat.Cell(4, 1).Note)

	bass, err := compose.Expand(context.Background(), song, "bassline", 0)
	require.NoError(t, err)
	assert.Equal(t, "A3", bass.Cell(0, 2).Note)
	assert.Equal(t, "G4", bass.Cell(8, 2).Note)
}
