package tracker

import (
	"fmt"
	"strings"
)

// Pattern is a dense rows × channels grid of cells, the unit a tracker
// engine plays and the unit the compose engine produces. Cells are stored
// row-major in a single allocation.
type Pattern struct {
	// Name is the pattern's declared name, carried for error reporting and
	// encoder diagnostics.
	Name string
	// Seed is the expansion seed passed through for adjacent generators that
	// derive pseudo-random content from it. The grid itself never consumes it.
	Seed uint32

	rows     int
	channels int
	cells    []Cell
}

// NewPattern allocates an empty grid. Every cell starts with an empty note,
// no instrument, an empty volume column, and no effect.
func NewPattern(rows, channels int) *Pattern {
	if rows < 0 || channels < 0 {
		panic(fmt.Sprintf("tracker: negative pattern dimensions %dx%d", rows, channels))
	}
	p := &Pattern{
		rows:     rows,
		channels: channels,
		cells:    make([]Cell, rows*channels),
	}
	for i := range p.cells {
		p.cells[i].Volume = NoVolume
	}
	return p
}

// Rows returns the row count of the grid.
func (p *Pattern) Rows() int { return p.rows }

// Channels returns the channel count of the grid.
func (p *Pattern) Channels() int { return p.channels }

// Cell returns the cell at (row, channel). Indices must be in range; the
// compose engine bounds-checks before every access, so an out-of-range index
// here is a programming error.
func (p *Pattern) Cell(row, channel int) Cell {
	return p.cells[p.index(row, channel)]
}

// SetCell overwrites the cell at (row, channel).
func (p *Pattern) SetCell(row, channel int, c Cell) {
	p.cells[p.index(row, channel)] = c
}

func (p *Pattern) index(row, channel int) int {
	if row < 0 || row >= p.rows || channel < 0 || channel >= p.channels {
		panic(fmt.Sprintf("tracker: cell (%d,%d) outside %dx%d pattern", row, channel, p.rows, p.channels))
	}
	return row*p.channels + channel
}

// String renders the grid in a classic tracker row listing, one line per
// row. The rendering is deterministic and meant for debugging and golden
// assertions, not for serialization.
func (p *Pattern) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%d rows x %d channels)\n", p.Name, p.rows, p.channels)
	for row := 0; row < p.rows; row++ {
		fmt.Fprintf(&sb, "%3d", row)
		for ch := 0; ch < p.channels; ch++ {
			sb.WriteString(" | ")
			sb.WriteString(p.cells[row*p.channels+ch].render())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (c Cell) render() string {
	note := c.Note
	if note == "" {
		note = "..."
	}
	inst := ".."
	if c.Instrument != 0 {
		inst = fmt.Sprintf("%02d", c.Instrument)
	}
	vol := "..."
	if c.Volume >= 0 {
		vol = fmt.Sprintf("v%02d", c.Volume)
	}
	fx := "...."
	if !c.Effect.None() {
		fx = fmt.Sprintf("%02X%02X", c.Effect.Type, c.Effect.Param)
	}
	return fmt.Sprintf("%-3s %s %s %s", note, inst, vol, fx)
}
