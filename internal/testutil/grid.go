package testutil

import (
	"github.com/SpecCade/SpecCade-sub007/tracker"
)

// GridCells copies a pattern into a plain [row][channel] matrix. Tests diff
// two of these with go-cmp instead of reaching into the pattern's accessors,
// which keeps failure output readable.
func GridCells(p *tracker.Pattern) [][]tracker.Cell {
	out := make([][]tracker.Cell, p.Rows())
	for row := range out {
		cells := make([]tracker.Cell, p.Channels())
		for ch := range cells {
			cells[ch] = p.Cell(row, ch)
		}
		out[row] = cells
	}
	return out
}

// CountCells returns how many cells of the grid carry any data.
func CountCells(p *tracker.Pattern) int {
	n := 0
	for row := 0; row < p.Rows(); row++ {
		for ch := 0; ch < p.Channels(); ch++ {
			if !p.Cell(row, ch).Empty() {
				n++
			}
		}
	}
	return n
}
