package compose

import "math"

// resolveChannel resolves a channel reference against the song's alias table
// and channel count. row is carried into the error when the resolved index
// falls outside the grid.
func resolveChannel(p *SongParams, ref ChannelRef, row int64) (uint8, *Error) {
	index := ref.index
	if ref.byName {
		i, ok := p.ChannelIDs[ref.name]
		if !ok {
			return 0, &Error{Kind: UnknownChannelAlias, Alias: ref.name}
		}
		index = i
	}
	if index >= p.Channels {
		return 0, &Error{Kind: CellOutOfBounds, Row: row, Channel: int(index)}
	}
	return index, nil
}

// resolveInstrument resolves an instrument reference to a 0-based index into
// the song's instrument table. Cells store the 1-based instrument number in a
// uint8, so index 255 has no representable cell value and is rejected even
// when the table declares a 256th entry.
func resolveInstrument(p *SongParams, ref InstrumentRef) (uint8, *Error) {
	index := ref.index
	if ref.byName {
		i, ok := p.InstrumentIDs[ref.name]
		if !ok {
			return 0, &Error{Kind: UnknownInstrumentAlias, Alias: ref.name}
		}
		index = i
	}
	if int(index) >= len(p.Instruments) {
		return 0, &Error{Kind: InvalidInstrument, Count: int(index), Limit: len(p.Instruments)}
	}
	if index == math.MaxUint8 {
		return 0, &Error{
			Kind:   InvalidInstrument,
			Count:  int(index),
			Limit:  math.MaxUint8,
			Detail: "instrument index 255 has no 1-based cell number",
		}
	}
	return index, nil
}
