package giiker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solvedFrameBytes returns the 16-byte state block a solved cube
// reports: piece ids counting up in nibble pairs, every corner at
// orientation 3, no edge flips.
func solvedFrameBytes() []byte {
	return []byte{
		0x12, 0x34, 0x56, 0x78,
		0x33, 0x33, 0x33, 0x33,
		0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC,
		0x00, 0x00,
	}
}

func TestDecodeFrameSolved(t *testing.T) {
	frame, err := DecodeFrame(solvedFrameBytes())
	require.NoError(t, err)

	assert.Equal(t, SolvedState(), frame.State)
	assert.True(t, frame.State.IsSolved())
	assert.Empty(t, frame.Moves)
}

func TestDecodeFrameMoveLog(t *testing.T) {
	// 0x53: face nibble 5 (R), turn nibble 3 (counterclockwise).
	data := append(solvedFrameBytes(), 0x53)
	frame, err := DecodeFrame(data)
	require.NoError(t, err)
	require.Len(t, frame.Moves, 1)
	assert.Equal(t, Move{Face: FaceR, Amount: -1}, frame.Moves[0])
	assert.Equal(t, "R'", frame.Moves[0].Notation())

	// Moves[0] is the most recent move; older entries follow.
	data = append(solvedFrameBytes(), 0x53, 0x11, 0x69, 0x42)
	frame, err = DecodeFrame(data)
	require.NoError(t, err)
	assert.Equal(t, "R' B F2' U2", FormatMoves(frame.Moves))
}

func TestDecodeFrameTooShort(t *testing.T) {
	_, err := DecodeFrame(nil)
	assert.ErrorIs(t, err, ErrFrameLength)

	_, err = DecodeFrame(solvedFrameBytes()[:15])
	assert.ErrorIs(t, err, ErrFrameLength)
}

func TestDecodeFrameRejectsBadNibbles(t *testing.T) {
	tests := []struct {
		name  string
		index int
		value byte
	}{
		{"corner position zero", 0, 0x02},
		{"corner position nine", 0, 0x92},
		{"corner orientation zero", 4, 0x03},
		{"corner orientation four", 7, 0x34},
		{"edge position zero", 8, 0x02},
		{"edge position thirteen", 13, 0xDC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := solvedFrameBytes()
			data[tt.index] = tt.value
			_, err := DecodeFrame(data)
			assert.ErrorIs(t, err, ErrNibbleDomain)
		})
	}
}

func TestDecodeFrameRejectsBadMoveLog(t *testing.T) {
	_, err := DecodeFrame(append(solvedFrameBytes(), 0x70))
	assert.ErrorIs(t, err, ErrNibbleDomain)

	_, err = DecodeFrame(append(solvedFrameBytes(), 0x14))
	assert.ErrorIs(t, err, ErrNibbleDomain)
}

func TestDecodeFrameEdgeOrientationBits(t *testing.T) {
	flipped := func(data []byte) []int {
		frame, err := DecodeFrame(data)
		require.NoError(t, err)
		var slots []int
		for slot, f := range frame.State.EdgeOrientations {
			if f {
				slots = append(slots, slot)
			}
		}
		return slots
	}

	data := solvedFrameBytes()
	data[14] = 0x80
	assert.Equal(t, []int{0}, flipped(data), "high bit of byte 14 is slot 0")

	data = solvedFrameBytes()
	data[14] = 0x01
	assert.Equal(t, []int{7}, flipped(data), "low bit of byte 14 is slot 7")

	data = solvedFrameBytes()
	data[15] = 0x80
	assert.Equal(t, []int{8}, flipped(data), "high bit of byte 15 is slot 8")

	data = solvedFrameBytes()
	data[15] = 0x10
	assert.Equal(t, []int{11}, flipped(data), "bit 4 of byte 15 is slot 11")

	data = solvedFrameBytes()
	data[15] = 0x0F
	assert.Empty(t, flipped(data), "low nibble of byte 15 is padding")
}
