package giiker

import "fmt"

// minFrameLen is the number of bytes holding the state block: corner
// positions, corner orientations, edge positions and edge orientation
// flags. Anything beyond it is move log.
const minFrameLen = 16

// Frame is one decoded telemetry notification: the full cube state plus
// the trailing move log. Moves[0] is the most recent move; live
// notifications carry the turn that triggered them first, while initial
// reads may carry a longer backlog.
type Frame struct {
	State CubeState
	Moves []Move
}

// DecodeFrame decodes a raw telemetry frame.
//
// Layout: bytes 0-3 corner positions, 4-7 corner orientations, 8-13 edge
// positions (all two values per byte, high nibble first), 14-15 edge
// orientation flags, 16 onward one move per byte. Frames shorter than 16
// bytes fail with ErrFrameLength; any nibble outside its table's domain
// fails with ErrNibbleDomain rather than being coerced.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < minFrameLen {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrFrameLength, len(data), minFrameLen)
	}

	var state CubeState

	for i := 0; i < 4; i++ {
		hi, lo := nibbles(data[i])
		if hi < 1 || hi > 8 || lo < 1 || lo > 8 {
			return nil, fmt.Errorf("%w: corner position byte %d is 0x%02X", ErrNibbleDomain, i, data[i])
		}
		state.CornerPositions[2*i] = int(hi)
		state.CornerPositions[2*i+1] = int(lo)
	}

	for i := 0; i < 4; i++ {
		hi, lo := nibbles(data[4+i])
		if hi < 1 || hi > 3 || lo < 1 || lo > 3 {
			return nil, fmt.Errorf("%w: corner orientation byte %d is 0x%02X", ErrNibbleDomain, 4+i, data[4+i])
		}
		state.CornerOrientations[2*i] = int(hi)
		state.CornerOrientations[2*i+1] = int(lo)
	}

	for i := 0; i < 6; i++ {
		hi, lo := nibbles(data[8+i])
		if hi < 1 || hi > 12 || lo < 1 || lo > 12 {
			return nil, fmt.Errorf("%w: edge position byte %d is 0x%02X", ErrNibbleDomain, 8+i, data[8+i])
		}
		state.EdgePositions[2*i] = int(hi)
		state.EdgePositions[2*i+1] = int(lo)
	}

	// Edge orientation flags are packed most-significant-bit first:
	// byte 14 carries slots 0-7, the high nibble of byte 15 carries
	// slots 8-11. The low nibble of byte 15 is unused.
	for bit := 0; bit < 8; bit++ {
		state.EdgeOrientations[bit] = data[14]&(0x80>>bit) != 0
	}
	for bit := 0; bit < 4; bit++ {
		state.EdgeOrientations[8+bit] = data[15]&(0x80>>bit) != 0
	}

	var moves []Move
	for i := minFrameLen; i < len(data); i++ {
		hi, lo := nibbles(data[i])
		move, err := DecodeMove(hi, lo)
		if err != nil {
			return nil, fmt.Errorf("move log byte %d: %w", i, err)
		}
		moves = append(moves, move)
	}

	return &Frame{State: state, Moves: moves}, nil
}

func nibbles(b byte) (hi, lo byte) {
	return b >> 4, b & 0x0F
}
