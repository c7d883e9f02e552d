package giiker

import "fmt"

// ProjectedCorner is one corner slot with its visible sticker colors.
// Position and Colors are parallel: Colors[k] is shown on Position[k].
type ProjectedCorner struct {
	Position [3]Face
	Colors   [3]Color
}

// ProjectedEdge is one edge slot with its visible sticker colors.
type ProjectedEdge struct {
	Position [2]Face
	Colors   [2]Color
}

// ProjectedState holds the visible sticker colors of every piece slot.
type ProjectedState struct {
	Corners [8]ProjectedCorner
	Edges   [12]ProjectedEdge
}

// ProjectState computes the visible sticker colors for every slot of a
// decoded state. Piece ids or orientations outside their valid ranges
// fail with ErrProjection; on error no partial result is returned.
func ProjectState(s CubeState) (*ProjectedState, error) {
	var p ProjectedState

	for slot := 0; slot < len(s.CornerPositions); slot++ {
		id := s.CornerPositions[slot]
		if id < 1 || id > 8 {
			return nil, fmt.Errorf("%w: corner piece id %d in slot %d", ErrProjection, id, slot)
		}
		orient := s.CornerOrientations[slot]
		if orient < 1 || orient > 3 {
			return nil, fmt.Errorf("%w: corner orientation %d in slot %d", ErrProjection, orient, slot)
		}

		home := cornerColors[id-1]
		var colors [3]Color
		switch cornerTwist(slot, orient) {
		case 3:
			colors = home
		case 1:
			colors = [3]Color{home[1], home[2], home[0]}
		case 2:
			colors = [3]Color{home[2], home[0], home[1]}
		}

		p.Corners[slot] = ProjectedCorner{
			Position: cornerLocations[slot],
			Colors:   colors,
		}
	}

	for slot := 0; slot < len(s.EdgePositions); slot++ {
		id := s.EdgePositions[slot]
		if id < 1 || id > 12 {
			return nil, fmt.Errorf("%w: edge piece id %d in slot %d", ErrProjection, id, slot)
		}

		colors := edgeColors[id-1]
		if s.EdgeOrientations[slot] {
			colors[0], colors[1] = colors[1], colors[0]
		}

		p.Edges[slot] = ProjectedEdge{
			Position: edgeLocations[slot],
			Colors:   colors,
		}
	}

	return &p, nil
}

// cornerTwist applies the mirrored-slot correction to an orientation
// value that is already known to be in 1-3. Mirrored slots report their
// twist direction inverted, so 1 and 2 swap; 3 means home everywhere.
func cornerTwist(slot, orientation int) int {
	if mirroredCornerSlots[slot] && orientation != 3 {
		return 3 - orientation
	}
	return orientation
}
