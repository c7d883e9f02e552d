package giiker

// CubeState is the complete mechanical state carried by one telemetry
// frame: where every piece sits and how it is twisted or flipped.
//
// Slots are fixed positions on the cube and piece ids name the physical
// cubelets; piece id n is at home in slot n-1. Corner ids run 1-8, edge
// ids run 1-12. Arrays are indexed by slot. A well-formed state uses each
// id exactly once, but that is a property of the hardware's reports, not
// something this type enforces.
type CubeState struct {
	CornerPositions    [8]int   // piece ids 1-8
	CornerOrientations [8]int   // 1-3, where 3 is the home twist
	EdgePositions      [12]int  // piece ids 1-12
	EdgeOrientations   [12]bool // true when the edge is flipped
}

// SolvedState returns the state a solved cube reports: every piece in
// its home slot, all corners at home twist, no flipped edges.
func SolvedState() CubeState {
	var s CubeState
	for i := range s.CornerPositions {
		s.CornerPositions[i] = i + 1
		s.CornerOrientations[i] = 3
	}
	for i := range s.EdgePositions {
		s.EdgePositions[i] = i + 1
	}
	return s
}

// IsSolved reports whether the state matches a solved cube.
func (s CubeState) IsSolved() bool {
	return s == SolvedState()
}
