package giiker

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProjectSolvedState(t *testing.T) {
	got, err := ProjectState(SolvedState())
	if err != nil {
		t.Fatalf("ProjectState failed: %v", err)
	}

	var want ProjectedState
	for slot := 0; slot < 8; slot++ {
		want.Corners[slot] = ProjectedCorner{
			Position: cornerLocations[slot],
			Colors:   cornerColors[slot],
		}
	}
	for slot := 0; slot < 12; slot++ {
		want.Edges[slot] = ProjectedEdge{
			Position: edgeLocations[slot],
			Colors:   edgeColors[slot],
		}
	}

	if diff := cmp.Diff(&want, got); diff != "" {
		t.Errorf("solved projection mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectTwistedCorner(t *testing.T) {
	// Slot 6 reports its twist directly. Piece 7 at home is
	// white/red/blue; one twist rotates the stickers forward.
	state := SolvedState()
	state.CornerOrientations[6] = 1

	got, err := ProjectState(state)
	if err != nil {
		t.Fatalf("ProjectState failed: %v", err)
	}

	want := [3]Color{Red, Blue, White}
	if got.Corners[6].Colors != want {
		t.Errorf("twisted corner colors = %v, want %v", got.Corners[6].Colors, want)
	}

	state.CornerOrientations[6] = 2
	got, err = ProjectState(state)
	if err != nil {
		t.Fatalf("ProjectState failed: %v", err)
	}
	want = [3]Color{Blue, White, Red}
	if got.Corners[6].Colors != want {
		t.Errorf("double-twisted corner colors = %v, want %v", got.Corners[6].Colors, want)
	}
}

func TestProjectMirroredCorner(t *testing.T) {
	// Slot 0 reports its twist mirrored, so orientation 1 behaves like
	// orientation 2 elsewhere. Piece 1 at home is yellow/orange/blue.
	state := SolvedState()
	state.CornerOrientations[0] = 1

	got, err := ProjectState(state)
	if err != nil {
		t.Fatalf("ProjectState failed: %v", err)
	}
	want := [3]Color{Blue, Yellow, Orange}
	if got.Corners[0].Colors != want {
		t.Errorf("mirrored corner at orientation 1 = %v, want %v", got.Corners[0].Colors, want)
	}

	state.CornerOrientations[0] = 2
	got, err = ProjectState(state)
	if err != nil {
		t.Fatalf("ProjectState failed: %v", err)
	}
	want = [3]Color{Orange, Blue, Yellow}
	if got.Corners[0].Colors != want {
		t.Errorf("mirrored corner at orientation 2 = %v, want %v", got.Corners[0].Colors, want)
	}
}

func TestProjectTwistKeepsColorSet(t *testing.T) {
	// Twisting only rotates a corner's stickers. Every slot at every
	// orientation shows the same three colors in some order.
	for slot := 0; slot < 8; slot++ {
		for orient := 1; orient <= 3; orient++ {
			state := SolvedState()
			state.CornerOrientations[slot] = orient

			got, err := ProjectState(state)
			if err != nil {
				t.Fatalf("ProjectState failed: %v", err)
			}

			var home, shown [6]bool
			for _, c := range cornerColors[slot] {
				home[c] = true
			}
			for _, c := range got.Corners[slot].Colors {
				shown[c] = true
			}
			if home != shown {
				t.Errorf("slot %d orientation %d shows %v, piece has %v",
					slot, orient, got.Corners[slot].Colors, cornerColors[slot])
			}
		}
	}
}

func TestProjectFlippedEdge(t *testing.T) {
	state := SolvedState()
	state.EdgeOrientations[0] = true

	got, err := ProjectState(state)
	if err != nil {
		t.Fatalf("ProjectState failed: %v", err)
	}

	want := [2]Color{White, Green}
	if got.Edges[0].Colors != want {
		t.Errorf("flipped edge colors = %v, want %v", got.Edges[0].Colors, want)
	}

	// Clearing the flag restores the home order.
	state.EdgeOrientations[0] = false
	got, err = ProjectState(state)
	if err != nil {
		t.Fatalf("ProjectState failed: %v", err)
	}
	if got.Edges[0].Colors != edgeColors[0] {
		t.Errorf("unflipped edge colors = %v, want %v", got.Edges[0].Colors, edgeColors[0])
	}
}

func TestProjectRejectsBadState(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CubeState)
	}{
		{"corner id zero", func(s *CubeState) { s.CornerPositions[3] = 0 }},
		{"corner id nine", func(s *CubeState) { s.CornerPositions[3] = 9 }},
		{"corner orientation zero", func(s *CubeState) { s.CornerOrientations[5] = 0 }},
		{"corner orientation four", func(s *CubeState) { s.CornerOrientations[5] = 4 }},
		{"edge id zero", func(s *CubeState) { s.EdgePositions[11] = 0 }},
		{"edge id thirteen", func(s *CubeState) { s.EdgePositions[11] = 13 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := SolvedState()
			tt.mutate(&state)
			got, err := ProjectState(state)
			if !errors.Is(err, ErrProjection) {
				t.Fatalf("ProjectState error = %v, want ErrProjection", err)
			}
			if got != nil {
				t.Error("failed projection should not return a partial result")
			}
		})
	}
}

func TestProjectMirroredOrientationValidatedBeforeCorrection(t *testing.T) {
	// Orientation 0 on a mirrored slot must fail outright rather than
	// being corrected into the valid value 3.
	state := SolvedState()
	state.CornerOrientations[0] = 0
	if _, err := ProjectState(state); err == nil {
		t.Error("orientation 0 on a mirrored slot should fail")
	}
}
