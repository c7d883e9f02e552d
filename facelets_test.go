package giiker

import (
	"math/rand"
	"strings"
	"testing"
)

const solvedFacelets = "UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB"

func faceletsFor(t *testing.T, state CubeState) string {
	t.Helper()
	projected, err := ProjectState(state)
	if err != nil {
		t.Fatalf("ProjectState failed: %v", err)
	}
	return projected.FaceletString()
}

func TestSolvedFaceletString(t *testing.T) {
	if got := faceletsFor(t, SolvedState()); got != solvedFacelets {
		t.Errorf("solved facelets = %q, want %q", got, solvedFacelets)
	}
}

func TestFaceletStringTwistedCorner(t *testing.T) {
	state := SolvedState()
	state.CornerOrientations[6] = 1
	got := faceletsFor(t, state)

	// Slot 6 writes cells 2, 11 and 45; twisting piece 7 forward puts
	// red up, blue right and white back.
	want := []byte(solvedFacelets)
	want[2] = 'R'
	want[11] = 'B'
	want[45] = 'U'
	if got != string(want) {
		t.Errorf("twisted corner facelets = %q, want %q", got, want)
	}
}

func TestFaceletStringMirroredCorner(t *testing.T) {
	state := SolvedState()
	state.CornerOrientations[0] = 1
	got := faceletsFor(t, state)

	want := []byte(solvedFacelets)
	want[33] = 'B'
	want[42] = 'D'
	want[53] = 'L'
	if got != string(want) {
		t.Errorf("mirrored corner facelets = %q, want %q", got, want)
	}
}

func TestFaceletStringFlippedEdge(t *testing.T) {
	state := SolvedState()
	state.EdgeOrientations[0] = true
	got := faceletsFor(t, state)

	want := []byte(solvedFacelets)
	want[19] = 'U'
	want[7] = 'F'
	if got != string(want) {
		t.Errorf("flipped edge facelets = %q, want %q", got, want)
	}
}

func TestFaceletStringLetterCounts(t *testing.T) {
	// Rearranging pieces never changes the sticker inventory: any
	// permutation with any orientations yields nine of each letter.
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 50; trial++ {
		state := SolvedState()
		rng.Shuffle(8, func(i, j int) {
			state.CornerPositions[i], state.CornerPositions[j] = state.CornerPositions[j], state.CornerPositions[i]
		})
		rng.Shuffle(12, func(i, j int) {
			state.EdgePositions[i], state.EdgePositions[j] = state.EdgePositions[j], state.EdgePositions[i]
		})
		for i := range state.CornerOrientations {
			state.CornerOrientations[i] = rng.Intn(3) + 1
		}
		for i := range state.EdgeOrientations {
			state.EdgeOrientations[i] = rng.Intn(2) == 1
		}

		got := faceletsFor(t, state)
		if len(got) != 54 {
			t.Fatalf("facelet string length = %d, want 54", len(got))
		}
		for _, letter := range "URFDLB" {
			if n := strings.Count(got, string(letter)); n != 9 {
				t.Fatalf("trial %d: %c appears %d times in %q, want 9", trial, letter, n, got)
			}
		}
	}
}
