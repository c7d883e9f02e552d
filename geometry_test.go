package giiker

import "testing"

func TestFaceletPartitionIsExact(t *testing.T) {
	// init already panics on failure; this documents the invariant.
	if err := verifyFaceletPartition(); err != nil {
		t.Errorf("facelet index tables should partition 0-53: %v", err)
	}
}

func TestSolvedGeometryIsCoherent(t *testing.T) {
	// Piece id n rests in slot n-1, so each home sticker color must map
	// back to the face its slot touches.
	for slot := 0; slot < 8; slot++ {
		for k := 0; k < 3; k++ {
			home := colorFaces[cornerColors[slot][k]]
			if home != cornerLocations[slot][k] {
				t.Errorf("corner slot %d sticker %d: color %v lives on %v, slot touches %v",
					slot, k, cornerColors[slot][k], home, cornerLocations[slot][k])
			}
		}
	}
	for slot := 0; slot < 12; slot++ {
		for k := 0; k < 2; k++ {
			home := colorFaces[edgeColors[slot][k]]
			if home != edgeLocations[slot][k] {
				t.Errorf("edge slot %d sticker %d: color %v lives on %v, slot touches %v",
					slot, k, edgeColors[slot][k], home, edgeLocations[slot][k])
			}
		}
	}
}

func TestEveryColorHasNineStickers(t *testing.T) {
	counts := make(map[Color]int)
	for _, corner := range cornerColors {
		for _, c := range corner {
			counts[c]++
		}
	}
	for _, edge := range edgeColors {
		for _, c := range edge {
			counts[c]++
		}
	}
	// One fixed center per color.
	for c := Blue; c <= Green; c++ {
		counts[c]++
	}

	for c := Blue; c <= Green; c++ {
		if counts[c] != 9 {
			t.Errorf("color %v should have 9 stickers, got %d", c, counts[c])
		}
	}
}

func TestCenterLettersFollowFaceOrder(t *testing.T) {
	want := "URFDLB"
	for i, idx := range centerFacelets {
		if centerLetters[i] != want[i] {
			t.Errorf("center %d should be %c, got %c", idx, want[i], centerLetters[i])
		}
		if idx != 9*i+4 {
			t.Errorf("center of face %c should sit at %d, got %d", want[i], 9*i+4, idx)
		}
	}
}

func TestColorString(t *testing.T) {
	if White.String() != "white" {
		t.Errorf("White should print as white, got %q", White.String())
	}
	if Color(42).String() != "color(42)" {
		t.Errorf("out-of-range color should print its value, got %q", Color(42).String())
	}
}
