package giiker

import "fmt"

// Color identifies one of the six sticker colors of a standard cube.
// The numeric order follows the protocol's face numbering (B D L U R F),
// so a color and the face it lives on when solved share an index.
type Color byte

const (
	Blue Color = iota
	Yellow
	Orange
	White
	Red
	Green
)

var colorNames = [6]string{"blue", "yellow", "orange", "white", "red", "green"}

// String returns the lowercase color name.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", byte(c))
}

// colorFaces maps each color to the face it occupies on a solved cube in
// the standard western scheme: white up, green front, red right.
var colorFaces = [6]Face{
	Blue:   FaceB,
	Yellow: FaceD,
	Orange: FaceL,
	White:  FaceU,
	Red:    FaceR,
	Green:  FaceF,
}

// Home sticker colors for each corner piece, indexed by piece id less
// one. Stickers are listed in the same order as the faces of the piece's
// home slot in cornerLocations.
var cornerColors = [8][3]Color{
	{Yellow, Orange, Blue},
	{Yellow, Green, Orange},
	{Yellow, Red, Green},
	{Yellow, Blue, Red},
	{White, Orange, Green},
	{White, Blue, Orange},
	{White, Red, Blue},
	{White, Green, Red},
}

// Faces touched by each corner slot, in sticker order.
var cornerLocations = [8][3]Face{
	{FaceD, FaceL, FaceB},
	{FaceD, FaceF, FaceL},
	{FaceD, FaceR, FaceF},
	{FaceD, FaceB, FaceR},
	{FaceU, FaceL, FaceF},
	{FaceU, FaceB, FaceL},
	{FaceU, FaceR, FaceB},
	{FaceU, FaceF, FaceR},
}

// Home sticker colors for each edge piece, indexed by piece id less one.
var edgeColors = [12][2]Color{
	{Green, White},
	{White, Red},
	{White, Blue},
	{White, Orange},
	{Green, Orange},
	{Green, Red},
	{Blue, Red},
	{Blue, Orange},
	{Green, Yellow},
	{Yellow, Red},
	{Blue, Yellow},
	{Yellow, Orange},
}

// Faces touched by each edge slot, in sticker order.
var edgeLocations = [12][2]Face{
	{FaceF, FaceU},
	{FaceU, FaceR},
	{FaceU, FaceB},
	{FaceU, FaceL},
	{FaceF, FaceL},
	{FaceF, FaceR},
	{FaceB, FaceR},
	{FaceB, FaceL},
	{FaceF, FaceD},
	{FaceD, FaceR},
	{FaceB, FaceD},
	{FaceD, FaceL},
}

// Positions of each slot's stickers within the 54-character facelet
// string. The string lists faces in U, R, F, D, L, B order, nine
// stickers per face, row by row.
var cornerFacelets = [8][3]int{
	{33, 42, 53},
	{27, 24, 44},
	{29, 15, 26},
	{35, 51, 17},
	{6, 38, 18},
	{0, 47, 36},
	{2, 11, 45},
	{8, 20, 9},
}

var edgeFacelets = [12][2]int{
	{19, 7},
	{5, 10},
	{1, 46},
	{3, 37},
	{21, 41},
	{23, 12},
	{48, 14},
	{50, 39},
	{25, 28},
	{32, 16},
	{52, 34},
	{30, 43},
}

// The six fixed centers and the letters they always carry.
var (
	centerFacelets = [6]int{4, 13, 22, 31, 40, 49}
	centerLetters  = [6]byte{'U', 'R', 'F', 'D', 'L', 'B'}
)

// Corner slots whose resting twist the cube reports mirrored. The
// projector swaps orientations 1 and 2 for these slots.
var mirroredCornerSlots = [8]bool{0: true, 2: true, 5: true, 7: true}

func init() {
	if err := verifyFaceletPartition(); err != nil {
		panic(err)
	}
}

// verifyFaceletPartition checks that the corner, edge and center index
// tables cover all 54 facelet positions exactly once. It runs once at
// package load; the facelet encoder relies on it and never re-checks.
func verifyFaceletPartition() error {
	var counts [54]int
	mark := func(idx int) error {
		if idx < 0 || idx >= len(counts) {
			return fmt.Errorf("%w: index %d out of range", ErrFaceletPartition, idx)
		}
		counts[idx]++
		return nil
	}

	for _, corner := range cornerFacelets {
		for _, idx := range corner {
			if err := mark(idx); err != nil {
				return err
			}
		}
	}
	for _, edge := range edgeFacelets {
		for _, idx := range edge {
			if err := mark(idx); err != nil {
				return err
			}
		}
	}
	for _, idx := range centerFacelets {
		if err := mark(idx); err != nil {
			return err
		}
	}

	for idx, n := range counts {
		if n != 1 {
			return fmt.Errorf("%w: index %d covered %d times", ErrFaceletPartition, idx, n)
		}
	}
	return nil
}
