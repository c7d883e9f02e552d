package giiker

// FaceletString flattens a projected state into the 54-character facelet
// encoding used by cube tooling: faces in U, R, F, D, L, B order, nine
// stickers per face, row by row, each sticker named by the face its color
// belongs on when solved. Centers are fixed, so they always read
// U, R, F, D, L and B.
//
// The index tables partition the string (asserted once at package load),
// so every cell is written exactly once and the result is total for any
// state produced by ProjectState.
func (p *ProjectedState) FaceletString() string {
	var out [54]byte

	for slot, corner := range p.Corners {
		for k, idx := range cornerFacelets[slot] {
			out[idx] = colorFaces[corner.Colors[k]][0]
		}
	}
	for slot, edge := range p.Edges {
		for k, idx := range edgeFacelets[slot] {
			out[idx] = colorFaces[edge.Colors[k]][0]
		}
	}
	for i, idx := range centerFacelets {
		out[idx] = centerLetters[i]
	}

	return string(out[:])
}
