// Package giiker provides a Go library for interacting with GiiKER smart
// Rubik's cubes (Supercube i2/i3 family) via Bluetooth Low Energy (BLE).
//
// # Features
//
//   - Device discovery and connection
//   - Full cube state after every turn (no client-side move simulation)
//   - Real-time move tracking
//   - Sticker color projection and 54-character facelet strings
//   - Battery and lifetime move count queries
//
// # Quick Start
//
// Connect to a cube and track moves:
//
//	ctx := context.Background()
//	cube, err := giiker.ConnectFirst(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cube.Close()
//
//	cube.OnMove(func(m giiker.Move) {
//	    fmt.Println("Move:", m.Notation())
//	})
//
//	cube.OnSolved(func() {
//	    fmt.Println("Solved!")
//	})
//
//	// Keep running...
//	select {}
//
// # Offline Decoding
//
// The decoding pipeline works standalone without BLE. Every telemetry
// frame carries the complete cube state, so a single frame is enough:
//
//	frame, err := giiker.DecodeFrame(raw)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	projected, err := giiker.ProjectState(frame.State)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(projected.FaceletString())
//
// # Facelet Strings
//
// FaceletString returns the standard 54-character encoding used by cube
// tooling: faces in U, R, F, D, L, B order, nine stickers per face, row
// by row, each sticker named by the face its color belongs on. A solved
// cube encodes as "UUUUUUUUURRRRRRRRRFFFFFFFFF...".
package giiker
