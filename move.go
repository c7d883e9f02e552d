package giiker

import (
	"fmt"
	"strings"
)

// Face represents a cube face in standard notation.
type Face string

const (
	FaceR Face = "R" // Right
	FaceL Face = "L" // Left
	FaceU Face = "U" // Up
	FaceD Face = "D" // Down
	FaceF Face = "F" // Front
	FaceB Face = "B" // Back
)

// moveFaces maps the protocol's face numbering (nibble values 1-6) to
// faces.
var moveFaces = [6]Face{FaceB, FaceD, FaceL, FaceU, FaceR, FaceF}

// turnAmounts maps the turn nibble, less one, to a signed quarter-turn
// count. Positive is clockwise; 2 and -2 are the two directions of a
// half turn.
var turnAmounts = map[byte]int{
	0: 1,
	1: 2,
	2: -1,
	8: -2,
}

// Move represents a single face turn reported by the cube.
type Move struct {
	Face   Face // Which face turned
	Amount int  // Signed quarter turns: 1, 2, -1 or -2
}

// DecodeMove decodes one move-log byte pair into a Move. The face nibble
// selects from the protocol's face numbering (1-6); the turn nibble is
// one of 1, 2, 3 or 9. Anything outside those domains fails with
// ErrNibbleDomain.
func DecodeMove(faceNibble, turnNibble byte) (Move, error) {
	if faceNibble < 1 || faceNibble > 6 {
		return Move{}, fmt.Errorf("%w: face nibble %d", ErrNibbleDomain, faceNibble)
	}
	amount, ok := turnAmounts[turnNibble-1]
	if !ok {
		return Move{}, fmt.Errorf("%w: turn nibble %d", ErrNibbleDomain, turnNibble)
	}
	return Move{Face: moveFaces[faceNibble-1], Amount: amount}, nil
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R2, R', R2'
func (m Move) Notation() string {
	suffix := ""
	switch m.Amount {
	case 2:
		suffix = "2"
	case -1:
		suffix = "'"
	case -2:
		suffix = "2'"
	}
	return string(m.Face) + suffix
}

// Inverse returns the move that undoes this one.
// R becomes R', R2 becomes R2'.
func (m Move) Inverse() Move {
	m.Amount = -m.Amount
	return m
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// ParseMove parses a standard notation string into a Move.
// Examples: R, R', R2, R2'
// Returns an error if the notation is invalid.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	// Extract face
	var face Face
	switch s[0] {
	case 'R', 'r':
		face = FaceR
	case 'L', 'l':
		face = FaceL
	case 'U', 'u':
		face = FaceU
	case 'D', 'd':
		face = FaceD
	case 'F', 'f':
		face = FaceF
	case 'B', 'b':
		face = FaceB
	default:
		return Move{}, ErrInvalidNotation
	}

	// Extract amount
	amount := 1 // Default is a clockwise quarter turn
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`":
			amount = -1
		case "2":
			amount = 2
		case "2'", "2`":
			amount = -2
		default:
			return Move{}, ErrInvalidNotation
		}
	}

	return Move{Face: face, Amount: amount}, nil
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
// Invalid moves are skipped.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			continue // Skip invalid moves
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}
