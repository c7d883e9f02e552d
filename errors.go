package giiker

import "errors"

// Sentinel errors for the giiker package.
var (
	// Decoding errors
	ErrFrameLength  = errors.New("giiker: frame shorter than a full state")
	ErrNibbleDomain = errors.New("giiker: nibble outside its table domain")

	// Projection errors
	ErrProjection       = errors.New("giiker: piece id or orientation out of range")
	ErrFaceletPartition = errors.New("giiker: facelet tables do not partition the string")

	// Connection errors
	ErrNotConnected     = errors.New("giiker: not connected to device")
	ErrAlreadyConnected = errors.New("giiker: already connected")
	ErrDeviceNotFound   = errors.New("giiker: device not found")
	ErrRequestPending   = errors.New("giiker: request already in flight")
	ErrTimeout          = errors.New("giiker: operation timed out")

	// Parsing errors
	ErrInvalidNotation = errors.New("giiker: invalid move notation")
)
