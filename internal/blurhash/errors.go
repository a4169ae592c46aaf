package blurhash

import "errors"

// Encode errors.
var (
	// ErrRange reports a component count outside [1, 9].
	ErrRange = errors.New("blurhash: components out of range")
	// ErrSizeMismatch reports a pixel buffer whose length is not width*height*4.
	ErrSizeMismatch = errors.New("blurhash: pixel buffer size mismatch")
)

// Decode errors.
var (
	// ErrLength reports a hash shorter than the 6-character minimum.
	ErrLength = errors.New("blurhash: hash too short")
	// ErrFormat reports a hash whose length disagrees with its size flag,
	// or which contains characters outside the base83 alphabet.
	ErrFormat = errors.New("blurhash: malformed hash")
	// ErrDimensions reports a non-positive output width or height.
	ErrDimensions = errors.New("blurhash: invalid output dimensions")
)
