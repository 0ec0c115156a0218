package pixkern

import "errors"

var (
	// ErrInvalidBuffer is returned when a sample slice length does not equal width*height*4.
	ErrInvalidBuffer = errors.New("pixkern: sample length does not match dimensions")
	// ErrInvalidDimensions is returned when width or height is zero.
	ErrInvalidDimensions = errors.New("pixkern: zero width or height")

	errShapeNotRGBA   = errors.New("pixkern: image shape is not rgba8888")
	errNegativeOffset = errors.New("pixkern: negative read offset")
)
