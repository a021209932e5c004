package glyphrun

import (
	"errors"
	"fmt"
)

// Sentinel errors for glyphrun.
var (
	// ErrNoGlyphs is returned when a run is built without any glyphs.
	ErrNoGlyphs = errors.New("glyphrun: glyph indices cannot be empty")

	// ErrNoTypeface is returned when a run is built without a typeface.
	ErrNoTypeface = errors.New("glyphrun: typeface cannot be nil")

	// ErrInvalidEmSize is returned when the rendering em size is not positive.
	ErrInvalidEmSize = errors.New("glyphrun: font rendering em size must be > 0")

	// ErrNilDeviceHandle is returned when a GPU drawable factory is
	// created without a device handle.
	ErrNilDeviceHandle = errors.New("glyphrun: nil device handle")

	// ErrRunClosed is returned when a drawable is requested from a
	// closed run.
	ErrRunClosed = errors.New("glyphrun: run is closed")
)

// LengthMismatchError is returned when a per-glyph attribute slice does
// not match the glyph count. Such a mismatch indicates a bug in the
// shaping layer that produced the attributes.
type LengthMismatchError struct {
	// Attribute names the offending slice ("advances", "offsets", "clusters").
	Attribute string

	// Got is the length that was supplied.
	Got int

	// Want is the required length (the glyph count).
	Want int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("glyphrun: %s length %d does not match glyph count %d",
		e.Attribute, e.Got, e.Want)
}
