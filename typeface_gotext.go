package glyphrun

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/font"
)

// GoTextTypeface adapts a go-text/typesetting font.Face to the
// Typeface capability. The em height and horizontal extents are read
// once at construction; per-glyph advances are looked up on demand.
//
// font.Face is not safe for concurrent use, so advance lookups are
// serialized with a mutex. GoTextTypeface itself is safe for
// concurrent use.
type GoTextTypeface struct {
	mu   sync.Mutex
	face *font.Face

	upem    float64
	ascent  float64
	descent float64
	lineGap float64
}

// NewGoTextTypeface wraps a parsed go-text face.
func NewGoTextTypeface(face *font.Face) *GoTextTypeface {
	tf := &GoTextTypeface{
		face: face,
		upem: float64(face.Upem()),
	}
	if ext, ok := face.FontHExtents(); ok {
		tf.ascent = float64(ext.Ascender)
		// Descender is negative (below the baseline); Typeface reports
		// descent as a positive distance.
		tf.descent = float64(-ext.Descender)
		tf.lineGap = float64(ext.LineGap)
	} else {
		// No hhea/OS2 extents; fall back to the em square.
		tf.ascent = tf.upem
	}
	return tf
}

// ParseTypeface parses TTF/OTF font data and returns a typeface backed
// by go-text/typesetting.
func ParseTypeface(data []byte) (*GoTextTypeface, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return NewGoTextTypeface(face), nil
}

// Face returns the underlying go-text face, for use with a Shaper.
func (tf *GoTextTypeface) Face() *font.Face {
	return tf.face
}

// DesignEmHeight implements Typeface.
func (tf *GoTextTypeface) DesignEmHeight() float64 { return tf.upem }

// Ascent implements Typeface.
func (tf *GoTextTypeface) Ascent() float64 { return tf.ascent }

// Descent implements Typeface.
func (tf *GoTextTypeface) Descent() float64 { return tf.descent }

// LineGap implements Typeface.
func (tf *GoTextTypeface) LineGap() float64 { return tf.lineGap }

// GlyphAdvance implements Typeface.
func (tf *GoTextTypeface) GlyphAdvance(gid GlyphID) float64 {
	tf.mu.Lock()
	adv := tf.face.HorizontalAdvance(font.GID(gid))
	tf.mu.Unlock()
	return float64(adv)
}
