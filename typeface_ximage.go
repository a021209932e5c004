package glyphrun

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// XImageTypeface adapts a golang.org/x/image/font/sfnt font to the
// Typeface capability. It is the pure-stdlib-ecosystem alternative to
// GoTextTypeface for callers that already hold an sfnt.Font.
//
// sfnt.Font methods need a scratch Buffer and are not safe for
// concurrent use with a shared buffer, so lookups are serialized with
// a mutex. XImageTypeface itself is safe for concurrent use.
type XImageTypeface struct {
	mu   sync.Mutex
	font *sfnt.Font
	buf  sfnt.Buffer

	upem    float64
	ascent  float64
	descent float64
	lineGap float64
}

// NewXImageTypeface wraps a parsed sfnt font.
//
// Metrics are requested at a ppem equal to the design em height, so
// the fixed-point results are exact design-unit values.
func NewXImageTypeface(f *sfnt.Font) (*XImageTypeface, error) {
	tf := &XImageTypeface{
		font: f,
		upem: float64(f.UnitsPerEm()),
	}
	ppem := fixed.I(int(f.UnitsPerEm()))
	m, err := f.Metrics(&tf.buf, ppem, font.HintingNone)
	if err != nil {
		return nil, err
	}
	tf.ascent = fixedToFloat(m.Ascent)
	tf.descent = fixedToFloat(m.Descent)
	// Height is the recommended baseline-to-baseline distance; the gap
	// is whatever it adds beyond ascent+descent.
	if gap := fixedToFloat(m.Height) - tf.ascent - tf.descent; gap > 0 {
		tf.lineGap = gap
	}
	return tf, nil
}

// ParseXImageTypeface parses TTF/OTF font data with x/image/font/sfnt.
func ParseXImageTypeface(data []byte) (*XImageTypeface, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}
	return NewXImageTypeface(f)
}

// DesignEmHeight implements Typeface.
func (tf *XImageTypeface) DesignEmHeight() float64 { return tf.upem }

// Ascent implements Typeface.
func (tf *XImageTypeface) Ascent() float64 { return tf.ascent }

// Descent implements Typeface.
func (tf *XImageTypeface) Descent() float64 { return tf.descent }

// LineGap implements Typeface.
func (tf *XImageTypeface) LineGap() float64 { return tf.lineGap }

// GlyphAdvance implements Typeface.
// Unknown glyphs report a zero advance.
func (tf *XImageTypeface) GlyphAdvance(gid GlyphID) float64 {
	tf.mu.Lock()
	defer tf.mu.Unlock()

	ppem := fixed.I(int(tf.upem))
	adv, err := tf.font.GlyphAdvance(&tf.buf, sfnt.GlyphIndex(gid), ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat(adv)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// floatToFixed converts a float64 to fixed.Int26_6.
// The fixed-point representation uses 6 fractional bits.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
