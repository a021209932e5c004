package glyphrun

// Typeface provides the font metrics a run needs to derive advances
// and vertical extents. All values are in font design units; callers
// scale by fontRenderingEmSize / DesignEmHeight to reach pixels.
//
// Typeface implementations must be safe for concurrent use, since a
// frozen run may be queried from multiple goroutines.
type Typeface interface {
	// DesignEmHeight returns the em square height (units per em).
	DesignEmHeight() float64

	// Ascent returns the distance from the baseline to the top of the
	// font (positive, above the baseline).
	Ascent() float64

	// Descent returns the distance from the baseline to the bottom of
	// the font (positive, below the baseline).
	Descent() float64

	// LineGap returns the recommended extra gap between lines.
	LineGap() float64

	// GlyphAdvance returns the intrinsic horizontal advance of the
	// glyph in design units.
	GlyphAdvance(gid GlyphID) float64
}

// LineHeight returns the scaled line height of a typeface at the given
// rendering em size: (ascent + descent + lineGap) * emSize / designEmHeight.
func LineHeight(tf Typeface, emSize float64) float64 {
	scale := emSize / tf.DesignEmHeight()
	return (tf.Ascent() + tf.Descent() + tf.LineGap()) * scale
}
