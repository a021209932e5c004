package glyphrun

import (
	"sync"
	"sync/atomic"
)

// GlyphRun is an immutable shaped glyph run: the glyphs produced by a
// text shaper for one typeface, size and direction, together with
// per-glyph advances and offsets and the cluster map back to the
// source characters.
//
// A run is created once by the shaping layer (via RunBuilder or
// Shaper) and then only read. All query methods are pure and safe for
// concurrent use; the two one-shot lazy derivations (bounds, drawable)
// are guarded by sync.Once so racing first reads are safe too.
type GlyphRun struct {
	typeface Typeface
	emSize   float64
	scale    float64

	glyphIndices  []GlyphID
	glyphAdvances []float64 // nil means derive from typeface metrics
	glyphOffsets  []Vector  // nil means no offsets
	glyphClusters []int
	characters    CharacterRange
	charStart     int
	charEnd       int
	biDiLevel     int

	boundsOnce sync.Once
	bounds     Rect

	factory   DrawableFactory
	drawOnce  sync.Once
	drawable  Drawable
	drawWidth float64
	drawErr   error
	closeOnce sync.Once
	closed    atomic.Bool
}

// Typeface returns the typeface the run was shaped against.
func (r *GlyphRun) Typeface() Typeface { return r.typeface }

// FontRenderingEmSize returns the rendering size in pixels per em.
func (r *GlyphRun) FontRenderingEmSize() float64 { return r.emSize }

// Scale returns fontRenderingEmSize / typeface.DesignEmHeight, the
// factor that converts design units to pixels for this run.
func (r *GlyphRun) Scale() float64 { return r.scale }

// GlyphIndices returns the shaped glyph ids in visual order.
// The returned slice is shared with the run and must not be modified.
func (r *GlyphRun) GlyphIndices() []GlyphID { return r.glyphIndices }

// GlyphAdvances returns the supplied per-glyph advances, or nil when
// advances are derived from the typeface's intrinsic glyph metrics.
// The returned slice is shared with the run and must not be modified.
func (r *GlyphRun) GlyphAdvances() []float64 { return r.glyphAdvances }

// GlyphOffsets returns the per-glyph visual offsets, or nil.
// The returned slice is shared with the run and must not be modified.
func (r *GlyphRun) GlyphOffsets() []Vector { return r.glyphOffsets }

// GlyphClusters returns the per-glyph character indices.
// The returned slice is shared with the run and must not be modified.
func (r *GlyphRun) GlyphClusters() []int { return r.glyphClusters }

// Characters returns the source text span covered by the run.
func (r *GlyphRun) Characters() CharacterRange { return r.characters }

// BiDiLevel returns the bidirectional embedding level of the run.
func (r *GlyphRun) BiDiLevel() int { return r.biDiLevel }

// IsLeftToRight reports whether the run renders left to right.
// Even bidi levels are LTR, odd levels RTL.
func (r *GlyphRun) IsLeftToRight() bool { return r.biDiLevel&1 == 0 }

// Direction returns the run direction derived from the bidi level.
func (r *GlyphRun) Direction() Direction { return directionForLevel(r.biDiLevel) }

// advance returns the effective advance of glyph i: the supplied value
// when advances were provided, otherwise the typeface's intrinsic
// advance scaled to the rendering size.
func (r *GlyphRun) advance(i int) float64 {
	if r.glyphAdvances != nil {
		return r.glyphAdvances[i]
	}
	return r.typeface.GlyphAdvance(r.glyphIndices[i]) * r.scale
}

// Bounds returns the conservative visual extent of the run: origin at
// (0,0), width the sum of all effective glyph advances, height the
// scaled line height of the typeface. It is computed on first call and
// cached; a precomputed rectangle supplied at build time is returned
// verbatim.
func (r *GlyphRun) Bounds() Rect {
	r.boundsOnce.Do(func() {
		var width float64
		for i := range r.glyphIndices {
			width += r.advance(i)
		}
		r.bounds = Rect{
			MaxX: width,
			MaxY: LineHeight(r.typeface, r.emSize),
		}
	})
	return r.bounds
}

// Drawable returns the platform drawable for the run, creating it on
// first call through the run's drawable factory. The factory is
// invoked at most once; later calls return the same handle (or the
// same creation error).
func (r *GlyphRun) Drawable() (Drawable, error) {
	if r.closed.Load() {
		return nil, ErrRunClosed
	}
	r.drawOnce.Do(func() {
		r.drawable, r.drawWidth, r.drawErr = r.factory.CreateDrawable(r)
	})
	return r.drawable, r.drawErr
}

// MeasuredWidth returns the width reported by the drawable factory,
// materializing the drawable if necessary.
func (r *GlyphRun) MeasuredWidth() (float64, error) {
	if _, err := r.Drawable(); err != nil {
		return 0, err
	}
	return r.drawWidth, nil
}

// Close releases the drawable, if one was ever created. The release
// happens exactly once; further calls and calls on runs that never
// materialized a drawable are no-ops. After Close, Drawable returns
// ErrRunClosed.
func (r *GlyphRun) Close() error {
	var err error
	r.closeOnce.Do(func() {
		r.closed.Store(true)
		if r.drawable != nil {
			if err = r.drawable.Close(); err != nil {
				Logger().Warn("glyphrun: drawable release failed", "error", err)
			}
		}
	})
	return err
}
