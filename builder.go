package glyphrun

// RunBuilder collects the attributes of a glyph run and validates them
// in Build. The two-phase build keeps GlyphRun immutable: once Build
// returns, nothing can change the run, so no freeze checks are needed
// at query time.
//
// RunBuilder is NOT safe for concurrent use.
// Each goroutine should have its own builder.
type RunBuilder struct {
	typeface   Typeface
	emSize     float64
	indices    []GlyphID
	advances   []float64
	offsets    []Vector
	clusters   []int
	characters CharacterRange
	biDiLevel  int
	bounds     Rect
	hasBounds  bool
	factory    DrawableFactory
}

// NewRunBuilder creates a builder for a run shaped against the given
// typeface at the given rendering em size.
func NewRunBuilder(tf Typeface, emSize float64) *RunBuilder {
	return &RunBuilder{typeface: tf, emSize: emSize}
}

// GlyphIndices sets the shaped glyph ids in visual order.
func (b *RunBuilder) GlyphIndices(ids []GlyphID) *RunBuilder {
	b.indices = ids
	return b
}

// Advances sets the per-glyph advance widths. Leave unset to derive
// advances from the typeface's intrinsic glyph metrics.
func (b *RunBuilder) Advances(advances []float64) *RunBuilder {
	b.advances = advances
	return b
}

// Offsets sets the per-glyph visual offsets (diacritic positioning).
func (b *RunBuilder) Offsets(offsets []Vector) *RunBuilder {
	b.offsets = offsets
	return b
}

// Clusters sets the per-glyph character indices. Values must be
// monotonically non-decreasing for LTR runs and non-increasing for RTL
// runs. Leave unset for a 1:1 glyph-to-character mapping.
func (b *RunBuilder) Clusters(clusters []int) *RunBuilder {
	b.clusters = clusters
	return b
}

// Characters sets the source text covered by the run and the absolute
// index of its first rune.
func (b *RunBuilder) Characters(runes []rune, start int) *RunBuilder {
	b.characters = CharacterRange{Runes: runes, Start: start}
	return b
}

// BiDiLevel sets the bidirectional embedding level. Even levels render
// left to right, odd levels right to left.
func (b *RunBuilder) BiDiLevel(level int) *RunBuilder {
	b.biDiLevel = level
	return b
}

// Bounds supplies a precomputed bounding rectangle, letting a shaping
// layer that already accumulated metrics skip the derivation entirely.
func (b *RunBuilder) Bounds(bounds Rect) *RunBuilder {
	b.bounds = bounds
	b.hasBounds = true
	return b
}

// DrawableFactory sets the factory used to materialize the run's
// platform drawable. Defaults to an InstanceDrawableFactory.
func (b *RunBuilder) DrawableFactory(f DrawableFactory) *RunBuilder {
	b.factory = f
	return b
}

// Build validates the collected attributes and returns the immutable
// run. A shaping layer handing over inconsistent per-glyph slices is a
// bug upstream, so validation failures abort the build.
func (b *RunBuilder) Build() (*GlyphRun, error) {
	if b.typeface == nil {
		return nil, ErrNoTypeface
	}
	if b.emSize <= 0 {
		return nil, ErrInvalidEmSize
	}
	n := len(b.indices)
	if n == 0 {
		return nil, ErrNoGlyphs
	}
	if len(b.advances) != 0 && len(b.advances) != n {
		return nil, &LengthMismatchError{Attribute: "advances", Got: len(b.advances), Want: n}
	}
	if len(b.offsets) != 0 && len(b.offsets) != n {
		return nil, &LengthMismatchError{Attribute: "offsets", Got: len(b.offsets), Want: n}
	}
	if len(b.clusters) != 0 && len(b.clusters) != n {
		return nil, &LengthMismatchError{Attribute: "clusters", Got: len(b.clusters), Want: n}
	}

	clusters := b.clusters
	charEnd := b.characters.End()
	if clusters == nil {
		// 1:1 glyph-to-character mapping.
		clusters = make([]int, n)
		if b.biDiLevel&1 == 0 {
			for i := range clusters {
				clusters[i] = b.characters.Start + i
			}
		} else {
			for i := range clusters {
				clusters[i] = b.characters.Start + n - 1 - i
			}
		}
		if charEnd < b.characters.Start+n {
			charEnd = b.characters.Start + n
		}
	}

	factory := b.factory
	if factory == nil {
		factory = defaultDrawableFactory
	}

	run := &GlyphRun{
		typeface:      b.typeface,
		emSize:        b.emSize,
		scale:         b.emSize / b.typeface.DesignEmHeight(),
		glyphIndices:  b.indices,
		glyphAdvances: b.advances,
		glyphOffsets:  b.offsets,
		glyphClusters: clusters,
		characters:    b.characters,
		charStart:     b.characters.Start,
		charEnd:       charEnd,
		biDiLevel:     b.biDiLevel,
		factory:       factory,
	}
	if len(run.glyphAdvances) == 0 {
		run.glyphAdvances = nil
	}
	if len(run.glyphOffsets) == 0 {
		run.glyphOffsets = nil
	}
	if b.hasBounds {
		// Pre-fire the memoization so the supplied rectangle is used verbatim.
		run.boundsOnce.Do(func() { run.bounds = b.bounds })
	}
	return run, nil
}
