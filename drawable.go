package glyphrun

// Drawable is an opaque platform resource that renders a glyph run.
// The run owns its drawable exclusively: it is created at most once
// (lazily, on first access) and released exactly once by Close.
type Drawable interface {
	// Close releases the platform resource.
	Close() error
}

// DrawableFactory is the platform rendering capability consumed by a
// run. CreateDrawable is invoked at most once per run; it returns the
// drawable handle and the width the platform measured for the run.
type DrawableFactory interface {
	CreateDrawable(run *GlyphRun) (Drawable, float64, error)
}

// GlyphInstance is a single positioned glyph inside a drawable:
// the glyph id, its pen position relative to the run origin, and the
// cluster (character index) it renders.
type GlyphInstance struct {
	// GID is the glyph index in the font.
	GID GlyphID

	// Position is where the glyph is drawn, relative to the run origin
	// at the baseline.
	Position Vector

	// Cluster is the character index the glyph maps to.
	Cluster int
}

// positionGlyphs lays the run's glyphs out along the baseline,
// applying advances and offsets, and returns the instances together
// with the total advance width.
func positionGlyphs(run *GlyphRun) ([]GlyphInstance, float64) {
	indices := run.GlyphIndices()
	offsets := run.GlyphOffsets()
	clusters := run.GlyphClusters()

	instances := make([]GlyphInstance, len(indices))
	var x float64
	for i, gid := range indices {
		pos := Vector{X: x}
		if offsets != nil {
			pos.X += offsets[i].X
			pos.Y += offsets[i].Y
		}
		instances[i] = GlyphInstance{
			GID:      gid,
			Position: pos,
			Cluster:  clusters[i],
		}
		x += run.advance(i)
	}
	return instances, x
}

// InstanceDrawable is the default Drawable: the run's glyphs resolved
// to draw-ready positioned instances. Renderer backends consume the
// instances directly; Close discards them.
type InstanceDrawable struct {
	instances []GlyphInstance
}

// Instances returns the positioned glyphs in visual order.
// The returned slice is shared with the drawable and must not be modified.
func (d *InstanceDrawable) Instances() []GlyphInstance {
	return d.instances
}

// Close implements Drawable.
func (d *InstanceDrawable) Close() error {
	d.instances = nil
	return nil
}

// InstanceDrawableFactory materializes InstanceDrawables. It is the
// default factory for runs built without an explicit one.
type InstanceDrawableFactory struct{}

// CreateDrawable implements DrawableFactory.
func (InstanceDrawableFactory) CreateDrawable(run *GlyphRun) (Drawable, float64, error) {
	instances, width := positionGlyphs(run)
	return &InstanceDrawable{instances: instances}, width, nil
}

var defaultDrawableFactory DrawableFactory = InstanceDrawableFactory{}
