package glyphrun

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// Shaper turns source text into glyph runs using go-text/typesetting's
// HarfBuzz implementation: the text is split into bidi segments, each
// segment is shaped against the typeface, and every shaped segment
// becomes one GlyphRun with clusters, advances and offsets filled in.
//
// Shaper is safe for concurrent use. HarfbuzzShaper instances have
// internal mutable state and are pooled; shaping calls that share one
// typeface are serialized by the typeface's lock.
type Shaper struct {
	// shaperPool pools HarfbuzzShaper instances, which are not safe
	// for concurrent use but cheap to reuse sequentially.
	shaperPool sync.Pool

	config shaperConfig
}

// ShaperOption configures a Shaper.
type ShaperOption func(*shaperConfig)

// shaperConfig holds configuration for Shaper.
type shaperConfig struct {
	language      string
	baseDirection Direction
	factory       DrawableFactory
}

// defaultShaperConfig returns the default shaper configuration.
func defaultShaperConfig() shaperConfig {
	return shaperConfig{
		language:      "en",
		baseDirection: DirectionLTR,
	}
}

// WithLanguage sets the language tag used for shaping (e.g. "en",
// "ar", "hi").
func WithLanguage(lang string) ShaperOption {
	return func(c *shaperConfig) {
		c.language = lang
	}
}

// WithBaseDirection sets the paragraph direction used to resolve
// neutral characters during bidi segmentation.
func WithBaseDirection(d Direction) ShaperOption {
	return func(c *shaperConfig) {
		c.baseDirection = d
	}
}

// WithDrawableFactory sets the drawable factory attached to every run
// the shaper builds.
func WithDrawableFactory(f DrawableFactory) ShaperOption {
	return func(c *shaperConfig) {
		c.factory = f
	}
}

// NewShaper creates a Shaper backed by go-text/typesetting's HarfBuzz
// implementation.
func NewShaper(opts ...ShaperOption) *Shaper {
	config := defaultShaperConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Shaper{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		config: config,
	}
}

// Shape shapes text against the typeface at the given rendering em
// size and returns one run per direction segment, in logical order.
// Empty text yields no runs.
func (s *Shaper) Shape(text string, tf *GoTextTypeface, emSize float64) ([]*GlyphRun, error) {
	if text == "" {
		return nil, nil
	}
	if tf == nil {
		return nil, ErrNoTypeface
	}
	if emSize <= 0 {
		return nil, ErrInvalidEmSize
	}

	runes := []rune(text)
	segmenter := Segmenter{BaseDirection: s.config.baseDirection}
	segments := segmenter.Segment(text)

	runs := make([]*GlyphRun, 0, len(segments))
	for _, seg := range segments {
		run, err := s.shapeSegment(runes, seg, tf, emSize)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// shapeSegment shapes one direction segment into a GlyphRun.
func (s *Shaper) shapeSegment(runes []rune, seg Segment, tf *GoTextTypeface, emSize float64) (*GlyphRun, error) {
	dir := di.DirectionLTR
	if seg.Direction() == DirectionRTL {
		dir = di.DirectionRTL
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  seg.Start,
		RunEnd:    seg.End,
		Direction: dir,
		Face:      tf.Face(),
		Size:      floatToFixed(emSize),
		Script:    detectScript(runes[seg.Start:seg.End]),
		Language:  language.NewLanguage(s.config.language),
	}

	hbShaper := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	tf.mu.Lock()
	output := hbShaper.Shape(input)
	tf.mu.Unlock()
	s.shaperPool.Put(hbShaper)

	n := len(output.Glyphs)
	indices := make([]GlyphID, n)
	clusters := make([]int, n)
	advances := make([]float64, n)
	offsets := make([]Vector, n)

	// go-text sizes are 26.6 fixed point; the run stores pixels. The
	// shaper requested emSize directly, so no extra scaling is needed.
	var width float64
	for i, g := range output.Glyphs {
		indices[i] = GlyphID(uint16(g.GlyphID))
		clusters[i] = g.TextIndex()
		advances[i] = fixedToFloat(g.Advance)
		offsets[i] = Vector{
			X: fixedToFloat(g.XOffset),
			Y: fixedToFloat(g.YOffset),
		}
		width += advances[i]
	}

	Logger().Debug("glyphrun: shaped segment",
		"start", seg.Start, "end", seg.End, "level", seg.Level, "glyphs", n)

	builder := NewRunBuilder(tf, emSize).
		GlyphIndices(indices).
		Clusters(clusters).
		Advances(advances).
		Offsets(offsets).
		Characters(runes[seg.Start:seg.End], seg.Start).
		BiDiLevel(seg.Level).
		Bounds(Rect{MaxX: width, MaxY: LineHeight(tf, emSize)})
	if s.config.factory != nil {
		builder.DrawableFactory(s.config.factory)
	}
	return builder.Build()
}

// detectScript inspects the runes and returns the script of the first
// non-space character. For mixed-script text, split runs by script
// before shaping.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
