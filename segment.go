package glyphrun

import (
	"golang.org/x/text/unicode/bidi"
)

// Segment is a contiguous span of text with one bidi embedding level.
// Start and End are rune indices into the segmented text, the same
// index space cluster values use.
type Segment struct {
	Start int
	End   int
	Level int
}

// Direction returns the segment direction derived from its level.
func (s Segment) Direction() Direction {
	return directionForLevel(s.Level)
}

// Segmenter splits text into direction segments using the Unicode
// bidirectional algorithm, so each segment can be shaped into one
// glyph run.
type Segmenter struct {
	// BaseDirection is the paragraph direction used to resolve neutral
	// characters. Defaults to LTR.
	BaseDirection Direction
}

// NewSegmenter creates a segmenter with an LTR base direction.
func NewSegmenter() *Segmenter {
	return &Segmenter{BaseDirection: DirectionLTR}
}

// Segment splits text into maximal spans of uniform bidi level, in
// logical order.
func (s *Segmenter) Segment(text string) []Segment {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	levels := s.bidiLevels(text, len(runes))

	segments := make([]Segment, 0, 4)
	start := 0
	current := levels[0]
	for i := 1; i < len(runes); i++ {
		if levels[i] == current {
			continue
		}
		segments = append(segments, Segment{Start: start, End: i, Level: current})
		start = i
		current = levels[i]
	}
	segments = append(segments, Segment{Start: start, End: len(runes), Level: current})

	Logger().Debug("glyphrun: segmented text",
		"runes", len(runes), "segments", len(segments))
	return segments
}

// bidiLevels resolves the per-rune embedding level of text.
func (s *Segmenter) bidiLevels(text string, n int) []int {
	levels := make([]int, n)

	defaultDir := bidi.Neutral
	if s.BaseDirection == DirectionRTL {
		defaultDir = bidi.RightToLeft
	}

	p := bidi.Paragraph{}
	_, _ = p.SetString(text, bidi.DefaultDirection(defaultDir))

	ordering, err := p.Order()
	if err != nil {
		return levels
	}

	// run.Pos() returns rune indices (start, end inclusive).
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		startRune, endRune := run.Pos()
		level := 0
		if run.Direction() == bidi.RightToLeft {
			level = 1
		}
		for j := startRune; j <= endRune && j < n; j++ {
			levels[j] = level
		}
	}

	return levels
}
