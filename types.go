package glyphrun

// GlyphID is a unique identifier for a glyph within a font.
// The glyph ID is assigned by the font file and is font-specific.
type GlyphID uint16

// Vector is a 2D offset applied to a glyph's pen position.
// Used for fine positioning of diacritics and combining marks.
type Vector struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle used for run bounds.
type Rect struct {
	// Min is the top-left corner
	MinX, MinY float64
	// Max is the bottom-right corner
	MaxX, MaxY float64
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Empty reports whether the rectangle is empty.
func (r Rect) Empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// CharacterRange is the span of source text covered by a run.
// Start is the absolute index of the first rune in the surrounding
// source; cluster values and character hits live in the same index
// space, so a run covering "cd" inside "abcd" has Start == 2.
type CharacterRange struct {
	// Runes is the covered text.
	Runes []rune

	// Start is the absolute index of Runes[0] in the source text.
	Start int
}

// Len returns the number of runes in the range.
func (cr CharacterRange) Len() int {
	return len(cr.Runes)
}

// End returns one past the last covered character index.
func (cr CharacterRange) End() int {
	return cr.Start + len(cr.Runes)
}

// CharacterHit identifies a caret position as an edge of a cluster:
// FirstCharacterIndex is the cluster's starting character and
// TrailingLength the number of characters the cluster spans.
// TrailingLength == 0 addresses the leading edge, non-zero the
// trailing edge.
type CharacterHit struct {
	// FirstCharacterIndex is the index of the first character of the hit cluster.
	FirstCharacterIndex int

	// TrailingLength is the number of characters between the leading
	// and trailing edges of the cluster. Zero means the leading edge.
	TrailingLength int
}

// Direction specifies text direction.
type Direction int

const (
	// DirectionLTR is left-to-right text (English, French, etc.)
	DirectionLTR Direction = iota
	// DirectionRTL is right-to-left text (Arabic, Hebrew)
	DirectionRTL
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "LTR"
	case DirectionRTL:
		return "RTL"
	default:
		return "Unknown"
	}
}

// IsRightToLeft reports whether the direction is right-to-left.
func (d Direction) IsRightToLeft() bool {
	return d == DirectionRTL
}

// directionForLevel maps a bidi embedding level to a direction:
// even levels are left-to-right, odd levels right-to-left.
func directionForLevel(level int) Direction {
	if level&1 == 1 {
		return DirectionRTL
	}
	return DirectionLTR
}
