// Package glyphrun models shaped glyph runs for text editing UIs.
//
// # Overview
//
// A GlyphRun is an immutable, ordered sequence of glyph ids produced
// by a text shaper for one typeface, size and direction, together with
// per-glyph advances, offsets and a cluster map back to the source
// characters. It answers the two questions every text-selection or
// caret UI needs:
//
//   - hit-testing: given a distance along the run, which character did
//     the user touch? ([GlyphRun.CharacterHitFromDistance])
//   - caret metrics: given a character position, where is its caret
//     and which glyphs render it? ([GlyphRun.DistanceFromCharacterHit],
//     [GlyphRun.FindGlyphIndex])
//
// Both work for bidirectional text (LTR and RTL runs), ligatures
// (many characters per glyph) and combining marks (many glyphs per
// character), with O(log n) cluster lookup.
//
// # Quick Start
//
//	tf, err := glyphrun.ParseTypeface(fontData)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	shaper := glyphrun.NewShaper()
//	runs, err := shaper.Shape("Hello, world", tf, 16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer runs[0].Close()
//
//	// Which character is 40px into the first run?
//	hit, inside := runs[0].CharacterHitFromDistance(40)
//
//	// Where does the caret for that character go?
//	x := runs[0].DistanceFromCharacterHit(hit)
//
// Runs can also be built directly from pre-shaped data with
// [RunBuilder], which validates the per-glyph attribute slices and
// returns an immutable run.
//
// # Collaborators
//
// Font parsing and glyph metrics are consumed through the [Typeface]
// capability; adapters for go-text/typesetting ([GoTextTypeface]) and
// x/image/font/sfnt ([XImageTypeface]) are provided. Platform
// rasterization is consumed through [DrawableFactory]; the drawable is
// materialized lazily at most once per run and released exactly once
// by [GlyphRun.Close]. GPU hosts integrate through [DeviceHandle]
// (gpucontext.DeviceProvider): the host provides the device, glyphrun
// never creates one.
//
// # Logging
//
// glyphrun is silent by default. Call [SetLogger] to enable structured
// logging via log/slog.
package glyphrun
