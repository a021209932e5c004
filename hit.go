package glyphrun

import "sort"

// FindGlyphIndex returns the index into the glyph arrays of the first
// glyph of the cluster containing characterIndex.
//
// The character index is absolute (same space as Characters().Start)
// and may lie outside the run's covered span: positions before the run
// clamp to glyph 0 and positions past it yield len(GlyphClusters()),
// the one-past-the-end sentinel. The returned index is always the
// canonical cluster start, so combining positions inside a cluster
// resolve to the cluster's first glyph.
//
// ok is false when no cluster covers the position, which only happens
// for runs with non-monotonic cluster data.
//
// The lookup is a single binary search for the largest cluster value
// not exceeding characterIndex (smallest, for RTL), parameterized by
// direction rather than duplicated per direction.
func (r *GlyphRun) FindGlyphIndex(characterIndex int) (glyph int, ok bool) {
	clusters := r.glyphClusters
	n := len(clusters)

	if r.IsLeftToRight() {
		if characterIndex < clusters[0] {
			return 0, true
		}
		if characterIndex > clusters[n-1] {
			return n, true
		}
		// First glyph whose cluster exceeds the target; the cluster
		// containing the target ends just before it.
		i := sort.Search(n, func(k int) bool { return clusters[k] > characterIndex })
		if i == 0 {
			return 0, false
		}
		i--
		// Walk back to the first glyph of the cluster.
		for i > 0 && clusters[i-1] == clusters[i] {
			i--
		}
		return i, true
	}

	// RTL: clusters are stored in descending character order, so the
	// first/last comparisons mirror.
	if characterIndex > clusters[0] {
		return 0, true
	}
	if characterIndex < clusters[n-1] {
		return n, true
	}
	// Descending order puts every glyph of a cluster after all higher
	// cluster values, so the first glyph at or below the target is
	// already the cluster start.
	i := sort.Search(n, func(k int) bool { return clusters[k] <= characterIndex })
	if i == n {
		return 0, false
	}
	return i, true
}

// clusterStart walks a glyph index back to the first glyph sharing its
// cluster value.
func (r *GlyphRun) clusterStart(i int) int {
	for i > 0 && r.glyphClusters[i-1] == r.glyphClusters[i] {
		i--
	}
	return i
}

// FindNearestCharacterHit returns the canonical character hit for the
// cluster containing index, together with the accumulated advance
// width of the whole cluster.
//
// The hit's FirstCharacterIndex is the cluster's starting character
// and TrailingLength the number of characters the cluster spans; for
// clusters whose trailing combining characters have no dedicated glyph
// the trailing length is extended to exactly reach the end of the
// character range.
func (r *GlyphRun) FindNearestCharacterHit(index int) (CharacterHit, float64) {
	clusters := r.glyphClusters
	n := len(clusters)

	start, ok := r.FindGlyphIndex(index)
	if !ok {
		return CharacterHit{FirstCharacterIndex: index}, 0
	}
	if start == n {
		// Past the run: snap to the last cluster.
		start = r.clusterStart(n - 1)
	}

	cluster := clusters[start]
	var width float64
	end := start
	for end < n && clusters[end] == cluster {
		width += r.advance(end)
		end++
	}

	// The characters spanned by the cluster stop where the next cluster
	// begins; in glyph order that neighbor follows the cluster for LTR
	// and precedes it for RTL. Without a neighbor the cluster spans the
	// remaining character range.
	next := r.charEnd
	if r.IsLeftToRight() {
		if end < n {
			next = clusters[end]
		}
	} else {
		if start > 0 {
			next = clusters[start-1]
		}
	}
	trailing := next - cluster
	if trailing < 0 {
		trailing = 0
	}
	return CharacterHit{FirstCharacterIndex: cluster, TrailingLength: trailing}, width
}

// DistanceFromCharacterHit returns the cumulative advance width from
// the run's leading edge to the given hit's edge, the x offset at
// which a caret for that hit is drawn. Hits ending past the character
// range clamp to the full run width.
func (r *GlyphRun) DistanceFromCharacterHit(hit CharacterHit) float64 {
	if hit.FirstCharacterIndex+hit.TrailingLength > r.charEnd {
		return r.Bounds().Width()
	}

	gi, ok := r.FindGlyphIndex(hit.FirstCharacterIndex)
	if !ok {
		return 0
	}
	n := len(r.glyphClusters)
	if hit.TrailingLength > 0 && gi < n {
		// Trailing edge: advance past every glyph of the cluster.
		cluster := r.glyphClusters[gi]
		for gi < n && r.glyphClusters[gi] == cluster {
			gi++
		}
	}

	var distance float64
	for k := 0; k < gi; k++ {
		distance += r.advance(k)
	}
	return distance
}

// CharacterHitFromDistance returns the character hit nearest to the
// given distance from the run's leading edge. isInside reports whether
// the distance fell within the run; distances before or past the run
// resolve to the run's first or last cluster edge.
func (r *GlyphRun) CharacterHitFromDistance(distance float64) (hit CharacterHit, isInside bool) {
	clusters := r.glyphClusters
	n := len(clusters)
	ltr := r.IsLeftToRight()

	if distance < 0 {
		// Before the run. The leftmost cluster is the logical first for
		// LTR (report its leading edge) but the logical last for RTL
		// (keep the trailing form).
		if ltr {
			first, _ := r.FindNearestCharacterHit(clusters[0])
			return CharacterHit{FirstCharacterIndex: first.FirstCharacterIndex}, false
		}
		last, _ := r.FindNearestCharacterHit(clusters[n-1])
		return last, false
	}

	if distance > r.Bounds().Width() {
		// After the run: mirror of the case above.
		if ltr {
			last, _ := r.FindNearestCharacterHit(clusters[n-1])
			return last, false
		}
		first, _ := r.FindNearestCharacterHit(clusters[0])
		return CharacterHit{FirstCharacterIndex: first.FirstCharacterIndex}, false
	}

	// Scan until the running total would reach the distance; that
	// glyph's cluster is the hit cluster.
	index := n - 1
	var x float64
	for i := 0; i < n; i++ {
		adv := r.advance(i)
		if x+adv >= distance {
			index = i
			break
		}
		x += adv
	}

	nearest, width := r.FindNearestCharacterHit(clusters[index])
	offset := r.DistanceFromCharacterHit(CharacterHit{FirstCharacterIndex: nearest.FirstCharacterIndex})

	// Midpoint tie-break: the far half of the cluster hits the
	// trailing edge.
	if distance > offset+width/2 {
		return nearest, true
	}
	return CharacterHit{FirstCharacterIndex: nearest.FirstCharacterIndex}, true
}

// NextCaretCharacterHit returns the next caret position after hit.
// A leading-edge hit moves to the same cluster's trailing edge; a
// trailing-edge hit moves to the leading edge of the following
// cluster. A result equal to the input signals that the caret cannot
// move further; callers detect exhaustion by comparing the result to
// the input.
func (r *GlyphRun) NextCaretCharacterHit(hit CharacterHit) CharacterHit {
	if hit.TrailingLength == 0 {
		next, _ := r.FindNearestCharacterHit(hit.FirstCharacterIndex)
		return next
	}
	index := hit.FirstCharacterIndex + hit.TrailingLength
	if index >= r.charEnd {
		return hit
	}
	next, _ := r.FindNearestCharacterHit(index)
	return CharacterHit{FirstCharacterIndex: next.FirstCharacterIndex}
}

// PreviousCaretCharacterHit returns the caret position before hit.
// A trailing-edge hit collapses to the same cluster's leading edge; a
// leading-edge hit moves to the leading edge of the preceding cluster.
// A result equal to the input signals that the caret is at the start
// of the character range.
func (r *GlyphRun) PreviousCaretCharacterHit(hit CharacterHit) CharacterHit {
	if hit.TrailingLength != 0 {
		return CharacterHit{FirstCharacterIndex: hit.FirstCharacterIndex}
	}
	if hit.FirstCharacterIndex <= r.charStart {
		return hit
	}
	prev, _ := r.FindNearestCharacterHit(hit.FirstCharacterIndex - 1)
	return CharacterHit{FirstCharacterIndex: prev.FirstCharacterIndex}
}
