package glyphrun

import (
	"errors"
	"math"
	"testing"
)

func TestShaper_Validation(t *testing.T) {
	s := NewShaper()
	tf := parseGoTextRegular(t)

	if runs, err := s.Shape("", tf, 16); err != nil || runs != nil {
		t.Errorf("Shape(\"\") = %v, %v; want nil, nil", runs, err)
	}
	if _, err := s.Shape("x", nil, 16); !errors.Is(err, ErrNoTypeface) {
		t.Errorf("Shape with nil typeface error = %v, want ErrNoTypeface", err)
	}
	if _, err := s.Shape("x", tf, 0); !errors.Is(err, ErrInvalidEmSize) {
		t.Errorf("Shape with zero em size error = %v, want ErrInvalidEmSize", err)
	}
}

func TestShaper_LatinText(t *testing.T) {
	s := NewShaper()
	tf := parseGoTextRegular(t)

	runs, err := s.Shape("hello world", tf, 16)
	if err != nil {
		t.Fatalf("Shape() = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, want 1", len(runs))
	}

	run := runs[0]
	if !run.IsLeftToRight() {
		t.Error("latin run reports right-to-left")
	}
	if got := len(run.GlyphIndices()); got != 11 {
		t.Errorf("len(GlyphIndices()) = %d, want 11", got)
	}

	clusters := run.GlyphClusters()
	for i := 1; i < len(clusters); i++ {
		if clusters[i] < clusters[i-1] {
			t.Fatalf("clusters not non-decreasing at %d: %v", i, clusters)
		}
	}

	var sum float64
	for i := range run.GlyphIndices() {
		sum += run.advance(i)
	}
	if w := run.Bounds().Width(); math.Abs(w-sum) > 1e-9 {
		t.Errorf("Bounds().Width() = %v, sum of advances = %v", w, sum)
	}
	if w, err := run.MeasuredWidth(); err != nil {
		t.Errorf("MeasuredWidth() = %v", err)
	} else if math.Abs(w-sum) > 1e-9 {
		t.Errorf("MeasuredWidth() = %v, sum of advances = %v", w, sum)
	}
	if sum <= 0 {
		t.Errorf("total advance = %v, want > 0", sum)
	}
}

func TestShaper_BidiText(t *testing.T) {
	s := NewShaper()
	tf := parseGoTextRegular(t)

	runs, err := s.Shape("abc שלום", tf, 16)
	if err != nil {
		t.Fatalf("Shape() = %v", err)
	}
	if len(runs) < 2 {
		t.Fatalf("len(runs) = %d, want at least 2", len(runs))
	}

	first, last := runs[0], runs[len(runs)-1]
	if !first.IsLeftToRight() {
		t.Error("first run reports right-to-left, want left-to-right")
	}
	if last.IsLeftToRight() {
		t.Error("last run reports left-to-right, want right-to-left")
	}

	// RTL glyphs come back in visual order: cluster values descend.
	clusters := last.GlyphClusters()
	for i := 1; i < len(clusters); i++ {
		if clusters[i] > clusters[i-1] {
			t.Fatalf("RTL clusters not non-increasing at %d: %v", i, clusters)
		}
	}

	// Runs tile the text: character ranges are contiguous in logical order.
	for i := 1; i < len(runs); i++ {
		prev, cur := runs[i-1].Characters(), runs[i].Characters()
		if cur.Start != prev.End() {
			t.Errorf("run %d starts at %d, previous ends at %d", i, cur.Start, prev.End())
		}
	}
}

func TestShaper_ClustersWithinCharacterRange(t *testing.T) {
	s := NewShaper()
	tf := parseGoTextRegular(t)

	runs, err := s.Shape("abc שלום", tf, 16)
	if err != nil {
		t.Fatalf("Shape() = %v", err)
	}
	for ri, run := range runs {
		cr := run.Characters()
		for gi, c := range run.GlyphClusters() {
			if c < cr.Start || c >= cr.End() {
				t.Errorf("run %d glyph %d cluster %d outside [%d, %d)", ri, gi, c, cr.Start, cr.End())
			}
		}
	}
}

func TestShaper_HitTestingOnShapedRun(t *testing.T) {
	s := NewShaper()
	tf := parseGoTextRegular(t)

	runs, err := s.Shape("hello", tf, 16)
	if err != nil {
		t.Fatalf("Shape() = %v", err)
	}
	run := runs[0]

	// Distance round trip across the whole run.
	width := run.Bounds().Width()
	for _, frac := range []float64{0, 0.25, 0.5, 0.75, 0.999} {
		d := width * frac
		hit, inside := run.CharacterHitFromDistance(d)
		if !inside {
			t.Errorf("CharacterHitFromDistance(%v) reported outside", d)
		}
		back := run.DistanceFromCharacterHit(hit)
		if back < 0 || back > width+1e-9 {
			t.Errorf("DistanceFromCharacterHit(%+v) = %v, outside [0, %v]", hit, back, width)
		}
	}

	// Forward caret navigation reaches the end of the run.
	hit := CharacterHit{FirstCharacterIndex: run.Characters().Start}
	for range 2*len(run.Characters().Runes) + 2 {
		next := run.NextCaretCharacterHit(hit)
		if next == hit {
			break
		}
		hit = next
	}
	if got := hit.FirstCharacterIndex + hit.TrailingLength; got != run.Characters().End() {
		t.Errorf("forward navigation stopped at %d, want %d", got, run.Characters().End())
	}
}

func TestShaper_WithDrawableFactory(t *testing.T) {
	factory := &countingFactory{}
	s := NewShaper(WithDrawableFactory(factory))
	tf := parseGoTextRegular(t)

	runs, err := s.Shape("hi", tf, 16)
	if err != nil {
		t.Fatalf("Shape() = %v", err)
	}
	if _, err := runs[0].Drawable(); err != nil {
		t.Fatalf("Drawable() = %v", err)
	}
	factory.mu.Lock()
	defer factory.mu.Unlock()
	if factory.calls != 1 {
		t.Errorf("factory invoked %d times, want 1", factory.calls)
	}
}

func TestShaper_ConcurrentShaping(t *testing.T) {
	s := NewShaper()
	tf := parseGoTextRegular(t)

	done := make(chan error, 8)
	for range 8 {
		go func() {
			_, err := s.Shape("concurrent shaping", tf, 14)
			done <- err
		}()
	}
	for range 8 {
		if err := <-done; err != nil {
			t.Errorf("Shape() = %v", err)
		}
	}
}
