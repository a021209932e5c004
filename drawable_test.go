package glyphrun

import (
	"errors"
	"sync"
	"testing"
)

// countingFactory records how often CreateDrawable runs.
type countingFactory struct {
	mu    sync.Mutex
	calls int
}

type countingDrawable struct {
	mu     sync.Mutex
	closed int
}

func (d *countingDrawable) Close() error {
	d.mu.Lock()
	d.closed++
	d.mu.Unlock()
	return nil
}

func (f *countingFactory) CreateDrawable(run *GlyphRun) (Drawable, float64, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return &countingDrawable{}, run.Bounds().Width(), nil
}

func buildRunWithFactory(t *testing.T, f DrawableFactory) *GlyphRun {
	t.Helper()
	tf := newFakeTypeface()
	run, err := NewRunBuilder(tf, tf.upem).
		GlyphIndices([]GlyphID{1, 2, 3}).
		Advances([]float64{10, 20, 30}).
		Clusters([]int{0, 1, 2}).
		Characters([]rune("abc"), 0).
		DrawableFactory(f).
		Build()
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	return run
}

func TestDrawable_CreatedOnce(t *testing.T) {
	factory := &countingFactory{}
	run := buildRunWithFactory(t, factory)

	first, err := run.Drawable()
	if err != nil {
		t.Fatalf("Drawable() = %v", err)
	}

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := run.Drawable()
			if err != nil {
				t.Errorf("Drawable() = %v", err)
			}
			if d != first {
				t.Error("Drawable() returned a different handle on repeat access")
			}
		}()
	}
	wg.Wait()

	factory.mu.Lock()
	defer factory.mu.Unlock()
	if factory.calls != 1 {
		t.Errorf("factory invoked %d times, want 1", factory.calls)
	}
}

func TestDrawable_MeasuredWidth(t *testing.T) {
	run := buildRunWithFactory(t, &countingFactory{})
	width, err := run.MeasuredWidth()
	if err != nil {
		t.Fatalf("MeasuredWidth() = %v", err)
	}
	if width != 60 {
		t.Errorf("MeasuredWidth() = %v, want 60", width)
	}
}

func TestClose_ReleasesExactlyOnce(t *testing.T) {
	run := buildRunWithFactory(t, &countingFactory{})
	d, err := run.Drawable()
	if err != nil {
		t.Fatalf("Drawable() = %v", err)
	}

	if err := run.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if err := run.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}

	cd := d.(*countingDrawable)
	cd.mu.Lock()
	defer cd.mu.Unlock()
	if cd.closed != 1 {
		t.Errorf("drawable closed %d times, want 1", cd.closed)
	}
}

func TestClose_WithoutDrawableIsNoOp(t *testing.T) {
	run := buildRunWithFactory(t, &countingFactory{})
	if err := run.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if _, err := run.Drawable(); !errors.Is(err, ErrRunClosed) {
		t.Errorf("Drawable() after Close = %v, want ErrRunClosed", err)
	}
}

func TestInstanceDrawable_Positions(t *testing.T) {
	tf := newFakeTypeface()
	run, err := NewRunBuilder(tf, tf.upem).
		GlyphIndices([]GlyphID{7, 8, 9}).
		Advances([]float64{10, 20, 30}).
		Offsets([]Vector{{X: 0, Y: 0}, {X: 1, Y: -2}, {X: 0, Y: 0}}).
		Clusters([]int{0, 1, 2}).
		Characters([]rune("abc"), 0).
		Build()
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}

	d, err := run.Drawable()
	if err != nil {
		t.Fatalf("Drawable() = %v", err)
	}
	id, ok := d.(*InstanceDrawable)
	if !ok {
		t.Fatalf("default drawable is %T, want *InstanceDrawable", d)
	}

	instances := id.Instances()
	if len(instances) != 3 {
		t.Fatalf("len(Instances()) = %d, want 3", len(instances))
	}

	wantPos := []Vector{{X: 0, Y: 0}, {X: 11, Y: -2}, {X: 30, Y: 0}}
	for i, inst := range instances {
		if inst.Position != wantPos[i] {
			t.Errorf("instance %d position = %+v, want %+v", i, inst.Position, wantPos[i])
		}
		if inst.GID != run.GlyphIndices()[i] {
			t.Errorf("instance %d GID = %d, want %d", i, inst.GID, run.GlyphIndices()[i])
		}
		if inst.Cluster != i {
			t.Errorf("instance %d cluster = %d, want %d", i, inst.Cluster, i)
		}
	}
}

func TestTextureDrawableFactory(t *testing.T) {
	t.Run("nil handle", func(t *testing.T) {
		if _, err := NewTextureDrawableFactory(nil); !errors.Is(err, ErrNilDeviceHandle) {
			t.Errorf("NewTextureDrawableFactory(nil) error = %v, want ErrNilDeviceHandle", err)
		}
	})

	t.Run("null device", func(t *testing.T) {
		factory, err := NewTextureDrawableFactory(NullDeviceHandle{})
		if err != nil {
			t.Fatalf("NewTextureDrawableFactory() = %v", err)
		}

		run := buildRunWithFactory(t, factory)
		d, err := run.Drawable()
		if err != nil {
			t.Fatalf("Drawable() = %v", err)
		}
		td, ok := d.(*TextureDrawable)
		if !ok {
			t.Fatalf("drawable is %T, want *TextureDrawable", d)
		}

		desc := td.Descriptor()
		if desc.Width != 60 {
			t.Errorf("descriptor width = %d, want 60", desc.Width)
		}
		if desc.Height == 0 {
			t.Error("descriptor height = 0, want the run's line height")
		}
		if len(td.Instances()) != 3 {
			t.Errorf("len(Instances()) = %d, want 3", len(td.Instances()))
		}

		if err := run.Close(); err != nil {
			t.Errorf("Close() = %v", err)
		}
	})
}
