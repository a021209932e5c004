package glyphrun

import (
	"math"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// Key principle: glyphrun RECEIVES the device from the host, it does
// NOT create one. The host application (e.g., a gogpu.App) implements
// DeviceHandle and passes it to NewTextureDrawableFactory, so glyph
// textures share the host's GPU resources.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// glyphrun-specific name while staying compatible with the gpucontext
// ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used for tests and CPU-only hosts where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}

// TextureDescriptor describes the texture a run's drawable occupies.
// This mirrors the WebGPU GPUTextureDescriptor specification.
type TextureDescriptor struct {
	// Label is an optional debug label for the texture.
	Label string

	// Width is the texture width in pixels.
	Width uint32

	// Height is the texture height in pixels.
	Height uint32

	// Format is the texture pixel format.
	Format gputypes.TextureFormat
}

// TextureDrawable is a GPU-backed Drawable: the positioned glyph
// instances of a run together with the descriptor of the texture the
// host renders them into. The host owns upload and rasterization; the
// drawable owns the descriptor and instance data.
type TextureDrawable struct {
	handle     DeviceHandle
	descriptor TextureDescriptor
	instances  []GlyphInstance
}

// DeviceHandle returns the handle of the device the drawable targets.
func (d *TextureDrawable) DeviceHandle() DeviceHandle { return d.handle }

// Descriptor returns the texture descriptor sized to the run's bounds.
func (d *TextureDrawable) Descriptor() TextureDescriptor { return d.descriptor }

// Instances returns the positioned glyphs in visual order.
// The returned slice is shared with the drawable and must not be modified.
func (d *TextureDrawable) Instances() []GlyphInstance { return d.instances }

// Close implements Drawable.
func (d *TextureDrawable) Close() error {
	d.instances = nil
	return nil
}

// TextureDrawableFactory materializes TextureDrawables against a host
// GPU device.
type TextureDrawableFactory struct {
	handle DeviceHandle
	format gputypes.TextureFormat
}

// NewTextureDrawableFactory creates a factory that targets the given
// host device. The handle must be provided by the host application;
// pass NullDeviceHandle for CPU-only operation.
func NewTextureDrawableFactory(handle DeviceHandle) (*TextureDrawableFactory, error) {
	if handle == nil {
		return nil, ErrNilDeviceHandle
	}
	format := handle.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatRGBA8Unorm
	}
	return &TextureDrawableFactory{handle: handle, format: format}, nil
}

// CreateDrawable implements DrawableFactory.
func (f *TextureDrawableFactory) CreateDrawable(run *GlyphRun) (Drawable, float64, error) {
	instances, width := positionGlyphs(run)
	bounds := run.Bounds()
	d := &TextureDrawable{
		handle: f.handle,
		descriptor: TextureDescriptor{
			Label:  "glyphrun",
			Width:  uint32(math.Ceil(bounds.Width())),
			Height: uint32(math.Ceil(bounds.Height())),
			Format: f.format,
		},
		instances: instances,
	}
	return d, width, nil
}
