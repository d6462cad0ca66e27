package filter

import (
	"fmt"
	"image"
	"reflect"

	"github.com/codahale/hdrhistogram"

	"github.com/abworrall/photostack/pkg/pixel"
)

const (
	DefaultOperator = "levels"

	// Percentiles of luminance that get stretched to black and white.
	levelsLow  = 1.0
	levelsHigh = 99.0
)

// EnhancementFilter is the automatic "make it look better" stage. When
// StoreEnhancedImage is set, the result for the last source image is
// kept, so re-rendering the same photo doesn't redo the work.
type EnhancementFilter struct {
	toggle
	StoreEnhancedImage bool
	Operator           string

	source   image.Image
	enhanced image.Image
}

func NewEnhancementFilter() *EnhancementFilter {
	return &EnhancementFilter{Operator: DefaultOperator}
}

func (f *EnhancementFilter) Identifier() string { return IDEnhancement }

func (f *EnhancementFilter) String() string {
	return fmt.Sprintf("Enhancement[enabled=%v, op=%s, store=%v]", f.enabled, f.Operator, f.StoreEnhancedImage)
}

// Copy doesn't carry the stored result over.
func (f *EnhancementFilter) Copy() *EnhancementFilter {
	return &EnhancementFilter{
		toggle:             f.toggle,
		StoreEnhancedImage: f.StoreEnhancedImage,
		Operator:           f.Operator,
	}
}

func (f *EnhancementFilter) Clone() Filter { return f.Copy() }

// Invalidate drops any stored result.
func (f *EnhancementFilter) Invalidate() {
	f.source = nil
	f.enhanced = nil
}

// HasStoredImage is true if the next Apply with img is a cache hit.
func (f *EnhancementFilter) HasStoredImage(img image.Image) bool {
	return f.StoreEnhancedImage && f.enhanced != nil && sameImage(f.source, img)
}

func (f *EnhancementFilter) Apply(img image.Image) (image.Image, error) {
	if f.HasStoredImage(img) {
		return f.enhanced, nil
	}

	var out image.Image
	var err error
	switch f.Operator {
	case "", DefaultOperator:
		out = stretchLevels(img)
	default:
		out, err = toneMap(f.Operator, img)
	}
	if err != nil {
		return nil, fmt.Errorf("enhance: %v", err)
	}

	if f.StoreEnhancedImage {
		f.source, f.enhanced = img, out
	}
	return out, nil
}

// sameImage is true if a and b are the same pointer.
func sameImage(a, b image.Image) bool {
	if a == nil || b == nil {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != reflect.Pointer || vb.Kind() != reflect.Pointer {
		return false
	}
	return va.Type() == vb.Type() && va.Pointer() == vb.Pointer()
}

// stretchLevels maps the low and high luminance percentiles onto black and
// white. A flat image has nothing to stretch, and comes back as is.
func stretchLevels(img image.Image) image.Image {
	b := img.Bounds()
	if b.Empty() {
		return img
	}

	// Values are offset by one, as the histogram wants a positive minimum
	hist := hdrhistogram.New(1, 0x10000+1, 3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := pixel.FromColor(img.At(x, y))
			lum := pixel.Clamp(c.Luminance(), 0, 1)
			hist.RecordValue(int64(lum*0xFFFF) + 1)
		}
	}

	// Small images can round a percentile's count down to zero, which
	// would land below anything recorded
	loVal := max(hist.ValueAtQuantile(levelsLow), hist.Min())
	hiVal := min(hist.ValueAtQuantile(levelsHigh), hist.Max())
	lo := pixel.Clamp(float64(loVal-1)/0xFFFF, 0, 1)
	hi := pixel.Clamp(float64(hiVal-1)/0xFFFF, 0, 1)
	if hi-lo < 1.0/256 {
		return img
	}

	scale := 1.0 / (hi - lo)
	dst := image.NewRGBA64(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := pixel.FromColor(img.At(x, y))
			c.R = (c.R - lo) * scale
			c.G = (c.G - lo) * scale
			c.B = (c.B - lo) * scale
			dst.SetRGBA64(x, y, c.Color())
		}
	}
	return dst
}
