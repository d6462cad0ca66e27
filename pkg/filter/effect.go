package filter

import (
	"fmt"
	"image"

	"github.com/abworrall/photostack/pkg/response"
)

// EffectFilter applies one of the response presets.
type EffectFilter struct {
	toggle
	Type response.Type
}

func NewEffectFilter() *EffectFilter {
	return &EffectFilter{toggle: toggle{enabled: true}}
}

func (f *EffectFilter) Identifier() string  { return IDEffect }
func (f *EffectFilter) DisplayName() string { return f.Type.Preset().DisplayName }
func (f *EffectFilter) String() string      { return fmt.Sprintf("Effect[%s]", f.Type) }

func (f *EffectFilter) Copy() *EffectFilter {
	c := *f
	return &c
}

func (f *EffectFilter) Clone() Filter { return f.Copy() }

func (f *EffectFilter) Apply(img image.Image) (image.Image, error) {
	return f.Type.Preset().Apply(img)
}
