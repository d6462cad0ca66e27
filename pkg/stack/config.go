package stack

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"github.com/abworrall/photostack/pkg/filter"
	"github.com/abworrall/photostack/pkg/geom"
	"github.com/abworrall/photostack/pkg/response"
)

// Config holds the default parameters a new stack's filters start with.
type Config struct {
	Enhancement     EnhancementConfig
	Crop            geom.Rect
	ColorAdjustment ColorAdjustmentConfig
	TiltShift       TiltShiftConfig
	Text            TextConfig

	// A response preset name; "" is None
	Effect string

	// Width of a new sticker, as a fraction of the image width
	StickerSize float64 `validate:"gt=0,lte=1"`
}

type EnhancementConfig struct {
	Enabled            bool
	StoreEnhancedImage bool
	Operator           string `validate:"omitempty,oneof=levels drago03 linear reinhard05"`
}

type ColorAdjustmentConfig struct {
	Brightness float64 `validate:"gte=-1,lte=1"`
	Contrast   float64 `validate:"gte=0,lte=2"`
	Saturation float64 `validate:"gte=0,lte=2"`
}

type TiltShiftConfig struct {
	Mode       string  `validate:"omitempty,oneof=off linear radial"`
	FocusBand  float64 `validate:"gt=0,lte=1"`
	BlurRadius float64 `validate:"gte=0,lte=100"`
}

type TextConfig struct {
	Text     string
	Color    string  `validate:"hexcolor"`
	FontSize float64 `validate:"gt=0,lte=1"`
}

var validate = validator.New()

func NewConfig() Config {
	return Config{
		Enhancement: EnhancementConfig{
			StoreEnhancedImage: true,
			Operator:           filter.DefaultOperator,
		},
		Crop: geom.UnitRect(),
		ColorAdjustment: ColorAdjustmentConfig{
			Contrast:   1,
			Saturation: 1,
		},
		TiltShift: TiltShiftConfig{
			FocusBand:  filter.DefaultFocusBand,
			BlurRadius: filter.DefaultBlurRadius,
		},
		Text: TextConfig{
			Color:    filter.DefaultTextColor,
			FontSize: filter.DefaultTextFontSize,
		},
		StickerSize: filter.DefaultStickerSize,
	}
}

// LoadConfig reads a YAML file over the defaults; fields the file doesn't
// mention keep their default values.
func LoadConfig(filename string) (Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("read config '%s': %v", filename, err)
	}
	c, err := newConfigFromYaml(b)
	if err != nil {
		return Config{}, fmt.Errorf("parse config '%s': %v", filename, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config '%s': %w", filename, err)
	}
	return c, nil
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func (c Config) AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		Logger().Error("can't marshal config yaml", "err", err)
		return ""
	}
	return string(b)
}

// Validate checks the ranges in the struct tags, and that the named
// strategies exist.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if _, err := response.ParseType(c.Effect); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

func (c Config) effectType() response.Type {
	t, _ := response.ParseType(c.Effect)
	return t
}

func (c Config) tiltShiftMode() filter.TiltShiftMode {
	m, _ := filter.ParseTiltShiftMode(c.TiltShift.Mode)
	return m
}
