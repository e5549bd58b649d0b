package pagetext

import (
	"fmt"
	"math"
)

// DefaultSpaceFraction is the fraction of the previous glyph's width a gap
// has to exceed before it reads as a space: gap > width / DefaultSpaceFraction.
const DefaultSpaceFraction = 3

// Config holds segmentation policy for a Tree and all of its layer sub-trees.
type Config struct {
	// SpaceFraction divides the previous glyph's width to give the gap
	// tolerance of the space test. Zero means DefaultSpaceFraction.
	SpaceFraction float64 `yaml:"space_fraction"`
}

// DefaultConfig returns the segmentation policy used by most documents.
func DefaultConfig() Config {
	return Config{
		SpaceFraction: DefaultSpaceFraction,
	}
}

// Validate reports whether the policy can be used for segmentation.
func (c Config) Validate() error {
	if math.IsNaN(c.SpaceFraction) || math.IsInf(c.SpaceFraction, 0) {
		return fmt.Errorf("space fraction must be finite, got %v", c.SpaceFraction)
	}
	if c.SpaceFraction < 0 {
		return fmt.Errorf("space fraction must not be negative, got %v", c.SpaceFraction)
	}
	return nil
}

func (c Config) spaceFraction() float64 {
	if c.SpaceFraction <= 0 || math.IsNaN(c.SpaceFraction) || math.IsInf(c.SpaceFraction, 0) {
		return DefaultSpaceFraction
	}
	return c.SpaceFraction
}
