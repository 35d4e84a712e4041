package brickhole

import (
	"github.com/vovakirdan/brickhole/internal/config"
	"github.com/vovakirdan/brickhole/internal/core"
)

// Variant is a cosmetic character profile chosen at session start.
type Variant struct {
	ID        string
	Name      string
	BallColor core.Color
	Particles []core.Color
	Messages  []string
}

// VariantsFrom converts configured variants. Unknown color names fall back to
// the default color; config validation rejects them earlier.
func VariantsFrom(cfgs []config.VariantConfig) []Variant {
	out := make([]Variant, 0, len(cfgs))
	for _, vc := range cfgs {
		v := Variant{
			ID:       vc.ID,
			Name:     vc.Name,
			Messages: append([]string(nil), vc.Messages...),
		}
		if v.Name == "" {
			v.Name = vc.ID
		}
		v.BallColor, _ = core.ParseColor(vc.BallColor)
		for _, name := range vc.Particles {
			if c, ok := core.ParseColor(name); ok {
				v.Particles = append(v.Particles, c)
			}
		}
		if len(v.Particles) == 0 {
			v.Particles = []core.Color{core.ColorWhite}
		}
		out = append(out, v)
	}
	return out
}
