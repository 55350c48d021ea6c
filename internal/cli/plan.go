package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/marceneiro/casework/pkg/compose"
	"github.com/marceneiro/casework/pkg/errors"
	"github.com/marceneiro/casework/pkg/panel"
	"github.com/marceneiro/casework/pkg/param"
	"github.com/marceneiro/casework/pkg/sink"
)

// Plan is a declarative assembly plan decoded from TOML. Assemblies are
// applied in file order against one shared document, so names and
// namespaces must be unique across the whole plan.
type Plan struct {
	Assemblies []Assembly `toml:"assembly"`
}

// Assembly is one [[assembly]] table. Kind selects the composition;
// the other fields feed its spec. Dimensions are millimetres.
type Assembly struct {
	Kind         string      `toml:"kind"` // "panel", "plinth", "niche" or "wardrobe"
	Name         string      `toml:"name"`
	Namespace    string      `toml:"namespace"` // wardrobe only
	Width        float64     `toml:"width"`
	Height       float64     `toml:"height"`
	Depth        float64     `toml:"depth"`
	Thickness    float64     `toml:"thickness"`
	PlinthHeight float64     `toml:"plinth_height"` // wardrobe only
	BackRatio    *float64    `toml:"back_ratio"`    // niche and wardrobe; nil means fully closed
	Orientation  string      `toml:"orientation"`   // panel only; defaults to "front"
	Position     [3]float64  `toml:"position"`
	Offsets      PlanOffsets `toml:"offsets"` // plinth only
}

// PlanOffsets narrows a plinth's footprint per side.
type PlanOffsets struct {
	Front float64 `toml:"front"`
	Back  float64 `toml:"back"`
	Left  float64 `toml:"left"`
	Right float64 `toml:"right"`
}

// LoadPlan reads and decodes a TOML plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPlan, err, "reading plan %q", path)
	}
	return parsePlan(data)
}

func parsePlan(data []byte) (*Plan, error) {
	var plan Plan
	if err := toml.Unmarshal(data, &plan); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPlan, err, "decoding plan")
	}
	if len(plan.Assemblies) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidPlan, "plan declares no assemblies")
	}
	return &plan, nil
}

// Apply emits every assembly into snk in plan order and returns the
// emitted panels. The first failing assembly aborts the whole plan;
// earlier assemblies stay in the document.
func (p *Plan) Apply(snk sink.Sink) ([]panel.Panel, error) {
	var all []panel.Panel
	for i, a := range p.Assemblies {
		panels, err := a.apply(snk)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPlan, err,
				"assembly %d (%s)", i+1, a.Kind)
		}
		all = append(all, panels...)
	}
	return all, nil
}

func (a Assembly) apply(snk sink.Sink) ([]panel.Panel, error) {
	pos := [3]param.Value{
		param.Lit(a.Position[0]), param.Lit(a.Position[1]), param.Lit(a.Position[2]),
	}

	switch a.Kind {
	case "panel":
		orientation := panel.Front
		if a.Orientation != "" {
			var err error
			if orientation, err = panel.ParseOrientation(a.Orientation); err != nil {
				return nil, err
			}
		}
		p, err := panel.Build(snk, panel.Spec{
			Name:        a.Name,
			Width:       param.Lit(a.Width),
			Height:      param.Lit(a.Height),
			Thickness:   param.Lit(a.Thickness),
			Orientation: orientation,
			Position:    pos,
		})
		if err != nil {
			return nil, err
		}
		return []panel.Panel{p}, nil

	case "plinth":
		return compose.Plinth(snk, compose.PlinthSpec{
			Name:      a.Name,
			Height:    param.Lit(a.Height),
			Width:     param.Lit(a.Width),
			Depth:     param.Lit(a.Depth),
			Thickness: param.Lit(a.Thickness),
			Position:  pos,
			Offsets: compose.Offsets{
				Front: param.Lit(a.Offsets.Front),
				Back:  param.Lit(a.Offsets.Back),
				Left:  param.Lit(a.Offsets.Left),
				Right: param.Lit(a.Offsets.Right),
			},
		})

	case "niche":
		return compose.Niche(snk, compose.NicheSpec{
			Name:      a.Name,
			Height:    param.Lit(a.Height),
			Width:     param.Lit(a.Width),
			Depth:     param.Lit(a.Depth),
			Thickness: param.Lit(a.Thickness),
			Position:  pos,
			BackRatio: a.backRatio(),
		})

	case "wardrobe":
		return compose.Wardrobe(snk, compose.WardrobeSpec{
			Name:         a.Name,
			Namespace:    a.Namespace,
			Height:       a.Height,
			Width:        a.Width,
			Depth:        a.Depth,
			Thickness:    a.Thickness,
			PlinthHeight: a.PlinthHeight,
			BackRatio:    a.backRatio(),
		})
	}

	return nil, errors.New(errors.ErrCodeInvalidPlan,
		"unknown assembly kind %q, expected panel, plinth, niche or wardrobe", a.Kind)
}

func (a Assembly) backRatio() float64 {
	if a.BackRatio == nil {
		return 1
	}
	return *a.BackRatio
}
