package site

import (
	apperrors "github.com/rafterlab/rafterplan/pkg/errors"
	"github.com/rafterlab/rafterplan/pkg/plan"
	"github.com/rafterlab/rafterplan/pkg/roof"
)

// siteFile is the on-disk shape shared by every format. Config fields are
// pointers so that an absent key falls back to the default while an
// explicit zero stays zero.
type siteFile struct {
	Name      string      `toml:"name" yaml:"name" json:"name"`
	Config    configFile  `toml:"config" yaml:"config" json:"config"`
	Positions [][]float64 `toml:"positions" yaml:"positions" json:"positions"`
	Panels    []panelFile `toml:"panels" yaml:"panels" json:"panels"`
}

type configFile struct {
	Width           *float64 `toml:"width" yaml:"width" json:"width"`
	Height          *float64 `toml:"height" yaml:"height" json:"height"`
	Spacing         *float64 `toml:"spacing" yaml:"spacing" json:"spacing"`
	FirstRafter     *float64 `toml:"first_rafter" yaml:"first_rafter" json:"first_rafter"`
	EdgeClearance   *float64 `toml:"edge_clearance" yaml:"edge_clearance" json:"edge_clearance"`
	MaxSpan         *float64 `toml:"max_span" yaml:"max_span" json:"max_span"`
	CantileverLimit *float64 `toml:"cantilever_limit" yaml:"cantilever_limit" json:"cantilever_limit"`
	JointTolerance  *float64 `toml:"joint_tolerance" yaml:"joint_tolerance" json:"joint_tolerance"`
	RowTolerance    *float64 `toml:"row_tolerance" yaml:"row_tolerance" json:"row_tolerance"`
}

type panelFile struct {
	X      float64  `toml:"x" yaml:"x" json:"x"`
	Y      float64  `toml:"y" yaml:"y" json:"y"`
	Width  *float64 `toml:"width" yaml:"width" json:"width"`
	Height *float64 `toml:"height" yaml:"height" json:"height"`
}

// buildSite turns a decoded site file into a validated Site. Explicit
// panel rectangles come first, then bare positions expanded to the
// default panel size, both in file order.
func buildSite(raw siteFile, path string) (*Site, error) {
	name := raw.Name
	if name == "" {
		name = stem(path)
	}
	if err := apperrors.ValidateSiteName(name); err != nil {
		return nil, err
	}

	cfg := plan.DefaultConfig()
	overlay(&cfg.PanelWidth, raw.Config.Width)
	overlay(&cfg.PanelHeight, raw.Config.Height)
	overlay(&cfg.Spacing, raw.Config.Spacing)
	overlay(&cfg.FirstRafter, raw.Config.FirstRafter)
	overlay(&cfg.EdgeClearance, raw.Config.EdgeClearance)
	overlay(&cfg.MaxSpan, raw.Config.MaxSpan)
	overlay(&cfg.CantileverLimit, raw.Config.CantileverLimit)
	overlay(&cfg.JointTolerance, raw.Config.JointTolerance)
	overlay(&cfg.RowTolerance, raw.Config.RowTolerance)
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "site %q", name)
	}

	var panels []roof.Panel
	for i, pf := range raw.Panels {
		p := roof.Panel{X: pf.X, Y: pf.Y, Width: cfg.PanelWidth, Height: cfg.PanelHeight}
		overlay(&p.Width, pf.Width)
		overlay(&p.Height, pf.Height)
		if err := p.Validate(); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidPanel, err, "site %q panel %d", name, i)
		}
		panels = append(panels, p)
	}
	for i, pos := range raw.Positions {
		if len(pos) != 2 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidSite,
				"site %q position %d must be [x, y], got %d values", name, i, len(pos))
		}
		panels = append(panels, cfg.PanelAt(pos[0], pos[1]))
	}
	if len(panels) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidSite, "site %q has no panels", name)
	}

	return &Site{Name: name, Config: cfg, Panels: panels}, nil
}

func overlay(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
