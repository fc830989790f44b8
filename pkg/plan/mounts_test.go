package plan

import (
	"errors"
	"math"
	"testing"

	"github.com/rafterlab/rafterplan/pkg/roof"
)

// wideZoneConfig exercises intermediate-mount placement: rafters every 20
// starting at 0, spans capped at 50.
func wideZoneConfig() Config {
	return Config{
		PanelWidth:      100,
		PanelHeight:     50,
		Spacing:         20,
		FirstRafter:     0,
		EdgeClearance:   5,
		MaxSpan:         50,
		CantileverLimit: 16,
		JointTolerance:  1,
	}
}

func mountXs(ms []Mount) []float64 {
	xs := make([]float64, len(ms))
	for i, m := range ms {
		xs[i] = m.X
	}
	return xs
}

func TestMountPlacement(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		panel      roof.Panel
		wantXs     []float64
		wantHang   []bool // cantilever flag per mount
		wantNoRaft bool
	}{
		{
			name:     "greedy intermediate skips a rafter",
			cfg:      wideZoneConfig(),
			panel:    roof.Panel{X: 0, Y: 0, Width: 100, Height: 50},
			wantXs:   []float64{20, 60, 80},
			wantHang: []bool{true, false, true},
		},
		{
			name:     "two extremes within one span",
			cfg:      DefaultConfig(),
			panel:    roof.Panel{X: 90.1, Y: 0, Width: 44.7, Height: 71.1},
			wantXs:   []float64{101, 117},
			wantHang: []bool{false, true},
		},
		{
			name:     "mount exactly on zone boundary",
			cfg:      wideZoneConfig(),
			panel:    roof.Panel{X: 15, Y: 0, Width: 70, Height: 50}, // zone [20, 80]
			wantXs:   []float64{20, 60, 80},
			wantHang: []bool{false, false, false},
		},
		{
			name: "single rafter in zone",
			cfg:  DefaultConfig(),
			// zone [100, 106] holds only the rafter at 101
			panel:    roof.Panel{X: 98, Y: 0, Width: 10, Height: 71.1},
			wantXs:   []float64{101},
			wantHang: []bool{false},
		},
		{
			name: "single rafter with both edges overhanging",
			cfg: Config{
				PanelWidth: 100, PanelHeight: 50,
				Spacing: 60, FirstRafter: 0,
				EdgeClearance: 2, MaxSpan: 60,
				CantileverLimit: 16, JointTolerance: 1,
			},
			// zone [12, 98] holds only the rafter at 60; overhangs 60 and 40
			panel:    roof.Panel{X: 10, Y: 0, Width: 90, Height: 50},
			wantXs:   []float64{60},
			wantHang: []bool{true},
		},
		{
			name:       "no rafter between grid lines",
			cfg:        DefaultConfig(),
			panel:      roof.Panel{X: 6, Y: 0, Width: 10, Height: 71.1}, // zone [8, 14]
			wantNoRaft: true,
		},
		{
			name:       "clearance collapses the zone",
			cfg:        DefaultConfig(),
			panel:      roof.Panel{X: 0, Y: 0, Width: 3, Height: 71.1}, // zone [2, 1]
			wantNoRaft: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			res, err := p.Plan([]roof.Panel{tt.panel})
			if tt.wantNoRaft {
				var nre *NoRafterError
				if !errors.As(err, &nre) {
					t.Fatalf("Plan() error = %v, want NoRafterError", err)
				}
				if res.Panels[0].Err == nil || len(res.Panels[0].Mounts) != 0 {
					t.Errorf("failed panel recorded mounts %v, err %v", res.Panels[0].Mounts, res.Panels[0].Err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Plan() error = %v", err)
			}
			got := res.Panels[0].Mounts
			if xs := mountXs(got); !floatsEqual(xs, tt.wantXs) {
				t.Fatalf("mount positions = %v, want %v", xs, tt.wantXs)
			}
			for i, m := range got {
				if m.Cantilevered != tt.wantHang[i] {
					t.Errorf("mount %d at x=%g cantilevered = %v, want %v", i, m.X, m.Cantilevered, tt.wantHang[i])
				}
				if r, ok := p.Grid().IndexAt(m.X); !ok || r != m.Rafter {
					t.Errorf("mount %d at x=%g not on its rafter index %d", i, m.X, m.Rafter)
				}
				if math.Abs(m.Y-tt.panel.CenterY()) > roof.Epsilon {
					t.Errorf("mount %d y = %g, want panel center %g", i, m.Y, tt.panel.CenterY())
				}
			}
		})
	}
}

// Every plan must respect the structural limits: first and last mounts
// inside the clearance zone, adjacent mounts within MaxSpan, and strictly
// increasing positions.
func TestMountInvariants(t *testing.T) {
	cfgs := []Config{DefaultConfig(), wideZoneConfig()}
	panels := []roof.Panel{
		{X: 0, Y: 0, Width: 44.7, Height: 71.1},
		{X: 3.2, Y: 0, Width: 150, Height: 71.1},
		{X: -80, Y: 10, Width: 200, Height: 40},
		{X: 17, Y: 0, Width: 96, Height: 50},
	}
	for _, cfg := range cfgs {
		p, err := New(cfg)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		for _, pl := range panels {
			res, err := p.Plan([]roof.Panel{pl})
			if err != nil {
				var nre *NoRafterError
				if errors.As(err, &nre) {
					continue
				}
				t.Fatalf("Plan(%+v) error = %v", pl, err)
			}
			ms := res.Panels[0].Mounts
			zoneLo := pl.Left() + cfg.EdgeClearance
			zoneHi := pl.Right() - cfg.EdgeClearance
			for i, m := range ms {
				if m.X < zoneLo-roof.Epsilon || m.X > zoneHi+roof.Epsilon {
					t.Errorf("panel %+v: mount %g outside zone [%g, %g]", pl, m.X, zoneLo, zoneHi)
				}
				if i == 0 {
					continue
				}
				if m.X <= ms[i-1].X {
					t.Errorf("panel %+v: mounts not strictly increasing: %v", pl, mountXs(ms))
				}
				if m.X-ms[i-1].X > cfg.MaxSpan+roof.Epsilon {
					t.Errorf("panel %+v: span %g exceeds max %g", pl, m.X-ms[i-1].X, cfg.MaxSpan)
				}
			}
		}
	}
}

func floatsEqual(got, want []float64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > roof.Epsilon {
			return false
		}
	}
	return true
}
