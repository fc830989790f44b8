package roof

import (
	"errors"
	"math"
	"testing"
)

func TestNewGrid(t *testing.T) {
	tests := []struct {
		name    string
		first   float64
		spacing float64
		wantErr bool
	}{
		{"standard spacing", 5, 16, false},
		{"metric spacing", 0, 60, false},
		{"negative first rafter", -12, 16, false},
		{"zero spacing", 5, 0, true},
		{"negative spacing", 5, -16, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.first, tt.spacing)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewGrid(%g, %g) error = %v, wantErr %v", tt.first, tt.spacing, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrNonPositiveSpacing) {
					t.Errorf("NewGrid() error = %v, want ErrNonPositiveSpacing", err)
				}
				return
			}
			if g.First() != tt.first || g.Spacing() != tt.spacing {
				t.Errorf("NewGrid() = {first: %g, spacing: %g}, want {%g, %g}",
					g.First(), g.Spacing(), tt.first, tt.spacing)
			}
		})
	}
}

func TestGridRafter(t *testing.T) {
	g, err := NewGrid(5, 16)
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}

	tests := []struct {
		index int
		want  float64
	}{
		{0, 5},
		{1, 21},
		{7, 117},
		{-1, -11},
		{-2, -27},
	}
	for _, tt := range tests {
		if got := g.Rafter(tt.index); math.Abs(got-tt.want) > Epsilon {
			t.Errorf("Rafter(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestGridIndexAt(t *testing.T) {
	g, err := NewGrid(5, 16)
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}

	tests := []struct {
		name   string
		x      float64
		want   int
		wantOK bool
	}{
		{"reference rafter", 5, 0, true},
		{"seventh rafter", 117, 7, true},
		{"negative index", -27, -2, true},
		{"within epsilon", 21 + 1e-12, 1, true},
		{"between rafters", 13, 0, false},
		{"just off a rafter", 21.001, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.IndexAt(tt.x)
			if ok != tt.wantOK {
				t.Fatalf("IndexAt(%g) ok = %v, want %v", tt.x, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("IndexAt(%g) = %d, want %d", tt.x, got, tt.want)
			}
		})
	}
}

func TestGridRaftersInRange(t *testing.T) {
	tests := []struct {
		name    string
		first   float64
		spacing float64
		lo, hi  float64
		want    []float64
	}{
		{
			name:  "interior range",
			first: 5, spacing: 16,
			lo: 10, hi: 60,
			want: []float64{21, 37, 53},
		},
		{
			name:  "inclusive bounds",
			first: 0, spacing: 20,
			lo: 20, hi: 80,
			want: []float64{20, 40, 60, 80},
		},
		{
			name:  "single rafter",
			first: 5, spacing: 16,
			lo: 100, hi: 105,
			want: []float64{101},
		},
		{
			name:  "empty interval",
			first: 5, spacing: 16,
			lo: 6, hi: 20,
			want: nil,
		},
		{
			name:  "inverted bounds",
			first: 5, spacing: 16,
			lo: 60, hi: 10,
			want: nil,
		},
		{
			name:  "negative indexes",
			first: 5, spacing: 16,
			lo: -40, hi: -10,
			want: []float64{-27, -11},
		},
		{
			name:  "bound exactly on rafter",
			first: 5, spacing: 16,
			lo: 5, hi: 5,
			want: []float64{5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.first, tt.spacing)
			if err != nil {
				t.Fatalf("NewGrid() error = %v", err)
			}
			got := g.RaftersInRange(tt.lo, tt.hi)
			if len(got) != len(tt.want) {
				t.Fatalf("RaftersInRange(%g, %g) = %v, want %v", tt.lo, tt.hi, got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > Epsilon {
					t.Errorf("RaftersInRange(%g, %g)[%d] = %v, want %v", tt.lo, tt.hi, i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Rafters returned by a range query must always identify as on-grid.
func TestGridRangeRoundTrip(t *testing.T) {
	g, err := NewGrid(5.25, 16.5)
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	for _, x := range g.RaftersInRange(-100, 300) {
		if _, ok := g.IndexAt(x); !ok {
			t.Errorf("IndexAt(%v) = false, want on-grid", x)
		}
	}
}
