package plan

import (
	"math"
	"testing"

	"github.com/rafterlab/rafterplan/pkg/roof"
)

func TestJointBetween(t *testing.T) {
	p, err := New(DefaultConfig()) // joint tolerance 1.0
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name   string
		a, b   roof.Panel
		want   Joint
		wantOK bool
	}{
		{
			name:   "side by side touching",
			a:      roof.Panel{X: 0, Y: 0, Width: 44.7, Height: 71.1},
			b:      roof.Panel{X: 44.7, Y: 0, Width: 44.7, Height: 71.1},
			want:   Joint{Kind: JointHorizontal, X: 44.7, Y: 35.55, SpanLo: 0, SpanHi: 71.1},
			wantOK: true,
		},
		{
			name:   "side by side with small gap",
			a:      roof.Panel{X: 0, Y: 0, Width: 44.7, Height: 71.1},
			b:      roof.Panel{X: 45.05, Y: 0, Width: 44.7, Height: 71.1},
			want:   Joint{Kind: JointHorizontal, X: 44.7, Y: 35.55, SpanLo: 0, SpanHi: 71.1},
			wantOK: true,
		},
		{
			name: "gap beyond tolerance",
			a:    roof.Panel{X: 0, Y: 0, Width: 44.7, Height: 71.1},
			b:    roof.Panel{X: 46.5, Y: 0, Width: 44.7, Height: 71.1},
		},
		{
			name:   "stacked",
			a:      roof.Panel{X: 135.15, Y: 0, Width: 44.7, Height: 71.1},
			b:      roof.Panel{X: 135.15, Y: 71.1, Width: 44.7, Height: 71.1},
			want:   Joint{Kind: JointVertical, X: 157.5, Y: 71.1, SpanLo: 135.15, SpanHi: 179.85},
			wantOK: true,
		},
		{
			name:   "staggered rows share a partial edge",
			a:      roof.Panel{X: 0, Y: 0, Width: 44.7, Height: 71.1},
			b:      roof.Panel{X: 22, Y: 71.1, Width: 44.7, Height: 71.1},
			want:   Joint{Kind: JointVertical, X: 33.35, Y: 71.1, SpanLo: 22, SpanHi: 44.7},
			wantOK: true,
		},
		{
			name:   "corner to corner diagonal",
			a:      roof.Panel{X: 0, Y: 0, Width: 44.7, Height: 71.1},
			b:      roof.Panel{X: 44.7, Y: 71.1, Width: 44.7, Height: 71.1},
			want:   Joint{Kind: JointCorner, X: 44.7, Y: 71.1},
			wantOK: true,
		},
		{
			name:   "corner on the other diagonal",
			a:      roof.Panel{X: 44.7, Y: 0, Width: 44.7, Height: 71.1},
			b:      roof.Panel{X: 0, Y: 71.1, Width: 44.7, Height: 71.1},
			want:   Joint{Kind: JointCorner, X: 44.7, Y: 71.1},
			wantOK: true,
		},
		{
			name:   "sliver overlap counts as corner contact",
			a:      roof.Panel{X: 0, Y: 0, Width: 10, Height: 20},
			b:      roof.Panel{X: 10, Y: 19.5, Width: 10, Height: 20},
			want:   Joint{Kind: JointCorner, X: 10, Y: 20},
			wantOK: true,
		},
		{
			name: "vertical overlap below tolerance on separated rows",
			a:    roof.Panel{X: 0, Y: 0, Width: 10, Height: 20},
			b:    roof.Panel{X: 30, Y: 19.5, Width: 10, Height: 20},
		},
		{
			name: "far apart",
			a:    roof.Panel{X: 0, Y: 0, Width: 44.7, Height: 71.1},
			b:    roof.Panel{X: 200, Y: 300, Width: 44.7, Height: 71.1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.jointBetween(0, 1, tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("jointBetween() ok = %v, want %v (joint %+v)", ok, tt.wantOK, got)
			}
			if !ok {
				return
			}
			checkJoint(t, got, tt.want)

			// Argument order must not matter.
			swapped, ok := p.jointBetween(1, 0, tt.b, tt.a)
			if !ok {
				t.Fatal("jointBetween() swapped = no joint, want same joint")
			}
			checkJoint(t, swapped, tt.want)
		})
	}
}

func checkJoint(t *testing.T, got, want Joint) {
	t.Helper()
	if got.Kind != want.Kind {
		t.Errorf("joint kind = %v, want %v", got.Kind, want.Kind)
	}
	if got.A != 0 || got.B != 1 {
		t.Errorf("joint pair = (%d, %d), want (0, 1)", got.A, got.B)
	}
	for _, c := range []struct {
		name      string
		got, want float64
	}{
		{"X", got.X, want.X},
		{"Y", got.Y, want.Y},
		{"SpanLo", got.SpanLo, want.SpanLo},
		{"SpanHi", got.SpanHi, want.SpanHi},
	} {
		if math.Abs(c.got-c.want) > roof.Epsilon {
			t.Errorf("joint %s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestJointKindString(t *testing.T) {
	tests := []struct {
		kind JointKind
		want string
	}{
		{JointHorizontal, "horizontal"},
		{JointVertical, "vertical"},
		{JointCorner, "corner"},
		{JointKind(9), "JointKind(9)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("JointKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
