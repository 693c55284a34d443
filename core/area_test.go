package core

import "testing"

func TestIntersectsIsStrict(t *testing.T) {
	a := Box(0, 0, 16, 16)

	tests := []struct {
		name string
		b    AABB
		want bool
	}{
		{"overlap", Box(8, 8, 16, 16), true},
		{"touching right edge", Box(16, 0, 16, 16), false},
		{"touching bottom edge", Box(0, 16, 16, 16), false},
		{"contained", Box(4, 4, 2, 2), true},
		{"disjoint", Box(40, 40, 4, 4), false},
	}
	for _, tt := range tests {
		if got := a.Intersects(tt.b); got != tt.want {
			t.Errorf("%s: Intersects = %v, want %v", tt.name, got, tt.want)
		}
		if got := tt.b.Intersects(a); got != tt.want {
			t.Errorf("%s: reversed Intersects = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBoxHelpers(t *testing.T) {
	b := Box(10, 20, 30, 40)
	if b.Width() != 30 || b.Height() != 40 {
		t.Errorf("size = %dx%d, want 30x40", b.Width(), b.Height())
	}
	if c := b.Center(); c != (Point{X: 25, Y: 40}) {
		t.Errorf("Center = %+v", c)
	}
	moved := b.Translate(Point{X: -10, Y: 5})
	if moved.Min != (Point{X: 0, Y: 25}) || moved.Max != (Point{X: 30, Y: 65}) {
		t.Errorf("Translate = %+v", moved)
	}
	if !b.Contains(Point{X: 10, Y: 20}) || b.Contains(Point{X: 40, Y: 20}) {
		t.Error("Contains should be half-open")
	}
	if e := b.Expand(2); e != Box(8, 18, 34, 44) {
		t.Errorf("Expand = %+v", e)
	}
}

func TestMasks(t *testing.T) {
	if !MaskPlayer.Has(LayerPlatform) || MaskPlayer.Has(LayerPlayer) {
		t.Error("player mask should accept platforms and not itself")
	}
	if !MaskPlatform.Has(LayerPlayer) || MaskPlatform.Has(LayerEnemy) {
		t.Error("platform mask should accept only the player")
	}
	f := FlagSolid | FlagCanRide
	if !f.Has(FlagSolid) || f.Has(FlagIgnoreGravity) || !f.Has(FlagSolid|FlagCanRide) {
		t.Error("Flags.Has mismatch")
	}
}
