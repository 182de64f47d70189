package geometry

import (
	"errors"
	"testing"
)

func TestEssentially(t *testing.T) {
	if !EssentiallyZero(Epsilon) || !EssentiallyZero(-Epsilon) {
		t.Fatalf("epsilon itself must count as zero")
	}
	if EssentiallyZero(1e-12) {
		t.Fatalf("1e-12 is not zero")
	}
	if !EssentiallyEqual(0.1+0.2, 0.3) {
		t.Fatalf("0.1+0.2 should equal 0.3")
	}
	if EssentiallyLess(1, 1) || !EssentiallyLess(1, 2) {
		t.Fatalf("EssentiallyLess wrong")
	}
}

func TestPointOnSegment(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 0)
	cases := []struct {
		name string
		p    Point
		want bool
	}{
		{"start", a, true},
		{"middle", Pt(5, 0), true},
		{"end", b, true},
		{"beyond", Pt(11, 0), false},
		{"above", Pt(5, 3), false},
		{"within margin", Pt(5, 0.5), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PointOnSegment(tc.p, a, b, LineMargin); got != tc.want {
				t.Errorf("PointOnSegment(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestSegmentInSegmentIsAsymmetric(t *testing.T) {
	short := [2]Point{Pt(4, 8), Pt(8, 8)}
	long := [2]Point{Pt(4, 8), Pt(12, 8)}

	if !SegmentInSegment(short[0], short[1], long[0], long[1], LineMargin) {
		t.Fatalf("short segment must be inside long one")
	}
	if SegmentInSegment(long[0], long[1], short[0], short[1], LineMargin) {
		t.Fatalf("long segment cannot be inside short one")
	}
}

func TestColinearOverlap(t *testing.T) {
	// касание в одной точке
	ov := ColinearOverlap(Pt(0, 0), Pt(4, 0), Pt(4, 0), Pt(8, 0), LineMargin)
	if ov.Count() != 1 || !ov.Second {
		t.Fatalf("touching segments: got %+v", ov)
	}

	ov = ColinearOverlap(Pt(2, 0), Pt(3, 0), Pt(0, 0), Pt(8, 0), LineMargin)
	if !ov.Full() {
		t.Fatalf("contained segment: got %+v", ov)
	}

	ov = ColinearOverlap(Pt(0, 5), Pt(4, 5), Pt(0, 0), Pt(8, 0), LineMargin)
	if ov.Count() != 0 {
		t.Fatalf("disjoint parallel: got %+v", ov)
	}
}

func TestSegmentIntersection(t *testing.T) {
	p, ok := SegmentIntersection(Pt(0, 0), Pt(10, 10), Pt(0, 10), Pt(10, 0))
	if !ok || !Same(p, Pt(5, 5)) {
		t.Fatalf("expected crossing at (5,5), got %v %v", p, ok)
	}

	if _, ok := SegmentIntersection(Pt(0, 0), Pt(1, 1), Pt(5, 0), Pt(6, -1)); ok {
		t.Fatalf("segments do not reach each other")
	}

	if _, ok := SegmentIntersection(Pt(0, 0), Pt(4, 0), Pt(2, 0), Pt(8, 0)); ok {
		t.Fatalf("colinear overlap is not a crossing")
	}

	if !Parallel(Pt(0, 0), Pt(4, 0), Pt(0, 3), Pt(9, 3)) {
		t.Fatalf("horizontal segments are parallel")
	}
}

func TestBox(t *testing.T) {
	if _, err := NewBox(Pt(4, 4), Pt(0, 8)); !errors.Is(err, ErrInvalidBox) {
		t.Fatalf("expected ErrInvalidBox, got %v", err)
	}
	if _, err := BoxAround(Pt(0, 0), -1, 2); !errors.Is(err, ErrInvalidBox) {
		t.Fatalf("expected ErrInvalidBox, got %v", err)
	}

	b, err := BoxAround(Pt(10, 10), 4, 2)
	if err != nil {
		t.Fatalf("BoxAround: %v", err)
	}
	if b.Width() != 4 || b.Height() != 2 || b.Center() != Pt(10, 10) {
		t.Fatalf("unexpected box %+v", b)
	}

	side, ok := CrossedSide(b, Pt(10, 0), Pt(10, 10))
	if !ok || side != North {
		t.Fatalf("expected north crossing, got %v %v", side, ok)
	}
	if _, ok := CrossedSide(b, Pt(0, 0), Pt(5, 0)); ok {
		t.Fatalf("segment far from the box")
	}

	side, ok = SideAt(b, Pt(12, 10), LineMargin)
	if !ok || side != East {
		t.Fatalf("expected east wall, got %v %v", side, ok)
	}
}

func TestSide(t *testing.T) {
	for _, s := range Sides {
		if s.Opposite().Opposite() != s {
			t.Errorf("%v: double opposite", s)
		}
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText: %v", err)
		}
		var back Side
		if err := back.UnmarshalText(text); err != nil || back != s {
			t.Errorf("round trip %v -> %s -> %v (%v)", s, text, back, err)
		}
	}
	if North.Opposite() != South || West.Opposite() != East {
		t.Fatalf("opposite sides wrong")
	}
	if _, err := ParseSide("up"); err == nil {
		t.Fatalf("expected error for unknown side")
	}
}

func TestHorizontalExtrude(t *testing.T) {
	left, _ := NewBox(Pt(0, 0), Pt(4, 8))
	right, _ := NewBox(Pt(10, 2), Pt(14, 12))

	c, ok := HorizontalExtrude(left, right, 0.5, 1)
	if !ok {
		t.Fatalf("expected horizontal connector")
	}
	if c.Sides != [2]Side{East, West} {
		t.Fatalf("sides = %v", c.Sides)
	}
	if c.Points[0] != Pt(4, 5) || c.Points[1] != Pt(10, 5) {
		t.Fatalf("points = %v", c.Points)
	}

	c, ok = HorizontalExtrude(right, left, 0.5, 1)
	if !ok || c.Sides != [2]Side{West, East} || c.Points[0] != Pt(10, 5) {
		t.Fatalf("reversed connector = %+v %v", c, ok)
	}

	if _, ok := HorizontalExtrude(left, right, 0.5, 7); ok {
		t.Fatalf("shadow of 6 is below minimum 7")
	}
}

func TestVerticalExtrude(t *testing.T) {
	top, _ := NewBox(Pt(0, 0), Pt(8, 4))
	bottom, _ := NewBox(Pt(2, 10), Pt(6, 14))

	c, ok := VerticalExtrude(top, bottom, 0.5, 1)
	if !ok || c.Sides != [2]Side{South, North} {
		t.Fatalf("connector = %+v %v", c, ok)
	}
	if c.Points[0] != Pt(4, 4) || c.Points[1] != Pt(4, 10) {
		t.Fatalf("points = %v", c.Points)
	}
}

func TestElbowExtrude(t *testing.T) {
	a, _ := NewBox(Pt(0, 0), Pt(4, 4))
	b, _ := NewBox(Pt(10, 10), Pt(16, 14))

	options := ElbowExtrude(a, b)
	if len(options) != 2 {
		t.Fatalf("expected two elbow options, got %d", len(options))
	}
	for _, c := range options {
		if len(c.Points) != 3 {
			t.Fatalf("elbow must have 3 points: %v", c.Points)
		}
	}
	if options[0].Length2() > options[1].Length2() {
		t.Fatalf("options must be sorted by length")
	}

	first := options[0]
	// 9^2+8^2 через восточную стену против 8^2+8^2 через южную
	if first.Sides != [2]Side{South, West} {
		t.Fatalf("shortest option sides = %v", first.Sides)
	}

	// прямоугольники друг над другом: изгиб невозможен
	c, _ := NewBox(Pt(0, 10), Pt(4, 14))
	if got := ElbowExtrude(a, c); len(got) != 0 {
		t.Fatalf("aligned boxes have no elbow, got %v", got)
	}
}
