package intersections

import (
	"testing"

	"maptool/internal/maptool/geometry"
	"maptool/internal/maptool/models"
)

const (
	N = geometry.North
	W = geometry.West
	S = geometry.South
	E = geometry.East
)

type builder struct {
	t *testing.T
	m models.Model
}

func newBuilder(t *testing.T) *builder {
	t.Helper()
	return &builder{t: t}
}

// box добавляет комнату по углам.
func (b *builder) box(x0, y0, x1, y1 float64) int {
	return b.m.AddRoom(models.NewRoom(geometry.Pt((x0+x1)/2, (y0+y1)/2), x1-x0, y1-y0))
}

// corridor точки передаются парами x, y.
func (b *builder) corridor(from, to int, s0, s1 geometry.Side, xy ...float64) int {
	b.t.Helper()
	var pts []geometry.Point
	for i := 0; i+1 < len(xy); i += 2 {
		pts = append(pts, geometry.Pt(xy[i], xy[i+1]))
	}
	ic, err := b.m.AddCorridor(models.NewCorridor(pts, [2]int{from, to}, [2]geometry.Side{s0, s1}))
	if err != nil {
		b.t.Fatalf("corridor %d->%d: %v", from, to, err)
	}
	return ic
}

// spur: два изгиба на восточной стороне R1, ближний сегмент B короче.
//
//	R2 (10,0)-(14,4) над изгибом A, R3 (6,12)-(10,16) под изгибом B.
func spur(t *testing.T) *models.Model {
	b := newBuilder(t)
	r1 := b.box(0, 6, 4, 10)
	r2 := b.box(10, 0, 14, 4)
	r3 := b.box(6, 12, 10, 16)
	b.corridor(r1, r2, E, S, 4, 8, 12, 8, 12, 4)
	b.corridor(r1, r3, E, N, 4, 8, 8, 8, 8, 12)
	return &b.m
}

// spurMirrored то же, R1 справа.
func spurMirrored(t *testing.T) *models.Model {
	b := newBuilder(t)
	r1 := b.box(10, 6, 14, 10)
	r2 := b.box(0, 0, 4, 4)
	r3 := b.box(4, 12, 8, 16)
	b.corridor(r1, r2, W, S, 10, 8, 2, 8, 2, 4)
	b.corridor(r1, r3, W, N, 10, 8, 6, 8, 6, 12)
	return &b.m
}

// spurReversed: у B общий конец последний.
func spurReversed(t *testing.T) *models.Model {
	b := newBuilder(t)
	r1 := b.box(0, 6, 4, 10)
	r2 := b.box(10, 0, 14, 4)
	r3 := b.box(6, 12, 10, 16)
	b.corridor(r1, r2, E, S, 4, 8, 12, 8, 12, 4)
	b.corridor(r3, r1, N, E, 8, 12, 8, 8, 4, 8)
	return &b.m
}

// teeFixture: общий изгиб в (8,8), дальние сегменты расходятся.
func teeFixture(t *testing.T) *models.Model {
	b := newBuilder(t)
	r1 := b.box(0, 6, 4, 10)
	r2 := b.box(6, 0, 10, 4)
	r3 := b.box(6, 12, 10, 16)
	b.corridor(r1, r2, E, S, 4, 8, 8, 8, 8, 4)
	b.corridor(r1, r3, E, N, 4, 8, 8, 8, 8, 12)
	return &b.m
}

// longStraight: прямой длиннее ближнего сегмента изгиба. Изгиб индекс 0.
func longStraight(t *testing.T) *models.Model {
	b := newBuilder(t)
	r1 := b.box(0, 6, 4, 10)
	r2 := b.box(12, 6, 16, 10)
	r3 := b.box(6, 0, 10, 4)
	b.corridor(r1, r3, E, S, 4, 8, 8, 8, 8, 4)
	b.corridor(r2, r1, W, E, 12, 8, 4, 8)
	return &b.m
}

// shortStraight: прямой до R3 короче ближнего сегмента изгиба.
func shortStraight(t *testing.T) *models.Model {
	b := newBuilder(t)
	r1 := b.box(0, 6, 4, 10)
	r2 := b.box(10, 0, 14, 4)
	r3 := b.box(8, 6, 10, 10)
	b.corridor(r1, r2, E, S, 4, 8, 12, 8, 12, 4)
	b.corridor(r1, r3, E, W, 4, 8, 8, 8)
	return &b.m
}

// straights: два прямых на восток, второй короче.
func straights(t *testing.T) *models.Model {
	b := newBuilder(t)
	r1 := b.box(0, 6, 4, 10)
	r2 := b.box(16, 6, 20, 10)
	r3 := b.box(8, 6, 12, 10)
	b.corridor(r1, r2, E, W, 4, 8, 16, 8)
	b.corridor(r1, r3, E, W, 4, 8, 8, 8)
	return &b.m
}

// fan: три изгиба с восточной стороны R1, нужны два слияния в двух поколениях.
func fan(t *testing.T) *models.Model {
	b := newBuilder(t)
	r1 := b.box(0, 6, 4, 10)
	ra := b.box(18, 0, 22, 4)
	rb := b.box(12, 12, 16, 16)
	rc := b.box(6, 0, 10, 4)
	b.corridor(r1, ra, E, S, 4, 8, 20, 8, 20, 4)
	b.corridor(r1, rb, E, N, 4, 8, 14, 8, 14, 12)
	b.corridor(r1, rc, E, S, 4, 8, 8, 8, 8, 4)
	return &b.m
}

func ints(v ...int) []int { return v }
