package intersections

import (
	"maptool/internal/maptool/geometry"
	"maptool/internal/maptool/models"
)

// ============================================================
// Entanglement detection
// ============================================================

// Pair два коридора на одной стороне одной комнаты. Room равен -1,
// если пара задана без комнаты.
type Pair struct {
	A    int           `json:"a"`
	B    int           `json:"b"`
	Room int           `json:"room"`
	Side geometry.Side `json:"side"`
}

func (p Pair) key() [2]int {
	if p.A < p.B {
		return [2]int{p.A, p.B}
	}
	return [2]int{p.B, p.A}
}

// SegmentsEntangled: какой-то сегмент одного коридора целиком лежит на
// сегменте другого. Касание в одной точке не считается.
func SegmentsEntangled(a, b models.Corridor) bool {
	for i := 1; i < len(a.Points); i++ {
		a0, a1 := a.Points[i-1], a.Points[i]
		if geometry.Dist(a0, a1) <= geometry.LineMargin {
			continue
		}
		for j := 1; j < len(b.Points); j++ {
			b0, b1 := b.Points[j-1], b.Points[j]
			if geometry.Dist(b0, b1) <= geometry.LineMargin {
				continue
			}
			if geometry.ColinearOverlap(a0, a1, b0, b1, geometry.LineMargin).Full() {
				return true
			}
			if geometry.ColinearOverlap(b0, b1, a0, a1, geometry.LineMargin).Full() {
				return true
			}
		}
	}
	return false
}

// SharesHeading: в общей точке коридоры уходят по одной оси в одну сторону.
func SharesHeading(a, b models.Corridor) bool {
	for i, p := range a.Points {
		for j, q := range b.Points {
			if !geometry.Same(p, q) {
				continue
			}
			for _, u := range neighbours(a.Points, i) {
				for _, v := range neighbours(b.Points, j) {
					if sameRay(p, u, v) {
						return true
					}
				}
			}
		}
	}
	return false
}

func neighbours(points []geometry.Point, i int) []geometry.Point {
	var out []geometry.Point
	if i > 0 {
		out = append(out, points[i-1])
	}
	if i+1 < len(points) {
		out = append(out, points[i+1])
	}
	return out
}

// sameRay: u и v лежат на одном луче из o вдоль оси.
func sameRay(o, u, v geometry.Point) bool {
	ux, uy := u.X-o.X, u.Y-o.Y
	vx, vy := v.X-o.X, v.Y-o.Y
	if geometry.EssentiallyZero(uy) && geometry.EssentiallyZero(vy) {
		return ux*vx > 0
	}
	if geometry.EssentiallyZero(ux) && geometry.EssentiallyZero(vx) {
		return uy*vy > 0
	}
	return false
}

// CheckEntangled строгая попарная проверка: пара распутана, только если
// обе проверки говорят "нет".
func CheckEntangled(a, b models.Corridor) bool {
	return SegmentsEntangled(a, b) || SharesHeading(a, b)
}

// FindEntangledPair первая запутанная пара: комнаты по порядку, стороны в
// порядке geometry.Sides, пары в порядке списков сторон.
func FindEntangledPair(m models.Model) (Pair, bool) {
	return findPair(m, -1)
}

// findPair пропускает комнаты и коридоры поколения generation.
func findPair(m models.Model, generation int) (Pair, bool) {
	fresh := func(g int) bool {
		return generation > 0 && g == generation
	}

	for ir, r := range m.Rooms {
		if fresh(r.Generation) {
			continue
		}
		for _, s := range geometry.Sides {
			list := r.Corridors[s]
			for p := 0; p < len(list); p++ {
				a := list[p]
				if fresh(m.Corridors[a].Generation) {
					continue
				}
				for q := p + 1; q < len(list); q++ {
					b := list[q]
					if a == b || fresh(m.Corridors[b].Generation) {
						continue
					}
					if SegmentsEntangled(m.Corridors[a], m.Corridors[b]) {
						return Pair{A: a, B: b, Room: ir, Side: s}, true
					}
				}
			}
		}
	}
	return Pair{}, false
}

// MarkEntangled пересчитывает Corridor.Entangled по всему графу и
// возвращает число запутанных пар.
func MarkEntangled(m *models.Model) int {
	for i := range m.Corridors {
		m.Corridors[i].Entangled = nil
	}

	n := 0
	for _, r := range m.Rooms {
		for _, s := range geometry.Sides {
			list := r.Corridors[s]
			for p := 0; p < len(list); p++ {
				for q := p + 1; q < len(list); q++ {
					a, b := list[p], list[q]
					if a == b || !SegmentsEntangled(m.Corridors[a], m.Corridors[b]) {
						continue
					}
					m.Corridors[a].MarkEntangled(b)
					m.Corridors[b].MarkEntangled(a)
					n++
				}
			}
		}
	}
	return n
}
