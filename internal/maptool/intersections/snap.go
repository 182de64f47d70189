package intersections

import (
	"math"

	"maptool/internal/maptool/geometry"
	"maptool/internal/maptool/models"
)

// ============================================================
// Snapping
// ============================================================

// SnapClosePairs сводит почти совпадающие параллельные ближние сегменты
// коридоров одной стороны комнаты на общую координату. Порог: marginFactor
// от длины более длинного сегмента. Возвращает число сведенных пар.
func SnapClosePairs(m *models.Model, marginFactor float64) int {
	if marginFactor <= 0 {
		return 0
	}

	snapped := 0
	for ir, r := range m.Rooms {
		for _, s := range geometry.Sides {
			list := r.Corridors[s]
			for p := 0; p < len(list); p++ {
				for q := p + 1; q < len(list); q++ {
					if snapPair(m, ir, s, list[p], list[q], marginFactor) {
						snapped++
					}
				}
			}
		}
	}
	return snapped
}

// endAt конец коридора, которым он примыкает к стороне s комнаты ir.
func endAt(c models.Corridor, ir int, s geometry.Side) (int, bool) {
	for k := 0; k < 2; k++ {
		if c.Joins[k] == ir && c.JoinSides[k] == s {
			return k, true
		}
	}
	return 0, false
}

func snapPair(m *models.Model, ir int, s geometry.Side, ia, ib int, marginFactor float64) bool {
	a, b := &m.Corridors[ia], &m.Corridors[ib]
	ka, okA := endAt(*a, ir, s)
	kb, okB := endAt(*b, ir, s)
	if !okA || !okB {
		return false
	}

	a0, a1 := a.NearLeg(ka)
	b0, b1 := b.NearLeg(kb)
	limit := marginFactor * math.Max(geometry.Dist(a0, a1), geometry.Dist(b0, b1))

	// индексы точек ближних сегментов
	ai := [2]int{a.EndIndex(ka), a.EndIndex(ka) + 1 - 2*ka}
	bi := [2]int{b.EndIndex(kb), b.EndIndex(kb) + 1 - 2*kb}

	if s.Horizontal() {
		d := math.Abs(a0.Y - b0.Y)
		if geometry.EssentiallyZero(d) || d > limit {
			return false
		}
		y := (a0.Y + b0.Y) / 2
		for i := range ai {
			a.Points[ai[i]].Y = y
			b.Points[bi[i]].Y = y
		}
		return true
	}

	d := math.Abs(a0.X - b0.X)
	if geometry.EssentiallyZero(d) || d > limit {
		return false
	}
	x := (a0.X + b0.X) / 2
	for i := range ai {
		a.Points[ai[i]].X = x
		b.Points[bi[i]].X = x
	}
	return true
}
