package geometry

import "sort"

// ============================================================
// Box-to-box connectors
// ============================================================

// Connector геометрия коридора между двумя прямоугольниками: 2 точки (прямой)
// или 3 точки (с изгибом). Points[0] лежит на стене первого прямоугольника,
// Sides[0] и Sides[1] это стены первого и второго.
type Connector struct {
	Points []Point
	Sides  [2]Side
}

// Length2 сумма квадратов длин сегментов.
func (c Connector) Length2() float64 {
	var sum float64
	for i := 1; i < len(c.Points); i++ {
		sum += Dist2(c.Points[i-1], c.Points[i])
	}
	return sum
}

// shadow пересечение проекций [a0,a1] и [b0,b1].
func shadow(a0, a1, b0, b1 float64) (float64, float64) {
	lo, hi := a0, a1
	if b0 > lo {
		lo = b0
	}
	if b1 < hi {
		hi = b1
	}
	return lo, hi
}

// HorizontalExtrude соединяет прямоугольники горизонтальным прямым коридором.
// Проекции на ось Y должны перекрываться не меньше чем на minShadow,
// factor задает положение коридора внутри перекрытия (0.5 середина).
func HorizontalExtrude(b1, b2 Box, factor, minShadow float64) (Connector, bool) {
	lo, hi := shadow(b1.TL.Y, b1.BR.Y, b2.TL.Y, b2.BR.Y)
	if hi-lo < minShadow || hi <= lo {
		return Connector{}, false
	}
	y := lo + (hi-lo)*factor

	switch {
	case b1.BR.X < b2.TL.X:
		return Connector{
			Points: []Point{{X: b1.BR.X, Y: y}, {X: b2.TL.X, Y: y}},
			Sides:  [2]Side{East, West},
		}, true
	case b2.BR.X < b1.TL.X:
		return Connector{
			Points: []Point{{X: b1.TL.X, Y: y}, {X: b2.BR.X, Y: y}},
			Sides:  [2]Side{West, East},
		}, true
	}
	return Connector{}, false
}

// VerticalExtrude то же по вертикали.
func VerticalExtrude(b1, b2 Box, factor, minShadow float64) (Connector, bool) {
	lo, hi := shadow(b1.TL.X, b1.BR.X, b2.TL.X, b2.BR.X)
	if hi-lo < minShadow || hi <= lo {
		return Connector{}, false
	}
	x := lo + (hi-lo)*factor

	switch {
	case b1.BR.Y < b2.TL.Y:
		return Connector{
			Points: []Point{{X: x, Y: b1.BR.Y}, {X: x, Y: b2.TL.Y}},
			Sides:  [2]Side{South, North},
		}, true
	case b2.BR.Y < b1.TL.Y:
		return Connector{
			Points: []Point{{X: x, Y: b1.TL.Y}, {X: x, Y: b2.BR.Y}},
			Sides:  [2]Side{North, South},
		}, true
	}
	return Connector{}, false
}

// ElbowExtrude строит варианты коридора с одним изгибом: сначала по
// горизонтали, затем по вертикали, и наоборот. Коридор выходит из середины
// стены. Невозможные варианты отбрасываются, остальные отсортированы по длине.
func ElbowExtrude(b1, b2 Box) []Connector {
	c1, c2 := b1.Center(), b2.Center()
	var out []Connector

	// горизонталь, потом вертикаль
	{
		exit, entry := East, North
		x0 := b1.BR.X
		if c2.X < c1.X {
			exit, x0 = West, b1.TL.X
		}
		y1 := b2.TL.Y
		if c2.Y < c1.Y {
			entry, y1 = South, b2.BR.Y
		}
		bend := Point{X: c2.X, Y: c1.Y}
		outside := (exit == East && bend.X > b1.BR.X) || (exit == West && bend.X < b1.TL.X)
		above := (entry == North && bend.Y < b2.TL.Y) || (entry == South && bend.Y > b2.BR.Y)
		if outside && above {
			out = append(out, Connector{
				Points: []Point{{X: x0, Y: c1.Y}, bend, {X: c2.X, Y: y1}},
				Sides:  [2]Side{exit, entry},
			})
		}
	}

	// вертикаль, потом горизонталь
	{
		exit, entry := South, West
		y0 := b1.BR.Y
		if c2.Y < c1.Y {
			exit, y0 = North, b1.TL.Y
		}
		x1 := b2.TL.X
		if c2.X < c1.X {
			entry, x1 = East, b2.BR.X
		}
		bend := Point{X: c1.X, Y: c2.Y}
		outside := (exit == South && bend.Y > b1.BR.Y) || (exit == North && bend.Y < b1.TL.Y)
		beside := (entry == West && bend.X < b2.TL.X) || (entry == East && bend.X > b2.BR.X)
		if outside && beside {
			out = append(out, Connector{
				Points: []Point{{X: c1.X, Y: y0}, bend, {X: x1, Y: c2.Y}},
				Sides:  [2]Side{exit, entry},
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return EssentiallyLess(out[i].Length2(), out[j].Length2())
	})
	return out
}
