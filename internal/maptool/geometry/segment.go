package geometry

// ============================================================
// Segment relations
// ============================================================

// PointOnSegment проверяет, что сумма расстояний от p до концов отрезка
// отличается от его длины не больше чем на margin.
func PointOnSegment(p, a, b Point, margin float64) bool {
	length := Dist(a, b)
	x := Dist(p, a) + Dist(p, b)
	return x >= length-margin && x <= length+margin
}

// SegmentInSegment: оба конца первого отрезка лежат на втором.
// Несимметрична, для отрезков неизвестной длины вызывать в обе стороны.
func SegmentInSegment(l1a, l1b, l2a, l2b Point, margin float64) bool {
	return PointOnSegment(l1a, l2a, l2b, margin) && PointOnSegment(l1b, l2a, l2b, margin)
}

// Overlap описывает, какие концы первого отрезка лежат на втором.
type Overlap struct {
	First  bool
	Second bool
}

func (o Overlap) Count() int {
	n := 0
	if o.First {
		n++
	}
	if o.Second {
		n++
	}
	return n
}

// Full: оба конца на втором отрезке.
func (o Overlap) Full() bool {
	return o.First && o.Second
}

// ColinearOverlap для коллинеарных отрезков p1-p2 и p3-p4 возвращает,
// какие из p1, p2 лежат на p3-p4.
func ColinearOverlap(p1, p2, p3, p4 Point, margin float64) Overlap {
	return Overlap{
		First:  PointOnSegment(p1, p3, p4, margin),
		Second: PointOnSegment(p2, p3, p4, margin),
	}
}

func denominator(p1, p2, p3, p4 Point) float64 {
	return (p4.Y-p3.Y)*(p2.X-p1.X) - (p4.X-p3.X)*(p2.Y-p1.Y)
}

// Parallel проверяет параллельность прямых p1-p2 и p3-p4.
func Parallel(p1, p2, p3, p4 Point) bool {
	return EssentiallyZero(denominator(p1, p2, p3, p4))
}

// SegmentIntersection возвращает точку пересечения конечных отрезков p1-p2 и p3-p4.
// Параллельные и вырожденные отрезки не пересекаются.
func SegmentIntersection(p1, p2, p3, p4 Point) (Point, bool) {
	d := denominator(p1, p2, p3, p4)
	if EssentiallyZero(d) {
		return Point{}, false
	}

	ua := ((p4.X-p3.X)*(p1.Y-p3.Y) - (p4.Y-p3.Y)*(p1.X-p3.X)) / d
	ub := ((p2.X-p1.X)*(p1.Y-p3.Y) - (p2.Y-p1.Y)*(p1.X-p3.X)) / d

	if ua < 0 || ua > 1 || ub < 0 || ub > 1 {
		return Point{}, false
	}
	return Lerp(p1, p2, ua), true
}

// SegmentsCross то же, что SegmentIntersection, без точки.
func SegmentsCross(p1, p2, p3, p4 Point) bool {
	_, ok := SegmentIntersection(p1, p2, p3, p4)
	return ok
}
