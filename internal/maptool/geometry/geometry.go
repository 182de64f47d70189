package geometry

import (
	"math"
)

// ============================================================
// Tolerances
// ============================================================

const (
	// Epsilon допуск сравнения координат: два машинных эпсилон.
	Epsilon = 2 * 2.220446049250313e-16

	// LineMargin допуск проверки "точка лежит на отрезке".
	LineMargin = 0.1
)

func EssentiallyZero(v float64) bool {
	return v >= -Epsilon && v <= Epsilon
}

func EssentiallyEqual(a, b float64) bool {
	return EssentiallyZero(a - b)
}

// EssentiallyLess строго меньше с учетом допуска.
func EssentiallyLess(a, b float64) bool {
	return a+Epsilon < b
}

// ============================================================
// Point
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func Dist2(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

func Dist(a, b Point) float64 {
	return math.Sqrt(Dist2(a, b))
}

// Same сравнивает точки по расстоянию между ними.
func Same(a, b Point) bool {
	return EssentiallyZero(Dist(a, b))
}

// Within проверяет, что p лежит строго внутри окружности радиуса sqrt(r2) вокруг c.
func Within(p, c Point, r2 float64) bool {
	return Dist2(p, c) < r2
}

// Lerp возвращает точку на отрезке a-b с параметром t.
func Lerp(a, b Point, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}
