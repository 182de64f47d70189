package geometry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBox прямоугольник с отрицательными размерами.
var ErrInvalidBox = errors.New("invalid box")

// ============================================================
// Sides
// ============================================================

// Side сторона прямоугольника. Порядок против часовой стрелки от верхней,
// ось Y направлена вниз.
type Side int

const (
	North Side = iota
	West
	South
	East
)

// Sides порядок обхода сторон.
var Sides = [4]Side{North, West, South, East}

var sideNames = [4]string{"north", "west", "south", "east"}

func (s Side) Opposite() Side {
	return (s + 2) % 4
}

func (s Side) Valid() bool {
	return s >= North && s <= East
}

// Horizontal: коридор через эту сторону идет по горизонтали.
func (s Side) Horizontal() bool {
	return s == West || s == East
}

func (s Side) String() string {
	if !s.Valid() {
		return fmt.Sprintf("side(%d)", int(s))
	}
	return sideNames[s]
}

func ParseSide(v string) (Side, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for i, name := range sideNames {
		if v == name {
			return Side(i), nil
		}
	}
	return 0, fmt.Errorf("unknown side %q", v)
}

func (s Side) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid side %d", int(s))
	}
	return []byte(sideNames[s]), nil
}

func (s *Side) UnmarshalText(data []byte) error {
	v, err := ParseSide(string(data))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ============================================================
// Box
// ============================================================

// Box выровненный по осям прямоугольник: TL левый верхний, BR правый нижний угол.
type Box struct {
	TL Point `json:"tl"`
	BR Point `json:"br"`
}

func NewBox(tl, br Point) (Box, error) {
	if br.X < tl.X || br.Y < tl.Y {
		return Box{}, fmt.Errorf("%w: tl=%v br=%v", ErrInvalidBox, tl, br)
	}
	return Box{TL: tl, BR: br}, nil
}

// BoxAround строит прямоугольник по центру и размерам.
func BoxAround(center Point, width, height float64) (Box, error) {
	if width < 0 || height < 0 {
		return Box{}, fmt.Errorf("%w: width=%g height=%g", ErrInvalidBox, width, height)
	}
	return Box{
		TL: Point{X: center.X - width/2, Y: center.Y - height/2},
		BR: Point{X: center.X + width/2, Y: center.Y + height/2},
	}, nil
}

func (b Box) Width() float64  { return b.BR.X - b.TL.X }
func (b Box) Height() float64 { return b.BR.Y - b.TL.Y }

func (b Box) Center() Point {
	return Point{X: (b.TL.X + b.BR.X) / 2, Y: (b.TL.Y + b.BR.Y) / 2}
}

// Wall возвращает концы стены s.
func (b Box) Wall(s Side) (Point, Point) {
	switch s {
	case North:
		return b.TL, Point{X: b.BR.X, Y: b.TL.Y}
	case West:
		return b.TL, Point{X: b.TL.X, Y: b.BR.Y}
	case South:
		return Point{X: b.TL.X, Y: b.BR.Y}, b.BR
	default:
		return Point{X: b.BR.X, Y: b.TL.Y}, b.BR
	}
}

// Intersects: прямоугольники перекрываются (касание не считается).
func (b Box) Intersects(o Box) bool {
	return b.TL.X < o.BR.X && o.TL.X < b.BR.X && b.TL.Y < o.BR.Y && o.TL.Y < b.BR.Y
}

// Contains: точка внутри или на границе.
func (b Box) Contains(p Point) bool {
	return p.X >= b.TL.X && p.X <= b.BR.X && p.Y >= b.TL.Y && p.Y <= b.BR.Y
}

// CrossedSide возвращает первую (в порядке Sides) стену, которую пересекает отрезок p1-p2.
func CrossedSide(b Box, p1, p2 Point) (Side, bool) {
	for _, s := range Sides {
		a, c := b.Wall(s)
		if SegmentsCross(a, c, p1, p2) {
			return s, true
		}
	}
	return 0, false
}

// SideAt определяет стену, на которой лежит точка p.
func SideAt(b Box, p Point, margin float64) (Side, bool) {
	for _, s := range Sides {
		a, c := b.Wall(s)
		if PointOnSegment(p, a, c, margin) {
			return s, true
		}
	}
	return 0, false
}
