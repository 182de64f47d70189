package models

import (
	"fmt"
	"math"

	"maptool/internal/maptool/geometry"

	"github.com/zyedidia/generic/mapset"
)

// ============================================================
// Corridor
// ============================================================

// Corridor ломаная из 2 (прямой) или 3 (с изгибом) точек между двумя комнатами.
// Joins[k] и JoinSides[k] относятся к концу k: точке 0 или последней точке.
type Corridor struct {
	Points     []geometry.Point `json:"points"`
	Joins      [2]int           `json:"joins"`
	JoinSides  [2]geometry.Side `json:"join_sides"`
	Clipped    int              `json:"clipped"`
	IsInserted bool             `json:"inserted"`
	Generation int              `json:"generation"`

	// Entangled пересчитывается детектором, не сохраняется.
	Entangled *mapset.Set[int] `json:"-"`
}

func NewCorridor(points []geometry.Point, joins [2]int, sides [2]geometry.Side) Corridor {
	return Corridor{
		Points:    append([]geometry.Point(nil), points...),
		Joins:     joins,
		JoinSides: sides,
	}
}

func (c Corridor) IsStraight() bool { return len(c.Points) == 2 }
func (c Corridor) IsElbow() bool    { return len(c.Points) == 3 }

// EndIndex индекс точки для конца k.
func (c Corridor) EndIndex(k int) int {
	return k * (len(c.Points) - 1)
}

func (c Corridor) End(k int) geometry.Point {
	return c.Points[c.EndIndex(k)]
}

// NearLeg сегмент, ближайший к концу k. Первая точка всегда сам конец.
func (c Corridor) NearLeg(k int) (geometry.Point, geometry.Point) {
	if k == 0 {
		return c.Points[0], c.Points[1]
	}
	n := len(c.Points)
	return c.Points[n-1], c.Points[n-2]
}

func (c Corridor) NearLeg2(k int) float64 {
	a, b := c.NearLeg(k)
	return geometry.Dist2(a, b)
}

func (c Corridor) Length2() float64 {
	var sum float64
	for i := 1; i < len(c.Points); i++ {
		sum += geometry.Dist2(c.Points[i-1], c.Points[i])
	}
	return sum
}

// Other возвращает комнату на другом конце.
func (c Corridor) Other(room int) int {
	if c.Joins[0] == room {
		return c.Joins[1]
	}
	return c.Joins[0]
}

func (c *Corridor) MarkEntangled(other int) {
	if c.Entangled == nil {
		s := mapset.New[int]()
		c.Entangled = &s
	}
	c.Entangled.Put(other)
}

func (c *Corridor) ClearEntangled(other int) {
	if c.Entangled != nil {
		c.Entangled.Remove(other)
	}
}

func (c Corridor) IsEntangled() bool {
	return c.Entangled != nil && c.Entangled.Size() > 0
}

func (c Corridor) Clone() Corridor {
	out := c
	out.Points = append([]geometry.Point(nil), c.Points...)
	if c.Entangled != nil {
		s := mapset.New[int]()
		c.Entangled.Each(func(v int) { s.Put(v) })
		out.Entangled = &s
	}
	return out
}

// Validate проверяет форму коридора: число точек, стороны и направление
// ближних сегментов относительно сторон.
func (c Corridor) Validate() error {
	if n := len(c.Points); n != 2 && n != 3 {
		return fmt.Errorf("corridor has %d points", n)
	}
	for k := 0; k < 2; k++ {
		side := c.JoinSides[k]
		if !side.Valid() {
			return fmt.Errorf("end %d: invalid side %d", k, int(side))
		}
		a, b := c.NearLeg(k)
		if geometry.Dist(a, b) <= geometry.LineMargin {
			continue
		}
		horizontal := math.Abs(b.Y-a.Y) <= geometry.LineMargin
		vertical := math.Abs(b.X-a.X) <= geometry.LineMargin
		if side.Horizontal() && !horizontal || !side.Horizontal() && !vertical {
			return fmt.Errorf("end %d: leg %v-%v does not leave through %s", k, a, b, side)
		}
	}
	return nil
}
