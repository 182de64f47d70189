package models

import (
	"maptool/internal/maptool/geometry"
)

// ============================================================
// Room
// ============================================================

// Room узел графа карты. Corridors хранит индексы коридоров по сторонам
// в порядке geometry.Sides.
type Room struct {
	Center         geometry.Point `json:"center"`
	Width          float64        `json:"width"`
	Height         float64        `json:"height"`
	IsMain         bool           `json:"main"`
	IsIntersection bool           `json:"intersection"`
	Corridors      [4][]int       `json:"corridors"`
	Generation     int            `json:"generation"`
}

func NewRoom(center geometry.Point, width, height float64) Room {
	return Room{Center: center, Width: width, Height: height}
}

// NewIntersection создает комнату нулевого размера в точке встречи коридоров.
func NewIntersection(at geometry.Point, generation int) Room {
	return Room{Center: at, IsIntersection: true, Generation: generation}
}

func (r Room) Box() geometry.Box {
	return geometry.Box{
		TL: geometry.Point{X: r.Center.X - r.Width/2, Y: r.Center.Y - r.Height/2},
		BR: geometry.Point{X: r.Center.X + r.Width/2, Y: r.Center.Y + r.Height/2},
	}
}

func (r Room) Area() float64 {
	return r.Width * r.Height
}

func (r *Room) Attach(side geometry.Side, corridor int) {
	r.Corridors[side] = append(r.Corridors[side], corridor)
}

// Detach убирает коридор из списка стороны и возвращает эту сторону.
func (r *Room) Detach(corridor int) (geometry.Side, bool) {
	for _, s := range geometry.Sides {
		list := r.Corridors[s]
		for i, ic := range list {
			if ic != corridor {
				continue
			}
			r.Corridors[s] = append(list[:i:i], list[i+1:]...)
			return s, true
		}
	}
	return 0, false
}

// SideOf сторона, к которой присоединен коридор.
func (r Room) SideOf(corridor int) (geometry.Side, bool) {
	for _, s := range geometry.Sides {
		for _, ic := range r.Corridors[s] {
			if ic == corridor {
				return s, true
			}
		}
	}
	return 0, false
}

func (r Room) Degree() int {
	n := 0
	for _, list := range r.Corridors {
		n += len(list)
	}
	return n
}

func (r Room) Clone() Room {
	out := r
	for i, list := range r.Corridors {
		if list != nil {
			out.Corridors[i] = append([]int(nil), list...)
		}
	}
	return out
}
