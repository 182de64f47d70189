package generator

import (
	"context"
	"fmt"
	"math"

	"maptool/internal/maptool/geometry"
	"maptool/internal/maptool/models"
)

// ============================================================
// Room placement
// ============================================================

// snapUp округляет вверх до кратного step.
func snapUp(v, step float64) float64 {
	return math.Ceil(v/step) * step
}

func snapNearest(v, step float64) float64 {
	return math.Round(v/step) * step
}

// randomRoom: центр равномерно в круге арены, размеры в [min,max] с
// ограниченным соотношением сторон, все кратно тайлу.
func (g *Generator) randomRoom() models.Room {
	p := g.params
	radius := p.ArenaSize / 2 * math.Sqrt(g.rng.Float64())
	theta := 2 * math.Pi * g.rng.Float64()
	center := geometry.Pt(
		snapNearest(radius*math.Cos(theta), p.TileSnapSize),
		snapNearest(radius*math.Sin(theta), p.TileSnapSize),
	)

	w := p.RoomSzMin + g.rng.Float64()*(p.RoomSzMax-p.RoomSzMin)
	h := p.RoomSzMin + g.rng.Float64()*(p.RoomSzMax-p.RoomSzMin)
	if w/h > p.RoomSzRatio {
		w = h * p.RoomSzRatio
	}
	if h/w > p.RoomSzRatio {
		h = w * p.RoomSzRatio
	}
	return models.NewRoom(center, snapUp(w, p.TileSnapSize), snapUp(h, p.TileSnapSize))
}

func (g *Generator) placeRooms() []models.Room {
	rooms := make([]models.Room, g.params.Rooms)
	for i := range rooms {
		rooms[i] = g.randomRoom()
	}
	return rooms
}

// padding зазор вокруг комнаты, внутри которого соседи расталкиваются.
func (g *Generator) padding(r models.Room) float64 {
	return (g.params.MinSeparationFactor - 1) * math.Min(r.Width, r.Height) / 4
}

func inflate(b geometry.Box, d float64) geometry.Box {
	return geometry.Box{
		TL: geometry.Pt(b.TL.X-d, b.TL.Y-d),
		BR: geometry.Pt(b.BR.X+d, b.BR.Y+d),
	}
}

// separate расталкивает комнаты (flocking): каждая уходит от своих соседей
// по сумме единичных направлений. Все смещения одного прохода считаются по старым позициям.
func (g *Generator) separate(ctx context.Context, rooms []models.Room) (int, error) {
	p := g.params
	step := p.TileSnapSize * math.Ceil(p.FlockFactor/100)

	for pass := 1; pass <= p.MaxFlockPasses; pass++ {
		if err := ctx.Err(); err != nil {
			return pass, fmt.Errorf("separate: %w", err)
		}

		boxes := make([]geometry.Box, len(rooms))
		for i, r := range rooms {
			boxes[i] = inflate(r.Box(), g.padding(r))
		}

		moves := make([]geometry.Point, len(rooms))
		crowded := false
		for i := range rooms {
			var dx, dy float64
			n := 0
			for j := range rooms {
				if i == j || !boxes[i].Intersects(boxes[j]) {
					continue
				}
				ux, uy := g.away(rooms[i].Center, rooms[j].Center)
				dx += ux
				dy += uy
				n++
			}
			if n == 0 {
				continue
			}
			crowded = true

			length := math.Hypot(dx, dy)
			if length < p.TanFudge {
				dx, dy = g.randomDirection()
				length = 1
			}
			mx := snapNearest(dx/length*step, p.TileSnapSize)
			my := snapNearest(dy/length*step, p.TileSnapSize)
			if mx == 0 && my == 0 {
				if math.Abs(dx) >= math.Abs(dy) {
					mx = math.Copysign(p.TileSnapSize, dx)
				} else {
					my = math.Copysign(p.TileSnapSize, dy)
				}
			}
			moves[i] = geometry.Pt(mx, my)
		}

		if !crowded {
			return pass, nil
		}
		for i := range rooms {
			rooms[i].Center.X += moves[i].X
			rooms[i].Center.Y += moves[i].Y
		}
	}
	return p.MaxFlockPasses, fmt.Errorf("rooms still overlap after %d flocking passes", p.MaxFlockPasses)
}

// away единичный вектор от b к a. Для совпадающих центров направление
// выбирается случайно.
func (g *Generator) away(a, b geometry.Point) (float64, float64) {
	dx, dy := a.X-b.X, a.Y-b.Y
	d := math.Hypot(dx, dy)
	if d < g.params.TanFudge {
		return g.randomDirection()
	}
	return dx / d, dy / d
}

func (g *Generator) randomDirection() (float64, float64) {
	theta := 2 * math.Pi * g.rng.Float64()
	return math.Cos(theta), math.Sin(theta)
}

// markMainRooms отмечает комнаты с площадью больше thresh от средней.
// Главных комнат всегда не меньше двух.
func markMainRooms(rooms []models.Room, thresh float64) int {
	var sumW, sumH float64
	for _, r := range rooms {
		sumW += r.Width
		sumH += r.Height
	}
	n := float64(len(rooms))
	limit := thresh * (sumW / n) * (sumH / n)

	count := 0
	for i := range rooms {
		rooms[i].IsMain = rooms[i].Area() > limit
		if rooms[i].IsMain {
			count++
		}
	}

	for count < 2 && count < len(rooms) {
		best := -1
		for i, r := range rooms {
			if !r.IsMain && (best < 0 || r.Area() > rooms[best].Area()) {
				best = i
			}
		}
		rooms[best].IsMain = true
		count++
	}
	return count
}
