package generator

import (
	"fmt"
	"math"
	"sort"

	"maptool/internal/maptool/geometry"
	"maptool/internal/maptool/models"
)

// ============================================================
// Corridor extrusion
// ============================================================

const (
	shadowFactor    = 0.5
	minShadowFactor = 0.25
)

// options варианты коридора между комнатами i и j в порядке предпочтения:
// горизонтальный прямой, вертикальный прямой, затем коленья по длине.
func options(m *models.Model, i, j int) []geometry.Connector {
	a, b := m.Rooms[i], m.Rooms[j]
	ba, bb := a.Box(), b.Box()

	minH := minShadowFactor * math.Min(a.Height, b.Height)
	if conn, ok := geometry.HorizontalExtrude(ba, bb, shadowFactor, minH); ok {
		return []geometry.Connector{conn}
	}
	minW := minShadowFactor * math.Min(a.Width, b.Width)
	if conn, ok := geometry.VerticalExtrude(ba, bb, shadowFactor, minW); ok {
		return []geometry.Connector{conn}
	}
	return geometry.ElbowExtrude(ba, bb)
}

// crossesRooms: какой-то сегмент коридора задевает комнату кроме i и j.
func crossesRooms(m *models.Model, conn geometry.Connector, i, j int) bool {
	for k, r := range m.Rooms {
		if k == i || k == j {
			continue
		}
		box := r.Box()
		for p := 1; p < len(conn.Points); p++ {
			a, b := conn.Points[p-1], conn.Points[p]
			if _, hit := geometry.CrossedSide(box, a, b); hit {
				return true
			}
			if box.Contains(geometry.Lerp(a, b, 0.5)) {
				return true
			}
		}
	}
	return false
}

// connected: между комнатами уже есть коридор.
func connected(m *models.Model, i, j int) bool {
	for _, c := range m.Corridors {
		if (c.Joins[0] == i && c.Joins[1] == j) || (c.Joins[0] == j && c.Joins[1] == i) {
			return true
		}
	}
	return false
}

// connect добавляет первый допустимый коридор между i и j. false, если ни
// один вариант не подошел.
func (g *Generator) connect(m *models.Model, i, j int) (bool, error) {
	if connected(m, i, j) {
		return true, nil
	}
	for _, conn := range options(m, i, j) {
		if !g.params.AllowCrossing && crossesRooms(m, conn, i, j) {
			continue
		}
		if _, err := m.Connect(i, j, conn); err != nil {
			return false, fmt.Errorf("connect %d-%d: %w", i, j, err)
		}
		return true, nil
	}
	return false, nil
}

// connectSecondary соединяет каждую второстепенную комнату с ближайшей
// главной, к которой удается провести коридор. Возвращает число неудач.
func (g *Generator) connectSecondary(m *models.Model) (int, error) {
	nodes := mainRooms(m.Rooms)
	failed := 0
	for i, r := range m.Rooms {
		if r.IsMain {
			continue
		}
		targets := append([]int(nil), nodes...)
		c := r.Center
		sort.SliceStable(targets, func(a, b int) bool {
			return geometry.Dist2(c, m.Rooms[targets[a]].Center) < geometry.Dist2(c, m.Rooms[targets[b]].Center)
		})

		ok := false
		for _, j := range targets {
			var err error
			if ok, err = g.connect(m, i, j); err != nil {
				return failed, err
			}
			if ok {
				break
			}
		}
		if !ok {
			failed++
		}
	}
	return failed, nil
}
