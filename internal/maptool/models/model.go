package models

import (
	"errors"
	"fmt"

	"maptool/internal/maptool/geometry"
)

// ErrAdjacency нарушена двусторонняя связь комната-коридор.
var ErrAdjacency = errors.New("adjacency mismatch")

// ============================================================
// Model
// ============================================================

// Model граф карты: комнаты и коридоры ссылаются друг на друга по индексам.
// Элементы только добавляются, индексы не переиспользуются.
type Model struct {
	Rooms     []Room     `json:"rooms"`
	Corridors []Corridor `json:"corridors"`
}

func (m *Model) AddRoom(r Room) int {
	m.Rooms = append(m.Rooms, r)
	return len(m.Rooms) - 1
}

// AddCorridor добавляет коридор и присоединяет его к обеим комнатам.
func (m *Model) AddCorridor(c Corridor) (int, error) {
	for k, ir := range c.Joins {
		if ir < 0 || ir >= len(m.Rooms) {
			return -1, fmt.Errorf("end %d: room %d out of range", k, ir)
		}
	}
	if c.Joins[0] == c.Joins[1] {
		return -1, fmt.Errorf("corridor joins room %d to itself", c.Joins[0])
	}
	if err := c.Validate(); err != nil {
		return -1, err
	}

	ic := len(m.Corridors)
	m.Corridors = append(m.Corridors, c)
	for k, ir := range c.Joins {
		m.Rooms[ir].Attach(c.JoinSides[k], ic)
	}
	return ic, nil
}

// Connect добавляет коридор по геометрии соединителя между комнатами i и j.
func (m *Model) Connect(i, j int, conn geometry.Connector) (int, error) {
	return m.AddCorridor(NewCorridor(conn.Points, [2]int{i, j}, conn.Sides))
}

func (m Model) Clone() Model {
	out := Model{
		Rooms:     make([]Room, len(m.Rooms)),
		Corridors: make([]Corridor, len(m.Corridors)),
	}
	for i, r := range m.Rooms {
		out.Rooms[i] = r.Clone()
	}
	for i, c := range m.Corridors {
		out.Corridors[i] = c.Clone()
	}
	return out
}

// MaxGeneration наибольшее поколение среди комнат и коридоров.
func (m Model) MaxGeneration() int {
	g := 0
	for _, r := range m.Rooms {
		g = max(g, r.Generation)
	}
	for _, c := range m.Corridors {
		g = max(g, c.Generation)
	}
	return g
}

func (m Model) Intersections() int {
	n := 0
	for _, r := range m.Rooms {
		if r.IsIntersection {
			n++
		}
	}
	return n
}

// ============================================================
// Consistency
// ============================================================

// CheckAdjacency проверяет, что каждый коридор ровно один раз присутствует
// на нужной стороне каждой из двух своих комнат, и что комнаты не
// ссылаются на чужие коридоры.
func (m Model) CheckAdjacency() error {
	for ic, c := range m.Corridors {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%w: corridor %d: %v", ErrAdjacency, ic, err)
		}
		if c.Joins[0] == c.Joins[1] {
			return fmt.Errorf("%w: corridor %d joins room %d to itself", ErrAdjacency, ic, c.Joins[0])
		}
		for k, ir := range c.Joins {
			if ir < 0 || ir >= len(m.Rooms) {
				return fmt.Errorf("%w: corridor %d end %d: room %d out of range", ErrAdjacency, ic, k, ir)
			}
			found := 0
			for _, s := range geometry.Sides {
				for _, x := range m.Rooms[ir].Corridors[s] {
					if x != ic {
						continue
					}
					found++
					if s != c.JoinSides[k] {
						return fmt.Errorf("%w: corridor %d is on %s of room %d, expected %s",
							ErrAdjacency, ic, s, ir, c.JoinSides[k])
					}
				}
			}
			if found != 1 {
				return fmt.Errorf("%w: corridor %d listed %d times in room %d", ErrAdjacency, ic, found, ir)
			}
		}
	}

	for ir, r := range m.Rooms {
		for _, s := range geometry.Sides {
			for _, ic := range r.Corridors[s] {
				if ic < 0 || ic >= len(m.Corridors) {
					return fmt.Errorf("%w: room %d %s: corridor %d out of range", ErrAdjacency, ir, s, ic)
				}
				c := m.Corridors[ic]
				if c.Joins[0] != ir && c.Joins[1] != ir {
					return fmt.Errorf("%w: room %d lists corridor %d which joins %v", ErrAdjacency, ir, ic, c.Joins)
				}
			}
		}
	}
	return nil
}
