package models

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"maptool/internal/maptool/geometry"
)

func pt(x, y float64) geometry.Point { return geometry.Pt(x, y) }

func twoRooms(t *testing.T) Model {
	t.Helper()
	var m Model
	m.AddRoom(NewRoom(pt(2, 8), 4, 4))
	m.AddRoom(NewRoom(pt(14, 8), 4, 4))
	if _, err := m.AddCorridor(NewCorridor(
		[]geometry.Point{pt(4, 8), pt(12, 8)},
		[2]int{0, 1},
		[2]geometry.Side{geometry.East, geometry.West},
	)); err != nil {
		t.Fatalf("AddCorridor: %v", err)
	}
	return m
}

func TestRoomAttachDetach(t *testing.T) {
	var r Room
	r.Attach(geometry.East, 3)
	r.Attach(geometry.East, 5)
	r.Attach(geometry.North, 7)

	if side, ok := r.SideOf(5); !ok || side != geometry.East {
		t.Fatalf("SideOf(5) = %v %v", side, ok)
	}
	side, ok := r.Detach(3)
	if !ok || side != geometry.East {
		t.Fatalf("Detach(3) = %v %v", side, ok)
	}
	if !reflect.DeepEqual(r.Corridors[geometry.East], []int{5}) {
		t.Fatalf("east = %v", r.Corridors[geometry.East])
	}
	if _, ok := r.Detach(3); ok {
		t.Fatalf("corridor 3 already detached")
	}
	if r.Degree() != 2 {
		t.Fatalf("degree = %d", r.Degree())
	}
}

func TestRoomCloneIsDeep(t *testing.T) {
	var r Room
	r.Attach(geometry.West, 1)
	c := r.Clone()
	c.Attach(geometry.West, 2)
	c.Corridors[geometry.West][0] = 9
	if !reflect.DeepEqual(r.Corridors[geometry.West], []int{1}) {
		t.Fatalf("original changed: %v", r.Corridors[geometry.West])
	}
}

func TestCorridorEnds(t *testing.T) {
	c := NewCorridor(
		[]geometry.Point{pt(4, 8), pt(12, 8), pt(12, 4)},
		[2]int{0, 1},
		[2]geometry.Side{geometry.East, geometry.South},
	)
	if !c.IsElbow() || c.IsStraight() {
		t.Fatalf("expected elbow")
	}
	if c.EndIndex(1) != 2 || c.End(1) != pt(12, 4) {
		t.Fatalf("end 1 = %v", c.End(1))
	}
	if a, b := c.NearLeg(1); a != pt(12, 4) || b != pt(12, 8) {
		t.Fatalf("near leg 1 = %v %v", a, b)
	}
	if c.NearLeg2(0) != 64 || c.NearLeg2(1) != 16 {
		t.Fatalf("near legs = %g %g", c.NearLeg2(0), c.NearLeg2(1))
	}
	if c.Other(0) != 1 || c.Other(1) != 0 {
		t.Fatalf("Other wrong")
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestCorridorValidate(t *testing.T) {
	bad := NewCorridor([]geometry.Point{pt(4, 8), pt(12, 8)}, [2]int{0, 1},
		[2]geometry.Side{geometry.North, geometry.West})
	if err := bad.Validate(); err == nil {
		t.Fatalf("horizontal leg through north side must fail")
	}

	short := NewCorridor([]geometry.Point{pt(4, 8)}, [2]int{0, 1}, [2]geometry.Side{})
	if err := short.Validate(); err == nil {
		t.Fatalf("single point corridor must fail")
	}
}

func TestCorridorEntangledSet(t *testing.T) {
	var c Corridor
	if c.IsEntangled() {
		t.Fatalf("fresh corridor is not entangled")
	}
	c.ClearEntangled(1)
	c.MarkEntangled(1)
	c.MarkEntangled(2)
	clone := c.Clone()
	c.ClearEntangled(1)
	if !clone.Entangled.Has(1) || clone.Entangled.Size() != 2 {
		t.Fatalf("clone shares entangled set")
	}
	if c.Entangled.Has(1) || !c.IsEntangled() {
		t.Fatalf("clear failed")
	}
}

func TestAddCorridorAttaches(t *testing.T) {
	m := twoRooms(t)
	if got := m.Rooms[0].Corridors[geometry.East]; !reflect.DeepEqual(got, []int{0}) {
		t.Fatalf("room 0 east = %v", got)
	}
	if got := m.Rooms[1].Corridors[geometry.West]; !reflect.DeepEqual(got, []int{0}) {
		t.Fatalf("room 1 west = %v", got)
	}
	if err := m.CheckAdjacency(); err != nil {
		t.Fatalf("CheckAdjacency: %v", err)
	}

	if _, err := m.AddCorridor(NewCorridor([]geometry.Point{pt(0, 0), pt(1, 0)}, [2]int{0, 0},
		[2]geometry.Side{geometry.East, geometry.West})); err == nil {
		t.Fatalf("self loop must be rejected")
	}
	if _, err := m.AddCorridor(NewCorridor([]geometry.Point{pt(0, 0), pt(1, 0)}, [2]int{0, 7},
		[2]geometry.Side{geometry.East, geometry.West})); err == nil {
		t.Fatalf("unknown room must be rejected")
	}
}

func TestCheckAdjacencyDetectsBreakage(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(m *Model)
	}{
		{"missing from room", func(m *Model) { m.Rooms[1].Detach(0) }},
		{"wrong side", func(m *Model) {
			m.Rooms[1].Detach(0)
			m.Rooms[1].Attach(geometry.North, 0)
		}},
		{"listed twice", func(m *Model) { m.Rooms[0].Attach(geometry.East, 0) }},
		{"foreign corridor", func(m *Model) {
			m.AddRoom(NewRoom(pt(30, 30), 2, 2))
			m.Rooms[2].Attach(geometry.West, 0)
		}},
		{"dangling index", func(m *Model) { m.Rooms[0].Attach(geometry.South, 4) }},
		{"rejoined", func(m *Model) { m.Corridors[0].Joins[1] = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := twoRooms(t)
			tc.mutate(&m)
			if err := m.CheckAdjacency(); !errors.Is(err, ErrAdjacency) {
				t.Fatalf("expected ErrAdjacency, got %v", err)
			}
		})
	}
}

func TestModelCloneAndGeneration(t *testing.T) {
	m := twoRooms(t)
	m.AddRoom(NewIntersection(pt(8, 8), 2))
	c := m.Clone()
	c.Corridors[0].Points[0] = pt(0, 0)
	if m.Corridors[0].Points[0] != pt(4, 8) {
		t.Fatalf("clone shares points")
	}
	if m.MaxGeneration() != 2 || m.Intersections() != 1 {
		t.Fatalf("generation %d intersections %d", m.MaxGeneration(), m.Intersections())
	}
}

func TestMapJSON(t *testing.T) {
	m := Map{ID: "abc", Seed: 7, Params: DefaultParams(), Model: twoRooms(t)}
	m.Corridors[0].Clipped = 2
	m.Corridors[0].MarkEntangled(3)

	data, err := json.Marshal(&m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal raw: %v", err)
	}
	if _, ok := raw["rooms"]; !ok {
		t.Fatalf("rooms must be top level: %s", data)
	}

	var back Map
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Corridors[0].Entangled != nil {
		t.Fatalf("entangled set must not be persisted")
	}
	back.Corridors[0].Entangled = m.Corridors[0].Entangled
	if !reflect.DeepEqual(back.Model, m.Model) {
		t.Fatalf("model mismatch:\n got %+v\nwant %+v", back.Model, m.Model)
	}
	if back.Corridors[0].JoinSides != [2]geometry.Side{geometry.East, geometry.West} {
		t.Fatalf("sides = %v", back.Corridors[0].JoinSides)
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("defaults must be valid: %v", err)
	}
	p := DefaultParams()
	p.RoomSzMin = p.RoomSzMax + 1
	if err := p.Validate(); err == nil {
		t.Fatalf("min > max must fail")
	}
	p = DefaultParams()
	p.CorridorRedundancy = 101
	if err := p.Validate(); err == nil {
		t.Fatalf("redundancy > 100 must fail")
	}
}
