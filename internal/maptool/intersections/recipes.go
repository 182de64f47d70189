package intersections

import (
	"fmt"
	"sort"

	"maptool/internal/maptool/geometry"
	"maptool/internal/maptool/models"
)

// ============================================================
// Merge result
// ============================================================

type RoomChange struct {
	Index int
	Room  models.Room
}

type CorridorChange struct {
	Index    int
	Corridor models.Corridor
}

// MergeResult описание изменений графа одним слиянием. Новые комнаты и
// коридоры получают индексы начиная с BaseRooms и BaseCorridors.
type MergeResult struct {
	Merge            Merge
	BaseRooms        int
	BaseCorridors    int
	RoomsAdded       []models.Room
	CorridorsAdded   []models.Corridor
	RoomsChanged     []RoomChange
	CorridorsChanged []CorridorChange
}

// stage копирует затронутые элементы при первом обращении, исходный граф
// не меняется.
type stage struct {
	m            *models.Model
	generation   int
	rooms        map[int]*models.Room
	corridors    map[int]*models.Corridor
	newRooms     []*models.Room
	newCorridors []*models.Corridor
}

func newStage(m *models.Model, generation int) *stage {
	return &stage{
		m:          m,
		generation: generation,
		rooms:      make(map[int]*models.Room),
		corridors:  make(map[int]*models.Corridor),
	}
}

func (s *stage) room(i int) *models.Room {
	if i >= len(s.m.Rooms) {
		return s.newRooms[i-len(s.m.Rooms)]
	}
	if r, ok := s.rooms[i]; ok {
		return r
	}
	r := s.m.Rooms[i].Clone()
	s.rooms[i] = &r
	return &r
}

func (s *stage) corridor(i int) *models.Corridor {
	if i >= len(s.m.Corridors) {
		return s.newCorridors[i-len(s.m.Corridors)]
	}
	if c, ok := s.corridors[i]; ok {
		return c
	}
	c := s.m.Corridors[i].Clone()
	s.corridors[i] = &c
	return &c
}

func (s *stage) addRoom(r models.Room) int {
	s.newRooms = append(s.newRooms, &r)
	return len(s.m.Rooms) + len(s.newRooms) - 1
}

func (s *stage) addCorridor(c models.Corridor) int {
	s.newCorridors = append(s.newCorridors, &c)
	return len(s.m.Corridors) + len(s.newCorridors) - 1
}

func (s *stage) detach(room, corridor int) (geometry.Side, error) {
	side, ok := s.room(room).Detach(corridor)
	if !ok {
		return 0, fmt.Errorf("%w: corridor %d is not attached to room %d", ErrConsistency, corridor, room)
	}
	return side, nil
}

func (s *stage) result(mg Merge) MergeResult {
	res := MergeResult{
		Merge:         mg,
		BaseRooms:     len(s.m.Rooms),
		BaseCorridors: len(s.m.Corridors),
	}
	for _, r := range s.newRooms {
		res.RoomsAdded = append(res.RoomsAdded, *r)
	}
	for _, c := range s.newCorridors {
		res.CorridorsAdded = append(res.CorridorsAdded, *c)
	}

	roomIdx := make([]int, 0, len(s.rooms))
	for i := range s.rooms {
		roomIdx = append(roomIdx, i)
	}
	sort.Ints(roomIdx)
	for _, i := range roomIdx {
		res.RoomsChanged = append(res.RoomsChanged, RoomChange{Index: i, Room: *s.rooms[i]})
	}

	corrIdx := make([]int, 0, len(s.corridors))
	for i := range s.corridors {
		corrIdx = append(corrIdx, i)
	}
	sort.Ints(corrIdx)
	for _, i := range corrIdx {
		res.CorridorsChanged = append(res.CorridorsChanged, CorridorChange{Index: i, Corridor: *s.corridors[i]})
	}
	return res
}

// ============================================================
// Recipes
// ============================================================

// Plan строит результат слияния по классификации, не меняя m.
func Plan(m *models.Model, mg Merge, generation int) (MergeResult, error) {
	s := newStage(m, generation)

	var err error
	switch mg.Recipe {
	case RecipeStraights, RecipeShortStraight:
		err = reroute(s, mg)
	case RecipeLongStraight, RecipeSpur:
		err = split(s, mg)
	case RecipeTee:
		err = tee(s, mg)
	default:
		err = fmt.Errorf("%w: unknown recipe %d", ErrClassification, int(mg.Recipe))
	}
	if err != nil {
		return MergeResult{}, err
	}
	return s.result(mg), nil
}

// reroute переносит общий конец A на дальнюю комнату B. B не меняется.
func reroute(s *stage, mg Merge) error {
	want := 2
	if mg.Recipe == RecipeShortStraight {
		want = 3
	}
	a, b := s.corridor(mg.A), s.corridor(mg.B)
	if len(a.Points) != want || !b.IsStraight() {
		return fmt.Errorf("%w: %s expects %d+2 points, got %d+%d",
			ErrClassification, mg.Recipe, want, len(a.Points), len(b.Points))
	}

	far := b.Joins[1-mg.BEnd]
	side, err := s.detach(mg.Shared, mg.A)
	if err != nil {
		return err
	}

	a.Points[a.EndIndex(mg.AEnd)] = b.End(1 - mg.BEnd)
	a.Joins[mg.AEnd] = far
	a.Clipped++

	// изгиб целиком съеден прямым
	if a.IsElbow() {
		p, q := a.NearLeg(mg.AEnd)
		if geometry.Same(p, q) {
			straighten(a, mg.AEnd)
			s.room(far).Attach(a.JoinSides[mg.AEnd], mg.A)
			return nil
		}
	}
	a.JoinSides[mg.AEnd] = side
	s.room(far).Attach(side, mg.A)
	return nil
}

// straighten отбрасывает ближний к концу k сегмент изгиба. Конец k
// оказывается в точке изгиба, сторона противоположна стороне другого конца.
func straighten(c *models.Corridor, k int) {
	c.Points = append([]geometry.Point(nil), c.Points[1-k:3-k]...)
	c.JoinSides[k] = c.JoinSides[1-k].Opposite()
}

// filler вставляет прямой коридор от общей комнаты до перекрестка rn
// по ближнему сегменту B.
func filler(s *stage, mg Merge, rn int) int {
	b := s.corridor(mg.B)
	side := b.JoinSides[mg.BEnd]

	cn := models.Corridor{
		Points:     make([]geometry.Point, 2),
		IsInserted: true,
		Generation: s.generation,
	}
	cn.Points[mg.BEnd] = b.End(mg.BEnd)
	cn.Points[1-mg.BEnd] = b.Points[1]
	cn.Joins[mg.BEnd] = mg.Shared
	cn.Joins[1-mg.BEnd] = rn
	cn.JoinSides[mg.BEnd] = side
	cn.JoinSides[1-mg.BEnd] = side.Opposite()
	return s.addCorridor(cn)
}

// split: перекресток в точке изгиба B. A укорачивается до перекрестка и
// входит в него той же стороной, что входил в общую комнату; B теряет
// ближний сегмент.
func split(s *stage, mg Merge) error {
	a, b := s.corridor(mg.A), s.corridor(mg.B)
	if !b.IsElbow() || (mg.Recipe == RecipeSpur) != a.IsElbow() {
		return fmt.Errorf("%w: %s got %d+%d points", ErrClassification, mg.Recipe, len(a.Points), len(b.Points))
	}

	bend := b.Points[1]
	rn := s.addRoom(models.NewIntersection(bend, s.generation))
	icn := filler(s, mg, rn)

	sideA, err := s.detach(mg.Shared, mg.A)
	if err != nil {
		return err
	}
	if _, err := s.detach(mg.Shared, mg.B); err != nil {
		return err
	}
	cn := s.corridor(icn)
	s.room(mg.Shared).Attach(cn.JoinSides[mg.BEnd], icn)
	s.room(rn).Attach(cn.JoinSides[1-mg.BEnd], icn)

	a.Points[a.EndIndex(mg.AEnd)] = bend
	a.Joins[mg.AEnd] = rn
	a.JoinSides[mg.AEnd] = sideA
	a.Clipped++
	s.room(rn).Attach(sideA, mg.A)

	b.Joins[mg.BEnd] = rn
	straighten(b, mg.BEnd)
	b.Clipped++
	s.room(rn).Attach(b.JoinSides[mg.BEnd], mg.B)
	return nil
}

// tee: общий изгиб. Оба коридора становятся прямыми от перекрестка.
func tee(s *stage, mg Merge) error {
	a, b := s.corridor(mg.A), s.corridor(mg.B)
	if !a.IsElbow() || !b.IsElbow() {
		return fmt.Errorf("%w: tee got %d+%d points", ErrClassification, len(a.Points), len(b.Points))
	}

	rn := s.addRoom(models.NewIntersection(b.Points[1], s.generation))
	icn := filler(s, mg, rn)

	if _, err := s.detach(mg.Shared, mg.A); err != nil {
		return err
	}
	if _, err := s.detach(mg.Shared, mg.B); err != nil {
		return err
	}
	cn := s.corridor(icn)
	s.room(mg.Shared).Attach(cn.JoinSides[mg.BEnd], icn)
	s.room(rn).Attach(cn.JoinSides[1-mg.BEnd], icn)

	for _, end := range []struct {
		c  *models.Corridor
		ic int
		k  int
	}{{a, mg.A, mg.AEnd}, {b, mg.B, mg.BEnd}} {
		end.c.Joins[end.k] = rn
		straighten(end.c, end.k)
		end.c.Clipped++
		s.room(rn).Attach(end.c.JoinSides[end.k], end.ic)
	}
	return nil
}

// ============================================================
// Apply
// ============================================================

// Apply записывает результат слияния в граф.
func Apply(m *models.Model, res MergeResult) error {
	if len(m.Rooms) != res.BaseRooms || len(m.Corridors) != res.BaseCorridors {
		return fmt.Errorf("%w: result planned for %d rooms/%d corridors, graph has %d/%d",
			ErrConsistency, res.BaseRooms, res.BaseCorridors, len(m.Rooms), len(m.Corridors))
	}
	for _, ch := range res.RoomsChanged {
		m.Rooms[ch.Index] = ch.Room
	}
	for _, ch := range res.CorridorsChanged {
		m.Corridors[ch.Index] = ch.Corridor
	}
	m.Rooms = append(m.Rooms, res.RoomsAdded...)
	m.Corridors = append(m.Corridors, res.CorridorsAdded...)
	return nil
}
