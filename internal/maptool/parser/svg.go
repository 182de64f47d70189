package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"maptool/internal/maptool/geometry"
	"maptool/internal/maptool/models"
	"maptool/internal/maptool/render"
)

// ============================================================
// XML Structures
// ============================================================

type SVG struct {
	XMLName xml.Name `xml:"svg"`
	Rects   []Rect   `xml:"rect"`
	Circles []Circle `xml:"circle"`
	Paths   []Path   `xml:"path"`
}

type Rect struct {
	ID         string  `xml:"id,attr"`
	X          float64 `xml:"x,attr"`
	Y          float64 `xml:"y,attr"`
	Width      float64 `xml:"width,attr"`
	Height     float64 `xml:"height,attr"`
	Class      string  `xml:"class,attr"`
	Generation int     `xml:"data-generation,attr"`
}

type Circle struct {
	ID         string  `xml:"id,attr"`
	CX         float64 `xml:"cx,attr"`
	CY         float64 `xml:"cy,attr"`
	Generation int     `xml:"data-generation,attr"`
}

type Path struct {
	ID         string `xml:"id,attr"`
	D          string `xml:"d,attr"`
	Class      string `xml:"class,attr"`
	Joins      string `xml:"data-joins,attr"`
	Sides      string `xml:"data-sides,attr"`
	Clipped    int    `xml:"data-clipped,attr"`
	Generation int    `xml:"data-generation,attr"`
}

// ============================================================
// Parser
// ============================================================

type indexedRoom struct {
	index int
	room  models.Room
}

type indexedCorridor struct {
	index    int
	corridor models.Corridor
}

// ParseSVG читает SVG в формате render.Renderer и восстанавливает модель.
// Элементы без id комнаты или коридора пропускаются. Индексы должны идти
// подряд с нуля.
func ParseSVG(r io.Reader) (*models.Model, error) {
	var svg SVG
	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&svg); err != nil {
		return nil, fmt.Errorf("decode svg: %w", err)
	}

	var rooms []indexedRoom
	for _, rect := range svg.Rects {
		idx, ok := parseIndex(rect.ID, render.RoomPrefix)
		if !ok {
			continue
		}
		room := models.NewRoom(
			geometry.Pt(rect.X+rect.Width/2, rect.Y+rect.Height/2),
			rect.Width, rect.Height,
		)
		room.IsMain = hasClass(rect.Class, "main")
		room.Generation = rect.Generation
		rooms = append(rooms, indexedRoom{idx, room})
	}
	for _, circle := range svg.Circles {
		idx, ok := parseIndex(circle.ID, render.RoomPrefix)
		if !ok {
			continue
		}
		rooms = append(rooms, indexedRoom{idx, models.NewIntersection(geometry.Pt(circle.CX, circle.CY), circle.Generation)})
	}

	var corridors []indexedCorridor
	for _, path := range svg.Paths {
		idx, ok := parseIndex(path.ID, render.CorridorPrefix)
		if !ok {
			continue
		}
		c, err := parseCorridor(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path.ID, err)
		}
		corridors = append(corridors, indexedCorridor{idx, c})
	}

	sort.Slice(rooms, func(i, j int) bool { return rooms[i].index < rooms[j].index })
	sort.Slice(corridors, func(i, j int) bool { return corridors[i].index < corridors[j].index })

	m := &models.Model{}
	for i, r := range rooms {
		if r.index != i {
			return nil, fmt.Errorf("room indices are not contiguous at %d", i)
		}
		m.AddRoom(r.room)
	}
	for i, c := range corridors {
		if c.index != i {
			return nil, fmt.Errorf("corridor indices are not contiguous at %d", i)
		}
		if _, err := m.AddCorridor(c.corridor); err != nil {
			return nil, fmt.Errorf("%s: %w", render.CorridorID(i), err)
		}
	}

	return m, nil
}

func parseCorridor(path Path) (models.Corridor, error) {
	points, err := ParsePath(path.D)
	if err != nil {
		return models.Corridor{}, err
	}

	joinFields := strings.Fields(path.Joins)
	if len(joinFields) != 2 {
		return models.Corridor{}, fmt.Errorf("data-joins must hold two room indices, got %q", path.Joins)
	}
	var joins [2]int
	for k, f := range joinFields {
		if joins[k], err = strconv.Atoi(f); err != nil {
			return models.Corridor{}, fmt.Errorf("data-joins: %w", err)
		}
	}

	sideFields := strings.Fields(path.Sides)
	if len(sideFields) != 2 {
		return models.Corridor{}, fmt.Errorf("data-sides must hold two sides, got %q", path.Sides)
	}
	var sides [2]geometry.Side
	for k, f := range sideFields {
		if sides[k], err = geometry.ParseSide(f); err != nil {
			return models.Corridor{}, fmt.Errorf("data-sides: %w", err)
		}
	}

	c := models.NewCorridor(points, joins, sides)
	c.Clipped = path.Clipped
	c.IsInserted = hasClass(path.Class, "inserted")
	c.Generation = path.Generation
	return c, nil
}

func parseIndex(id, prefix string) (int, bool) {
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	idx, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

func hasClass(class, name string) bool {
	for _, c := range strings.Fields(class) {
		if c == name {
			return true
		}
	}
	return false
}
