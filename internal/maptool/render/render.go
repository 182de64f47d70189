package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"maptool/internal/maptool/geometry"
	"maptool/internal/maptool/models"
)

// ============================================================
// Renderer
// ============================================================

const (
	defaultMargin      = 32
	intersectionRadius = 6

	strokeMain         = "#1f77b4"
	strokeSecondary    = "#7f7f7f"
	strokeIntersection = "#2ca02c"
	strokeCorridor     = "#000"
	strokeEntangled    = "#d62728"
)

type Renderer struct {
	// Margin отступ вокруг карты в единицах карты.
	Margin float64
	// HighlightEntangled помечает перепутанные коридоры красным.
	HighlightEntangled bool
}

func NewRenderer() *Renderer {
	return &Renderer{Margin: defaultMargin}
}

// Render собирает SVG из модели карты. Все поля модели, кроме множества
// перепутанных коридоров, сохраняются в data-атрибутах и читаются обратно
// parser.ParseSVG.
func (r *Renderer) Render(m *models.Model) (string, error) {
	if m == nil {
		return "", fmt.Errorf("model is nil")
	}

	minX, minY, width, height := r.bounds(m)

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s">`,
		formatFloat(width), formatFloat(height),
		formatFloat(minX), formatFloat(minY), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")

	for _, elem := range r.renderRooms(m) {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}
	for _, elem := range r.renderCorridors(m) {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

// ============================================================
// Sizing
// ============================================================

func (r *Renderer) bounds(m *models.Model) (float64, float64, float64, float64) {
	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64

	grow := func(p geometry.Point) {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	for _, room := range m.Rooms {
		b := room.Box()
		grow(b.TL)
		grow(b.BR)
	}
	for _, c := range m.Corridors {
		for _, p := range c.Points {
			grow(p)
		}
	}

	if minX == math.MaxFloat64 {
		return 0, 0, 1000, 1000
	}

	margin := math.Max(r.Margin, intersectionRadius)
	return minX - margin, minY - margin, maxX - minX + 2*margin, maxY - minY + 2*margin
}

// ============================================================
// Element renderers
// ============================================================

func (r *Renderer) renderRooms(m *models.Model) []string {
	out := make([]string, 0, len(m.Rooms))

	for i, room := range m.Rooms {
		if room.IsIntersection {
			out = append(out, fmt.Sprintf(`<circle id="%s" cx="%s" cy="%s" r="%d" class="intersection" data-generation="%d" fill="%s" />`,
				RoomID(i), formatFloat(room.Center.X), formatFloat(room.Center.Y),
				intersectionRadius, room.Generation, strokeIntersection))
			continue
		}

		class, stroke := "room", strokeSecondary
		if room.IsMain {
			class, stroke = "room main", strokeMain
		}
		b := room.Box()
		out = append(out, fmt.Sprintf(`<rect id="%s" x="%s" y="%s" width="%s" height="%s" class="%s" data-generation="%d" fill="none" stroke="%s" />`,
			RoomID(i), formatFloat(b.TL.X), formatFloat(b.TL.Y), formatFloat(room.Width), formatFloat(room.Height),
			class, room.Generation, stroke))
	}

	return out
}

func (r *Renderer) renderCorridors(m *models.Model) []string {
	out := make([]string, 0, len(m.Corridors))

	for i, c := range m.Corridors {
		if len(c.Points) == 0 {
			continue
		}

		var path strings.Builder
		path.WriteString(`<path id="`)
		path.WriteString(CorridorID(i))
		path.WriteString(`" d="M `)
		path.WriteString(formatPoint(c.Points[0]))
		for _, p := range c.Points[1:] {
			path.WriteString(" L ")
			path.WriteString(formatPoint(p))
		}
		path.WriteString(`" class="corridor`)
		if c.IsInserted {
			path.WriteString(` inserted`)
		}
		path.WriteString(fmt.Sprintf(`" data-joins="%d %d" data-sides="%s %s" data-clipped="%d" data-generation="%d"`,
			c.Joins[0], c.Joins[1], c.JoinSides[0], c.JoinSides[1], c.Clipped, c.Generation))

		stroke := strokeCorridor
		if r.HighlightEntangled && c.IsEntangled() {
			stroke = strokeEntangled
			path.WriteString(` data-entangled="true"`)
		}
		path.WriteString(` fill="none" stroke="`)
		path.WriteString(stroke)
		path.WriteString(`" />`)

		out = append(out, path.String())
	}

	return out
}

// ============================================================
// Identifiers & formatting
// ============================================================

const (
	RoomPrefix     = "room-"
	CorridorPrefix = "corridor-"
)

func RoomID(i int) string     { return RoomPrefix + strconv.Itoa(i) }
func CorridorID(i int) string { return CorridorPrefix + strconv.Itoa(i) }

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

func formatPoint(p geometry.Point) string {
	return formatFloat(p.X) + " " + formatFloat(p.Y)
}
