package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"maptool/internal/maptool/geometry"
)

// ============================================================
// Path Parser
// ============================================================

var pathCommand = regexp.MustCompile(`([MmLlHhVv])([^MmLlHhVv]*)`)

// ParsePath разбирает SVG path из команд M, L, H, V (и относительных
// вариантов) в список точек. Повторные пары координат после M и L
// считаются продолжением линии.
func ParsePath(d string) ([]geometry.Point, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}

	var points []geometry.Point
	var x, y float64

	for _, match := range pathCommand.FindAllStringSubmatch(d, -1) {
		cmd := match[1]
		coords, err := parseCoords(match[2])
		if err != nil {
			return nil, fmt.Errorf("command %s: %w", cmd, err)
		}
		relative := strings.ToLower(cmd) == cmd

		switch strings.ToUpper(cmd) {
		case "M", "L":
			if len(coords) == 0 || len(coords)%2 != 0 {
				return nil, fmt.Errorf("command %s expects coordinate pairs, got %d values", cmd, len(coords))
			}
			for i := 0; i < len(coords); i += 2 {
				if relative {
					x, y = x+coords[i], y+coords[i+1]
				} else {
					x, y = coords[i], coords[i+1]
				}
				points = append(points, geometry.Pt(x, y))
			}

		case "H":
			if len(coords) == 0 {
				return nil, fmt.Errorf("command %s expects a value", cmd)
			}
			for _, v := range coords {
				if relative {
					x += v
				} else {
					x = v
				}
				points = append(points, geometry.Pt(x, y))
			}

		case "V":
			if len(coords) == 0 {
				return nil, fmt.Errorf("command %s expects a value", cmd)
			}
			for _, v := range coords {
				if relative {
					y += v
				} else {
					y = v
				}
				points = append(points, geometry.Pt(x, y))
			}
		}
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("path %q has no points", d)
	}
	return points, nil
}

func parseCoords(s string) ([]float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", " "))
	if s == "" {
		return nil, nil
	}

	parts := strings.Fields(s)
	coords := make([]float64, 0, len(parts))
	for _, part := range parts {
		val, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		coords = append(coords, val)
	}
	return coords, nil
}
