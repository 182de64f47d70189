package models

import "time"

// Map сохраняемый документ карты.
type Map struct {
	ID        string    `json:"id"`
	Seed      int64     `json:"seed"`
	Params    Params    `json:"params"`
	CreatedAt time.Time `json:"created_at"`
	Model
}

// MapSummary строка списка карт.
type MapSummary struct {
	ID            string    `json:"id"`
	Seed          int64     `json:"seed"`
	Rooms         int       `json:"rooms"`
	Corridors     int       `json:"corridors"`
	Intersections int       `json:"intersections"`
	CreatedAt     time.Time `json:"created_at"`
}

func (m *Map) Summary() MapSummary {
	return MapSummary{
		ID:            m.ID,
		Seed:          m.Seed,
		Rooms:         len(m.Rooms),
		Corridors:     len(m.Corridors),
		Intersections: m.Intersections(),
		CreatedAt:     m.CreatedAt,
	}
}
