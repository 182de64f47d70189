package models

import "fmt"

// ============================================================
// Generation parameters
// ============================================================

// Params параметры генерации карты. Одинаковые Params дают одинаковую карту.
type Params struct {
	Seed                int64   `json:"seed" yaml:"seed"`
	Rooms               int     `json:"rooms" yaml:"rooms"`
	ArenaSize           float64 `json:"arena_size" yaml:"arena_size"`
	RoomSzMin           float64 `json:"room_szmin" yaml:"room_szmin"`
	RoomSzMax           float64 `json:"room_szmax" yaml:"room_szmax"`
	RoomSzRatio         float64 `json:"room_szratio" yaml:"room_szratio"`
	MainRoomThresh      float64 `json:"main_room_thresh" yaml:"main_room_thresh"`
	MinSeparationFactor float64 `json:"min_separation_factor" yaml:"min_separation_factor"`
	FlockFactor         float64 `json:"flock_factor" yaml:"flock_factor"`
	TileSnapSize        float64 `json:"tile_snap_size" yaml:"tile_snap_size"`
	CorridorRedundancy  float64 `json:"corridor_redundancy" yaml:"corridor_redundancy"`
	TanFudge            float64 `json:"tan_fudge" yaml:"tan_fudge"`
	SnapMargin          float64 `json:"snap_margin" yaml:"snap_margin"`
	MaxFlockPasses      int     `json:"max_flock_passes" yaml:"max_flock_passes"`
	AllowCrossing       bool    `json:"allow_crossing" yaml:"allow_crossing"`
}

const defaultArenaSize = 2048

func DefaultParams() Params {
	return Params{
		Rooms:               16,
		ArenaSize:           defaultArenaSize,
		RoomSzMin:           defaultArenaSize / 4,
		RoomSzMax:           defaultArenaSize / 2,
		RoomSzRatio:         1.8,
		MainRoomThresh:      0.8,
		MinSeparationFactor: 1.7,
		FlockFactor:         600,
		TileSnapSize:        4,
		CorridorRedundancy:  15,
		TanFudge:            0.0001,
		SnapMargin:          0.015,
		MaxFlockPasses:      500,
	}
}

func (p Params) Validate() error {
	switch {
	case p.Rooms < 2:
		return fmt.Errorf("rooms must be at least 2, got %d", p.Rooms)
	case p.ArenaSize <= 0:
		return fmt.Errorf("arena_size must be positive")
	case p.RoomSzMin <= 0 || p.RoomSzMax <= 0:
		return fmt.Errorf("room sizes must be positive")
	case p.RoomSzMin > p.RoomSzMax:
		return fmt.Errorf("room_szmin %g exceeds room_szmax %g", p.RoomSzMin, p.RoomSzMax)
	case p.RoomSzRatio < 1:
		return fmt.Errorf("room_szratio must be >= 1")
	case p.TileSnapSize <= 0:
		return fmt.Errorf("tile_snap_size must be positive")
	case p.MinSeparationFactor <= 0 || p.FlockFactor <= 0:
		return fmt.Errorf("flocking factors must be positive")
	case p.CorridorRedundancy < 0 || p.CorridorRedundancy > 100:
		return fmt.Errorf("corridor_redundancy must be within [0,100]")
	case p.MaxFlockPasses <= 0:
		return fmt.Errorf("max_flock_passes must be positive")
	case p.SnapMargin < 0:
		return fmt.Errorf("snap_margin must not be negative")
	}
	return nil
}
