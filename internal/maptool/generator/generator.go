package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"maptool/internal/maptool/intersections"
	"maptool/internal/maptool/models"
)

// ============================================================
// Generator
// ============================================================

type Stats struct {
	Seed        int64               `json:"seed"`
	Rooms       int                 `json:"rooms"`
	MainRooms   int                 `json:"main_rooms"`
	Edges       int                 `json:"edges"`
	Corridors   int                 `json:"corridors"`
	Rejected    int                 `json:"rejected"`
	FlockPasses int                 `json:"flock_passes"`
	Snapped     int                 `json:"snapped"`
	Resolve     intersections.Stats `json:"resolve"`
}

type Generator struct {
	params models.Params
	rng    *rand.Rand
	logf   func(format string, args ...any)
}

// New проверяет параметры и готовит генератор. Seed 0 заменяется текущим временем.
func New(p models.Params) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}
	if p.Seed == 0 {
		p.Seed = time.Now().UnixNano()
	}
	return &Generator{
		params: p,
		rng:    rand.New(rand.NewSource(p.Seed)),
		logf:   func(string, ...any) {},
	}, nil
}

// WithLogger задает функцию для строк диагностики.
func (g *Generator) WithLogger(logf func(format string, args ...any)) *Generator {
	if logf != nil {
		g.logf = logf
	}
	return g
}

func (g *Generator) Params() models.Params {
	return g.params
}

// Generate строит карту: размещение, главные комнаты, граф, коридоры,
// распутывание. Одинаковые параметры дают одинаковую модель.
func (g *Generator) Generate(ctx context.Context) (models.Model, Stats, error) {
	st := Stats{Seed: g.params.Seed}
	var m models.Model

	rooms := g.placeRooms()
	passes, err := g.separate(ctx, rooms)
	if err != nil {
		return m, st, err
	}
	st.FlockPasses = passes

	st.MainRooms = markMainRooms(rooms, g.params.MainRoomThresh)
	for _, r := range rooms {
		m.AddRoom(r)
	}
	st.Rooms = len(m.Rooms)

	edges := g.roomGraph(m.Rooms)
	st.Edges = len(edges)
	for _, e := range edges {
		ok, err := g.connect(&m, e[0], e[1])
		if err != nil {
			return m, st, err
		}
		if !ok {
			st.Rejected++
		}
	}

	rejected, err := g.connectSecondary(&m)
	if err != nil {
		return m, st, err
	}
	st.Rejected += rejected
	g.logf("[GENERATE] seed=%d rooms=%d main=%d corridors=%d rejected=%d",
		g.params.Seed, st.Rooms, st.MainRooms, len(m.Corridors), st.Rejected)

	st.Snapped = intersections.SnapClosePairs(&m, g.params.SnapMargin)

	rs, err := intersections.ResolveAll(ctx, &m, intersections.Options{Logf: g.logf})
	st.Resolve = rs
	if err != nil {
		return m, st, fmt.Errorf("seed %d: %w", g.params.Seed, err)
	}
	st.Corridors = len(m.Corridors)
	return m, st, nil
}

// Generate генерирует карту по параметрам.
func Generate(ctx context.Context, p models.Params) (*models.Map, Stats, error) {
	g, err := New(p)
	if err != nil {
		return nil, Stats{}, err
	}
	return g.Map(ctx)
}

// Map оборачивает модель в документ карты без ID.
func (g *Generator) Map(ctx context.Context) (*models.Map, Stats, error) {
	model, st, err := g.Generate(ctx)
	if err != nil {
		return nil, st, err
	}
	return &models.Map{
		Seed:      g.params.Seed,
		Params:    g.params,
		CreatedAt: time.Now().UTC(),
		Model:     model,
	}, st, nil
}

// GenerateRetry повторяет генерацию со следующим seed, пока распутывание
// завершается фатальной ошибкой. logf может быть nil.
func GenerateRetry(ctx context.Context, p models.Params, attempts int, logf func(format string, args ...any)) (*models.Map, Stats, error) {
	attempts = max(attempts, 1)

	var lastErr error
	for i := 0; i < attempts; i++ {
		g, err := New(p)
		if err != nil {
			return nil, Stats{}, err
		}
		m, st, err := g.WithLogger(logf).Map(ctx)
		if err == nil {
			return m, st, nil
		}
		if !intersections.IsFatal(err) {
			return nil, st, err
		}
		if logf != nil {
			logf("[GENERATE] seed %d failed, retrying: %v", st.Seed, err)
		}
		lastErr = err
		p.Seed = st.Seed + 1
	}
	return nil, Stats{}, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
