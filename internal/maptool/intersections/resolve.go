package intersections

import (
	"context"
	"errors"
	"fmt"

	"maptool/internal/maptool/models"

	"github.com/zyedidia/generic/mapset"
)

// ============================================================
// Driver
// ============================================================

type Options struct {
	// MaxSteps предел числа слияний, 0 значит по размеру графа.
	MaxSteps int
	// Logf получает по строке на каждое слияние.
	Logf func(format string, args ...any)
}

type Stats struct {
	Merges         int            `json:"merges"`
	RoomsAdded     int            `json:"rooms_added"`
	CorridorsAdded int            `json:"corridors_added"`
	Generations    int            `json:"generations"`
	Recipes        map[string]int `json:"recipes,omitempty"`
}

func (st *Stats) record(res MergeResult) {
	st.Merges++
	st.RoomsAdded += len(res.RoomsAdded)
	st.CorridorsAdded += len(res.CorridorsAdded)
	if st.Recipes == nil {
		st.Recipes = make(map[string]int)
	}
	st.Recipes[res.Merge.Recipe.String()]++
}

// step подменяется в тестах.
var step = Step

func defaultBudget(m *models.Model) int {
	return 1000 + 16*len(m.Corridors)
}

// Step классифицирует и разрешает одну пару, затем проверяет граф.
func Step(m *models.Model, pair Pair, generation int) (MergeResult, error) {
	mg, err := Classify(*m, pair)
	if err != nil {
		return MergeResult{}, &MergeError{Pair: pair, Recipe: -1, Err: err}
	}
	res, err := Plan(m, mg, generation)
	if err != nil {
		return MergeResult{}, &MergeError{Pair: pair, Recipe: mg.Recipe, Err: err}
	}
	if err := Apply(m, res); err != nil {
		return MergeResult{}, &MergeError{Pair: pair, Recipe: mg.Recipe, Err: err}
	}

	if err := m.CheckAdjacency(); err != nil {
		return res, &MergeError{Pair: pair, Recipe: mg.Recipe, Err: fmt.Errorf("%w: %v", ErrConsistency, err)}
	}
	if CheckEntangled(m.Corridors[mg.A], m.Corridors[mg.B]) {
		return res, &MergeError{Pair: pair, Recipe: mg.Recipe,
			Err: fmt.Errorf("%w: corridors %d and %d still entangled", ErrConsistency, mg.A, mg.B)}
	}

	m.Corridors[mg.A].ClearEntangled(mg.B)
	m.Corridors[mg.B].ClearEntangled(mg.A)
	return res, nil
}

// ResolveAll разрешает запутанные пары, пока детектор их находит.
// Созданное в текущем поколении не просматривается до следующего.
// Любая ошибка фатальна для этого графа.
func ResolveAll(ctx context.Context, m *models.Model, opts Options) (Stats, error) {
	var st Stats
	if err := m.CheckAdjacency(); err != nil {
		return st, fmt.Errorf("%w: input graph: %v", ErrConsistency, err)
	}

	budget := opts.MaxSteps
	if budget <= 0 {
		budget = defaultBudget(m)
	}
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	MarkEntangled(m)
	generation := m.MaxGeneration() + 1
	first := generation
	created := false
	seen := mapset.New[[2]int]()

	for {
		if err := ctx.Err(); err != nil {
			return st, fmt.Errorf("resolve: %w", err)
		}

		pair, ok := findPair(*m, generation)
		if !ok {
			if !created {
				break
			}
			generation++
			created = false
			seen = mapset.New[[2]int]()
			continue
		}

		if st.Merges >= budget {
			return st, fmt.Errorf("%w: %d merges", ErrIterationBudget, st.Merges)
		}
		if seen.Has(pair.key()) {
			return st, fmt.Errorf("%w: corridors %d and %d entangled again without progress",
				ErrIterationBudget, pair.A, pair.B)
		}
		seen.Put(pair.key())

		res, err := step(m, pair, generation)
		if err != nil {
			return st, err
		}
		st.record(res)
		st.Generations = generation - first + 1
		if len(res.RoomsAdded) > 0 || len(res.CorridorsAdded) > 0 {
			created = true
			seen = mapset.New[[2]int]()
		}
		logf("[RESOLVE] %s: corridors %d+%d at room %d %s, +%d rooms +%d corridors",
			res.Merge.Recipe, res.Merge.A, res.Merge.B, res.Merge.Shared, pair.Side,
			len(res.RoomsAdded), len(res.CorridorsAdded))
	}

	if n := MarkEntangled(m); n > 0 {
		return st, fmt.Errorf("%w: %d pairs left entangled", ErrConsistency, n)
	}
	return st, nil
}

// IsFatal: ошибка разрешения, после которой нужен новый seed.
func IsFatal(err error) bool {
	return errors.Is(err, ErrClassification) || errors.Is(err, ErrConsistency) || errors.Is(err, ErrIterationBudget)
}
