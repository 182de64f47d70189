package intersections

import (
	"errors"
	"fmt"
)

// ============================================================
// Errors
// ============================================================

var (
	// ErrClassification пара не подходит ни под один рецепт.
	ErrClassification = errors.New("classification error")

	// ErrConsistency после слияния нарушена смежность или пара осталась запутанной.
	ErrConsistency = errors.New("consistency violation")

	// ErrIterationBudget цикл разрешения не продвигается.
	ErrIterationBudget = errors.New("iteration budget exceeded")
)

// MergeError ошибка конкретного слияния.
type MergeError struct {
	Pair   Pair
	Recipe Recipe
	Err    error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge %d+%d (%s): %v", e.Pair.A, e.Pair.B, e.Recipe, e.Err)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}
