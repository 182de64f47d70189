package intersections

import (
	"fmt"

	"maptool/internal/maptool/geometry"
	"maptool/internal/maptool/models"
)

// ============================================================
// Classification
// ============================================================

type Shape int

const (
	StraightStraight Shape = iota
	ElbowStraight
	ElbowElbow
)

func (s Shape) String() string {
	switch s {
	case StraightStraight:
		return "straight-straight"
	case ElbowStraight:
		return "elbow-straight"
	case ElbowElbow:
		return "elbow-elbow"
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// Recipe способ переписать граф для пары.
type Recipe int

const (
	// RecipeStraights: длинный прямой A переносится на дальнюю комнату короткого B.
	RecipeStraights Recipe = iota
	// RecipeShortStraight: изгиб A переносится на дальнюю комнату короткого прямого B.
	RecipeShortStraight
	// RecipeLongStraight: прямой A длиннее ближнего сегмента изгиба B.
	RecipeLongStraight
	// RecipeSpur: у изгиба B ближний сегмент короче, чем у изгиба A.
	RecipeSpur
	// RecipeTee: изгибы A и B с общей точкой изгиба.
	RecipeTee
)

var recipeNames = [...]string{"straights", "short-straight", "long-straight", "spur", "tee"}

func (r Recipe) String() string {
	if r < 0 || int(r) >= len(recipeNames) {
		return fmt.Sprintf("recipe(%d)", int(r))
	}
	return recipeNames[r]
}

// CreatesRoom: рецепт добавляет перекресток и соединительный коридор.
func (r Recipe) CreatesRoom() bool {
	return r == RecipeLongStraight || r == RecipeSpur || r == RecipeTee
}

// Merge результат классификации. A и B уже упорядочены под рецепт,
// AEnd и BEnd это концы у общей комнаты Shared.
type Merge struct {
	Pair   Pair
	Shape  Shape
	Recipe Recipe
	A, B   int
	AEnd   int
	BEnd   int
	Shared int
}

func (mg *Merge) swap() {
	mg.A, mg.B = mg.B, mg.A
	mg.AEnd, mg.BEnd = mg.BEnd, mg.AEnd
}

// shorter: коридор i короче j. При равенстве короче меньший индекс.
func shorter(i int, li float64, j int, lj float64) bool {
	if geometry.EssentiallyEqual(li, lj) {
		return i < j
	}
	return li < lj
}

// sharedEnds ищет концы ka, kb, которые совпадают и примыкают к одной
// стороне одной комнаты. Порядок точек коридора при этом не важен:
// индекс конца берется из Joins и проверяется по геометрии.
func sharedEnds(a, b models.Corridor, room int) (int, int, bool) {
	for ka := 0; ka < 2; ka++ {
		for kb := 0; kb < 2; kb++ {
			if a.Joins[ka] != b.Joins[kb] || a.JoinSides[ka] != b.JoinSides[kb] {
				continue
			}
			if room >= 0 && a.Joins[ka] != room {
				continue
			}
			if geometry.Same(a.End(ka), b.End(kb)) {
				return ka, kb, true
			}
		}
	}
	return 0, 0, false
}

// Classify определяет форму пары и рецепт.
func Classify(m models.Model, pair Pair) (Merge, error) {
	if pair.A == pair.B {
		return Merge{}, fmt.Errorf("%w: corridor %d paired with itself", ErrClassification, pair.A)
	}
	for _, ic := range []int{pair.A, pair.B} {
		if ic < 0 || ic >= len(m.Corridors) {
			return Merge{}, fmt.Errorf("%w: corridor %d out of range", ErrClassification, ic)
		}
	}

	a, b := m.Corridors[pair.A], m.Corridors[pair.B]
	for _, c := range []models.Corridor{a, b} {
		if n := len(c.Points); n != 2 && n != 3 {
			return Merge{}, fmt.Errorf("%w: corridor with %d points", ErrClassification, n)
		}
	}

	ka, kb, ok := sharedEnds(a, b, pair.Room)
	if !ok {
		return Merge{}, fmt.Errorf("%w: corridors %d and %d share no endpoint", ErrClassification, pair.A, pair.B)
	}
	if a.Joins[1-ka] == b.Joins[1-kb] {
		return Merge{}, fmt.Errorf("%w: corridors %d and %d both join rooms %d and %d",
			ErrClassification, pair.A, pair.B, a.Joins[ka], a.Joins[1-ka])
	}

	mg := Merge{
		Pair:   pair,
		A:      pair.A,
		B:      pair.B,
		AEnd:   ka,
		BEnd:   kb,
		Shared: a.Joins[ka],
	}
	corridor := func(i int) models.Corridor { return m.Corridors[i] }

	switch {
	case a.IsStraight() && b.IsStraight():
		mg.Shape, mg.Recipe = StraightStraight, RecipeStraights
		if shorter(mg.A, a.Length2(), mg.B, b.Length2()) {
			mg.swap()
		}

	case a.IsStraight() != b.IsStraight():
		mg.Shape = ElbowStraight
		if corridor(mg.A).IsElbow() {
			mg.swap()
		}
		straight, elbow := corridor(mg.A), corridor(mg.B)
		// при равенстве короче прямой: иначе перекресток лег бы на его дальнюю комнату
		if !geometry.EssentiallyLess(elbow.NearLeg2(mg.BEnd), straight.Length2()) {
			mg.Recipe = RecipeShortStraight
			mg.swap()
		} else {
			mg.Recipe = RecipeLongStraight
		}

	default:
		mg.Shape = ElbowElbow
		if geometry.Same(a.Points[1], b.Points[1]) {
			mg.Recipe = RecipeTee
			if mg.B < mg.A {
				mg.swap()
			}
			break
		}
		mg.Recipe = RecipeSpur
		if shorter(mg.A, a.NearLeg2(ka), mg.B, b.NearLeg2(kb)) {
			mg.swap()
		}
	}
	return mg, nil
}
