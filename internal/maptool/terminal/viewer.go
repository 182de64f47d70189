package terminal

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"maptool/internal/maptool/geometry"
	"maptool/internal/maptool/intersections"
	"maptool/internal/maptool/models"
)

// ============================================================
// Viewer
// ============================================================

const (
	// ячейка терминала примерно вдвое выше своей ширины
	cellAspect = 2
	panCells   = 4
	zoomStep   = 1.5
	statusRows = 1
	// масштаб держится в пределах fit/zoomLimit .. fit*zoomLimit
	zoomLimit = 1e3
)

var (
	styleMain         = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleSecondary    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleIntersection = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleCorridor     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleEntangled    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleStatus       = tcell.StyleDefault.Reverse(true)
)

// Viewer рисует модель карты в терминале. Масштаб: единиц карты на колонку.
type Viewer struct {
	screen tcell.Screen
	model  *models.Model

	center        geometry.Point
	scale         float64
	fitScale      float64
	showEntangled bool
	entangled     int
}

func NewViewer(screen tcell.Screen, m *models.Model) *Viewer {
	v := &Viewer{screen: screen, model: m}
	v.entangled = intersections.MarkEntangled(m)
	v.Fit()
	return v
}

func (v *Viewer) Scale() float64 { return v.scale }

func (v *Viewer) Center() geometry.Point { return v.center }

func (v *Viewer) ShowEntangled() bool { return v.showEntangled }

// Fit подбирает центр и масштаб так, чтобы карта целиком влезла в экран.
func (v *Viewer) Fit() {
	w, h := v.screen.Size()
	cols := float64(max(w-2, 1))
	rows := float64(max(h-statusRows-2, 1))

	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64
	for _, r := range v.model.Rooms {
		b := r.Box()
		minX, minY = math.Min(minX, b.TL.X), math.Min(minY, b.TL.Y)
		maxX, maxY = math.Max(maxX, b.BR.X), math.Max(maxY, b.BR.Y)
	}
	if minX > maxX {
		v.center, v.scale, v.fitScale = geometry.Point{}, 1, 1
		return
	}

	v.center = geometry.Pt((minX+maxX)/2, (minY+maxY)/2)
	v.scale = math.Max((maxX-minX)/cols, (maxY-minY)/(rows*cellAspect))
	if v.scale <= 0 {
		v.scale = 1
	}
	v.fitScale = v.scale
}

func (v *Viewer) zoom(factor float64) {
	v.scale = math.Min(math.Max(v.scale*factor, v.fitScale/zoomLimit), v.fitScale*zoomLimit)
}

// screenPoint переводит точку карты в дробные координаты экрана.
func (v *Viewer) screenPoint(p geometry.Point) (float64, float64) {
	w, h := v.screen.Size()
	x := (p.X-v.center.X)/v.scale + float64(w/2)
	y := (p.Y-v.center.Y)/(v.scale*cellAspect) + float64((h-statusRows)/2)
	return x, y
}

// cell округляет координату и прижимает ее к полю [-1, n]: все, что за
// краем, рисуется за экраном и отбрасывается в set.
func cell(f float64, n int) int {
	return int(math.Round(math.Min(math.Max(f, -1), float64(n))))
}

// toScreen переводит точку карты в ячейку экрана.
func (v *Viewer) toScreen(p geometry.Point) (int, int) {
	w, h := v.screen.Size()
	x, y := v.screenPoint(p)
	return cell(x, w), cell(y, h-statusRows)
}

func (v *Viewer) set(x, y int, r rune, style tcell.Style) {
	w, h := v.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h-statusRows {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

// ============================================================
// Drawing
// ============================================================

func (v *Viewer) Draw() {
	v.screen.Clear()

	for _, c := range v.model.Corridors {
		style := styleCorridor
		if v.showEntangled && c.IsEntangled() {
			style = styleEntangled
		}
		for i := 1; i < len(c.Points); i++ {
			v.drawSegment(c.Points[i-1], c.Points[i], style)
		}
	}

	for _, r := range v.model.Rooms {
		switch {
		case r.IsIntersection:
			x, y := v.toScreen(r.Center)
			v.set(x, y, '*', styleIntersection)
		case r.IsMain:
			v.drawBox(r.Box(), styleMain)
		default:
			v.drawBox(r.Box(), styleSecondary)
		}
	}

	v.drawStatus()
	v.screen.Show()
}

func (v *Viewer) drawSegment(a, b geometry.Point, style tcell.Style) {
	w, h := v.screen.Size()
	ax, ay := v.screenPoint(a)
	bx, by := v.screenPoint(b)
	ax, ay, bx, by, ok := clip(ax, ay, bx, by, -1, -1, float64(w), float64(h-statusRows))
	if !ok {
		return
	}
	x0, y0 := cell(ax, w), cell(ay, h-statusRows)
	x1, y1 := cell(bx, w), cell(by, h-statusRows)

	steps := max(abs(x1-x0), abs(y1-y0))
	ch := '─'
	if abs(y1-y0) > abs(x1-x0) {
		ch = '│'
	}
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		x := x0 + int(math.Round(float64(x1-x0)*t))
		y := y0 + int(math.Round(float64(y1-y0)*t))
		v.set(x, y, ch, style)
	}
}

// clip обрезает отрезок прямоугольником (Лян-Барски).
func clip(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func (v *Viewer) drawBox(b geometry.Box, style tcell.Style) {
	x0, y0 := v.toScreen(b.TL)
	x1, y1 := v.toScreen(b.BR)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	for x := x0 + 1; x < x1; x++ {
		v.set(x, y0, '─', style)
		v.set(x, y1, '─', style)
	}
	for y := y0 + 1; y < y1; y++ {
		v.set(x0, y, '│', style)
		v.set(x1, y, '│', style)
	}
	v.set(x0, y0, '┌', style)
	v.set(x1, y0, '┐', style)
	v.set(x0, y1, '└', style)
	v.set(x1, y1, '┘', style)
}

// StatusLine текст нижней строки.
func (v *Viewer) StatusLine() string {
	mode := "off"
	if v.showEntangled {
		mode = "on"
	}
	return fmt.Sprintf(" rooms %d  corridors %d  intersections %d  entangled %d [e:%s]  scale %.2f  arrows pan  +/- zoom  f fit  q quit",
		len(v.model.Rooms), len(v.model.Corridors), v.model.Intersections(), v.entangled, mode, v.scale)
}

func (v *Viewer) drawStatus() {
	w, h := v.screen.Size()
	line := []rune(v.StatusLine())
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(line) {
			r = line[x]
		}
		v.screen.SetContent(x, h-1, r, nil, styleStatus)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ============================================================
// Input
// ============================================================

// HandleEvent применяет событие. false означает выход.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.center.X -= panCells * v.scale
		case tcell.KeyRight:
			v.center.X += panCells * v.scale
		case tcell.KeyUp:
			v.center.Y -= panCells * v.scale * cellAspect
		case tcell.KeyDown:
			v.center.Y += panCells * v.scale * cellAspect
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case '+', '=':
				v.zoom(1 / zoomStep)
			case '-', '_':
				v.zoom(zoomStep)
			case 'e':
				v.showEntangled = !v.showEntangled
			case 'f':
				v.Fit()
			}
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}

	return true
}

// Run обрабатывает события до выхода.
func (v *Viewer) Run() {
	v.Draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		if !v.HandleEvent(ev) {
			return
		}
		v.Draw()
	}
}
