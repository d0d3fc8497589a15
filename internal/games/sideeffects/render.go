package sideeffects

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/side-effects/internal/core"
	"github.com/vovakirdan/side-effects/internal/physics"
	"github.com/vovakirdan/side-effects/internal/session"
	"github.com/vovakirdan/side-effects/internal/sides"
)

// Ball and area colors, by ball type.
var typeColors = [session.BallTypeCount]core.Color{
	session.BallA: core.ColorRed,
	session.BallB: core.ColorGreen,
	session.BallC: core.ColorCyan,
	session.BallD: core.ColorYellow,
}

// SideColor returns the color a side type is drawn in.
func SideColor(t sides.Type) core.Color {
	switch t {
	case sides.SpeedUp:
		return core.ColorBrightYellow
	case sides.FreezeOthers:
		return core.ColorBrightCyan
	case sides.BounceBackwards:
		return core.ColorMagenta
	case sides.Destroy:
		return core.ColorBrightRed
	case sides.Duplicate:
		return core.ColorBrightGreen
	case sides.ResizeScoreAreas:
		return core.ColorBrightBlue
	case sides.ExtremeBounce:
		return core.ColorOrange
	case sides.ExtraPoints:
		return core.ColorBrightMagenta
	default:
		return core.ColorWhite
	}
}

// viewport maps world coordinates onto screen cells. Cells are about twice
// as tall as they are wide, so x is scaled twice as much as y.
type viewport struct {
	cx, cy float64 // Screen position of the world origin
	sx, sy float64 // Cells per world unit
}

func newViewport(w, h int, halfSize float64) viewport {
	rows := float64(h - 2) // HUD above, legend below
	sy := rows / (2*halfSize + 1)
	sx := 2 * sy
	if maxSX := float64(w) / (2*halfSize + 1); sx > maxSX {
		sx = maxSX
		sy = sx / 2
	}
	return viewport{
		cx: float64(w) / 2,
		cy: 1 + rows/2,
		sx: sx,
		sy: sy,
	}
}

func (v viewport) toScreen(p core.Vec2) (int, int) {
	return int(math.Floor(v.cx + p.X*v.sx)), int(math.Floor(v.cy - p.Y*v.sy))
}

func (v viewport) toWorld(x, y int) core.Vec2 {
	return core.V((float64(x)+0.5-v.cx)/v.sx, (v.cy-float64(y)-0.5)/v.sy)
}

// Render draws the level into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil || dst.Height() < 5 {
		return
	}

	half := g.world.Config().HalfSize
	vp := newViewport(dst.Width(), dst.Height(), half)

	g.drawAreas(dst, vp)
	g.drawArena(dst, vp, half)
	g.drawPlayer(dst, vp)
	g.drawBalls(dst, vp)
	g.drawHUD(dst)
	g.drawLegend(dst)

	if g.paused {
		dimScreen(dst)
		dst.DrawTextCentered(dst.Height()/2, " PAUSED ")
	}
}

func dimScreen(dst *core.Screen) {
	for y := range dst.Height() {
		for x := range dst.Width() {
			c := dst.GetCell(x, y)
			dst.SetWithColor(x, y, c.Rune, c.Color.Dim())
		}
	}
}

func (g *Game) drawArena(dst *core.Screen, vp viewport, half float64) {
	x0, y0 := vp.toScreen(core.V(-half, half))
	x1, y1 := vp.toScreen(core.V(half, -half))
	dst.DrawBox(core.NewRect(x0, y0, x1-x0+1, y1-y0+1), core.ColorGray)
}

func (g *Game) drawAreas(dst *core.Screen, vp viewport) {
	now := g.session.Now()
	for _, a := range g.session.ScoreAreas() {
		center := g.world.Position(a.Entity)
		color := typeColors[a.Target]
		glyph := '░'
		if a.Resize != nil {
			glyph = '▒'
		}
		if a.Flash != nil && a.Flash.Progress(now) < 1 {
			glyph = '▓'
			color = core.ColorBrightRed
			if a.Flash.Good {
				color = core.ColorBrightGreen
			}
		}
		fillCircle(dst, vp, center, a.Radius, glyph, color)

		// Label the area at its innermost point.
		label := center.Scale(1 - (a.Radius*0.5)/center.Len())
		x, y := vp.toScreen(label)
		dst.SetWithColor(x, y, rune('A'+int(a.Target)), color.Bright())
	}
}

func fillCircle(dst *core.Screen, vp viewport, center core.Vec2, radius float64, glyph rune, color core.Color) {
	x0, y0 := vp.toScreen(center.Add(core.V(-radius, radius)))
	x1, y1 := vp.toScreen(center.Add(core.V(radius, -radius)))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if vp.toWorld(x, y).Dist(center) <= radius {
				dst.SetWithColor(x, y, glyph, color)
			}
		}
	}
}

func (g *Game) drawPlayer(dst *core.Screen, vp viewport) {
	p := g.world.Player()
	cfg := g.session.SideConfig()
	for id := sides.ID(0); id < sides.Count; id++ {
		a, b := p.Side(id)
		color := SideColor(cfg.Get(id))
		steps := int(math.Ceil(a.Dist(b)*vp.sx)) * 2
		for i := 0; i <= steps; i++ {
			pt := a.Add(b.Sub(a).Scale(float64(i) / float64(max(steps, 1))))
			x, y := vp.toScreen(pt)
			dst.SetWithColor(x, y, '█', color)
		}
		mx, my := vp.toScreen(a.Add(b).Scale(0.5))
		dst.SetWithColor(mx, my, rune('0'+int(id)), color)
	}
}

func (g *Game) drawBalls(dst *core.Screen, vp viewport) {
	for _, b := range g.session.Balls() {
		x, y := vp.toScreen(g.world.Position(b.Entity))
		glyph, color := '●', typeColors[b.Type]
		if b.Upgraded {
			glyph, color = '◉', color.Bright()
		}
		if b.IsFrozen() {
			glyph = '*'
		}
		dst.SetWithColor(x, y, glyph, color)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	lvl := g.session.Level()
	hud := fmt.Sprintf(" LEVEL %d   SCORE %d / %d   TIME %s ", lvl.ID, g.session.Score(), lvl.MinScore, g.session.RemainingText())
	color := core.ColorBrightWhite
	if g.session.Passed() {
		color = core.ColorBrightGreen
	}
	dst.DrawTextColor((dst.Width()-len(hud))/2, 0, hud, color)
}

func (g *Game) drawLegend(dst *core.Screen) {
	cfg := g.session.SideConfig()
	var parts []string
	for id := sides.ID(0); id < sides.Count; id++ {
		parts = append(parts, fmt.Sprintf("%d:%s", id, cfg.Get(id).Name()))
	}
	legend := strings.Join(parts, "  ")
	dst.DrawTextColor(max((dst.Width()-len(legend))/2, 0), dst.Height()-1, legend, core.ColorGray)
}

// Viewport exposes the world-to-screen mapping for a screen size.
func Viewport(w, h int, cfg physics.Config) func(core.Vec2) (int, int) {
	return newViewport(w, h, cfg.HalfSize).toScreen
}
