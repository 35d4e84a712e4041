package brickhole

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/brickhole/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar      = '='
	BallChar        = '●'
	PenetrateChar   = '◉'
	ZoneChar        = '░'
	ZoneCenterChar  = '◎'
	SolidBrickGlyph = '▩'
	SparkChar       = '*'
	FadingSparkChar = '·'
	HeartChar       = '♥'
)

// BrickGlyphs by remaining health (index 0 = health 1).
var BrickGlyphs = []rune{'░', '▒', '▓', '█'}

// Render draws the current state into dst. The top row is the HUD; the rest
// is the arena, one cell per UnitsPerCol x UnitsPerRow world units.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.tooSmall || g.engine == nil {
		g.renderTooSmall(dst)
		return
	}
	snap := g.engine.Snapshot()
	v := viewport{
		upc: g.cfg.Arena.UnitsPerCol,
		upr: g.cfg.Arena.UnitsPerRow,
		top: g.cfg.Arena.HUDRows,
		dst: dst,
	}

	v.drawZone(snap.Zone)
	for _, b := range snap.Bricks {
		v.drawBrick(b)
	}
	for _, p := range snap.PowerUps {
		v.plot(p.X, p.Y, p.Kind.Glyph(), core.ColorBrightYellow)
	}
	for _, p := range snap.Particles {
		ch := SparkChar
		if p.Life < 0.5 {
			ch = FadingSparkChar
		}
		v.plot(p.X, p.Y, ch, p.Color)
	}
	v.drawPaddle(snap.Paddle)
	for _, b := range snap.Balls {
		if b.Penetrating {
			v.plot(b.X, b.Y, PenetrateChar, core.ColorBrightRed)
		} else {
			v.plot(b.X, b.Y, BallChar, snap.BallColor)
		}
	}

	g.renderHUD(dst, snap)
	g.renderOverlay(dst, snap)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	msg := fmt.Sprintf("Terminal too small (need %dx%d)", MinScreenW, MinScreenH)
	dst.DrawTextCenteredColored(dst.Height()/2, msg, core.ColorRed)
	if err := g.Err(); err != nil && !g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2+1, err.Error())
	}
}

func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	hearts := strings.Repeat(string(HeartChar), snap.Lives)
	left := fmt.Sprintf(" Score: %d  Lives: %s  Level %d/%d  Bricks %d",
		snap.Score, hearts, snap.Level, snap.MaxLevel, snap.BricksRemaining())
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)

	var effects []string
	if snap.Paddle.Sticky {
		effects = append(effects, "STICKY")
	}
	if snap.PenetrateLeft > 0 {
		effects = append(effects, fmt.Sprintf("PIERCE %ds", (snap.PenetrateLeft+59)/60))
	}
	right := strings.Join(effects, " ")
	if right != "" {
		dst.DrawTextColored(dst.Width()-len(right)-1, 0, right, core.ColorBrightMagenta)
	}

	if snap.Message != "" {
		dst.DrawTextCenteredColored(dst.Height()/2, snap.Message, core.ColorBrightYellow)
	}
}

func (g *Game) renderOverlay(dst *core.Screen, snap Snapshot) {
	mid := dst.Height() / 2
	switch snap.Phase {
	case PhasePlaying:
		for _, b := range snap.Balls {
			if b.Attached {
				dst.DrawTextCenteredColored(dst.Height()-1, "SPACE or click to launch", core.ColorGray)
				break
			}
		}
	case PhaseLevelTransition:
		dst.DrawTextCenteredColored(mid-1, fmt.Sprintf("LEVEL %d CLEAR!", snap.Level), core.ColorBrightGreen)
		barW := dst.Width() / 3
		filled := int(math.Round(snap.Transition * float64(barW)))
		bar := strings.Repeat("█", filled) + strings.Repeat("░", max(barW-filled, 0))
		dst.DrawTextCenteredColored(mid+1, bar, core.ColorGreen)
	case PhaseWon:
		drawResultBox(dst, mid)
		dst.DrawTextCenteredColored(mid-1, "YOU WIN!", core.ColorBrightYellow)
		dst.DrawTextCentered(mid+1, fmt.Sprintf("Final score: %d", snap.Score))
		dst.DrawTextCenteredColored(mid+3, "ENTER: play again   ESC: menu   Q: quit", core.ColorGray)
	case PhaseGameOver:
		drawResultBox(dst, mid)
		dst.DrawTextCenteredColored(mid-1, "GAME OVER", core.ColorBrightRed)
		dst.DrawTextCentered(mid+1, fmt.Sprintf("Score: %d  (level %d)", snap.Score, snap.Level))
		dst.DrawTextCenteredColored(mid+3, "ENTER: play again   ESC: menu   Q: quit", core.ColorGray)
	}
}

// drawResultBox blanks and frames the area behind the result text.
func drawResultBox(dst *core.Screen, mid int) {
	w := min(44, dst.Width())
	r := core.NewRect((dst.Width()-w)/2, mid-3, w, 8)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r)
}

// viewport maps world units to screen cells.
type viewport struct {
	upc, upr float64
	top      int
	dst      *core.Screen
}

func (v viewport) cell(x, y float64) (col, row int) {
	return int(math.Floor(x / v.upc)), v.top + int(math.Floor(y/v.upr))
}

func (v viewport) plot(x, y float64, ch rune, c core.Color) {
	col, row := v.cell(x, y)
	if row < v.top {
		return
	}
	v.dst.SetColored(col, row, ch, c)
}

func (v viewport) drawBrick(b Brick) {
	ch := SolidBrickGlyph
	if b.Kind == BrickNormal {
		ch = BrickGlyphs[core.Clamp(b.Health, 1, len(BrickGlyphs))-1]
	}
	c0, r0 := v.cell(b.X, b.Y)
	c1, r1 := v.cell(b.X+b.W-0.001, b.Y+b.H-0.001)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			v.dst.SetColored(col, row, ch, b.Color)
		}
	}
}

func (v viewport) drawPaddle(p Paddle) {
	c := core.ColorBrightWhite
	if p.Sticky {
		c = core.ColorBrightGreen
	}
	c0, row := v.cell(p.X, p.Y)
	c1, _ := v.cell(p.Right()-0.001, p.Y)
	for col := c0; col <= c1; col++ {
		v.dst.SetColored(col, row, PaddleChar, c)
	}
}

func (v viewport) drawZone(z Zone) {
	if z.Radius <= 0 {
		return
	}
	c0, r0 := v.cell(z.X-z.Radius, z.Y-z.Radius)
	c1, r1 := v.cell(z.X+z.Radius, z.Y+z.Radius)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			cx := (float64(col) + 0.5) * v.upc
			cy := (float64(row-v.top) + 0.5) * v.upr
			if math.Hypot(cx-z.X, cy-z.Y) <= z.Radius && row >= v.top {
				v.dst.SetColored(col, row, ZoneChar, core.ColorMagenta)
			}
		}
	}
	v.plot(z.X, z.Y, ZoneCenterChar, core.ColorBrightMagenta)
}
