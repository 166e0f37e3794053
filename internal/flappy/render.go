package flappy

import (
	"fmt"

	"github.com/vovakirdan/flappy-tui/internal/core"
)

// Glyphs used by the renderer.
const (
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
	GroundFill    = '░'
	BodyChar      = '●'
	CrashChar     = '✗'
)

// Render draws the current state. It never mutates the simulation, so
// the host may render any number of times between steps.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.drawCenteredLines(dst, []string{
			"Terminal too small",
			fmt.Sprintf("need at least %dx%d", MinScreenW, MinScreenH),
		})
		return
	}

	g.drawGround(dst)
	g.drawObstacles(dst)

	switch g.phase {
	case PhaseMenu:
		g.drawBody(dst, g.preview)
		g.drawMenu(dst)
	case PhasePlaying:
		g.drawBody(dst, g.body)
		g.drawHUD(dst)
	case PhaseEnded:
		g.drawBody(dst, g.body)
		g.drawHUD(dst)
		g.drawCrashMarker(dst)
		g.drawGameOver(dst)
	}
}

func (g *Game) drawGround(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	floorRow := h - g.cfg.World.GroundHeight
	for x := 0; x < w; x++ {
		dst.SetCell(x, floorRow, GroundChar, core.ColorGray)
		for y := floorRow + 1; y < h; y++ {
			dst.SetCell(x, y, GroundFill, core.ColorGray)
		}
	}
}

// drawObstacles draws each pipe pair as two columns with cap rows at the
// gap edges. The next obstacle ahead of the body gets highlighted caps.
func (g *Game) drawObstacles(dst *core.Screen) {
	floorRow := dst.Height() - g.cfg.World.GroundHeight
	next, hasNext := g.field.NextAhead(g.startX)

	for _, o := range g.field.obstacles {
		capColor := core.ColorBrightGreen
		if hasNext && o.ID == next.ID {
			capColor = core.ColorCyan
		}
		g.drawObstacle(dst, o, floorRow, capColor)
	}
}

func (g *Game) drawObstacle(dst *core.Screen, o Obstacle, floorRow int, capColor core.Color) {
	left := int(o.X)
	gapTop := int(o.GapY)
	gapBottom := int(o.GapY + o.GapHeight)

	for dx := 0; dx < g.cfg.Obstacles.PipeWidth; dx++ {
		x := left + dx

		// Top column, cap on its lowest row.
		for y := 0; y < gapTop; y++ {
			dst.SetCell(x, y, PipeChar, core.ColorGreen)
		}
		if gapTop > 0 {
			dst.SetCell(x, gapTop-1, PipeCapTop, capColor)
		}

		// Bottom column, cap on its highest row.
		for y := gapBottom; y < floorRow; y++ {
			dst.SetCell(x, y, PipeChar, core.ColorGreen)
		}
		if gapBottom < floorRow {
			dst.SetCell(x, gapBottom, PipeCapBottom, capColor)
		}
	}
}

// drawBody draws a body as a block of cells with a head glyph on the
// top-right, tilted by the current rotation.
func (g *Game) drawBody(dst *core.Screen, b *Body) {
	box := b.Bounds().Cells()
	head := '▶'
	switch {
	case b.Rotation() <= -10:
		head = '▲'
	case b.Rotation() >= 45:
		head = '▼'
	}

	for dy := 0; dy < box.H; dy++ {
		for dx := 0; dx < box.W; dx++ {
			dst.SetCell(box.X+dx, box.Y+dy, BodyChar, core.ColorYellow)
		}
	}
	dst.SetCell(box.X+box.W-1, box.Y, head, core.ColorOrange)
}

func (g *Game) drawHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", g.score.Current()), core.ColorBrightWhite)
	dst.DrawTextColored(1, 1, fmt.Sprintf("Best:  %d", g.score.Best()), core.ColorGray)
	if g.diff.IsProgressive() {
		level := g.diff.Level(g.score.Current(), g.tickCount)
		dst.DrawTextColored(1, 2, fmt.Sprintf("Lv: %3.0f%%", level*100), core.ColorGray)
	}
}

func (g *Game) drawMenu(dst *core.Screen) {
	lines := []string{
		"F L A P P Y",
		"",
		"space / up / w / k  flap",
		"enter               start",
		"q                   quit",
	}
	if g.score.Best() > 0 {
		lines = append(lines, "", fmt.Sprintf("best: %d", g.score.Best()))
	}
	g.drawBox(dst, lines, core.ColorBrightYellow)
}

func (g *Game) drawGameOver(dst *core.Screen) {
	lines := []string{
		"G A M E  O V E R",
		"",
		fmt.Sprintf("score: %d", g.score.Current()),
		fmt.Sprintf("best:  %d", g.score.Best()),
	}
	if g.newBest {
		lines = append(lines, "", "NEW BEST!")
	}
	lines = append(lines, "", "r  restart   q  quit")
	g.drawBox(dst, lines, core.ColorBrightWhite)
}

// drawCrashMarker flashes a cross at the recorded collision point.
func (g *Game) drawCrashMarker(dst *core.Screen) {
	if !g.collided || g.tickCount%10 >= 5 {
		return
	}
	dst.SetCell(int(g.collisionX), int(g.collisionY), CrashChar, core.ColorRed)
}

// drawBox draws centered lines inside a rounded border.
func (g *Game) drawBox(dst *core.Screen, lines []string, titleColor core.Color) {
	w, h := dst.Width(), dst.Height()

	inner := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > inner {
			inner = n
		}
	}
	boxW := inner + 4
	boxH := len(lines) + 2
	left := (w - boxW) / 2
	top := (h - boxH) / 2

	for y := top; y < top+boxH; y++ {
		for x := left; x < left+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}
	for x := left + 1; x < left+boxW-1; x++ {
		dst.Set(x, top, '─')
		dst.Set(x, top+boxH-1, '─')
	}
	for y := top + 1; y < top+boxH-1; y++ {
		dst.Set(left, y, '│')
		dst.Set(left+boxW-1, y, '│')
	}
	dst.Set(left, top, '╭')
	dst.Set(left+boxW-1, top, '╮')
	dst.Set(left, top+boxH-1, '╰')
	dst.Set(left+boxW-1, top+boxH-1, '╯')

	for i, l := range lines {
		color := core.ColorWhite
		if i == 0 {
			color = titleColor
		}
		x := left + (boxW-len([]rune(l)))/2
		dst.DrawTextColored(x, top+1+i, l, color)
	}
}

// drawCenteredLines draws bare centered text with no border.
func (g *Game) drawCenteredLines(dst *core.Screen, lines []string) {
	w, h := dst.Width(), dst.Height()
	top := (h - len(lines)) / 2
	for i, l := range lines {
		x := (w - len([]rune(l))) / 2
		dst.DrawText(x, top+i, l)
	}
}
