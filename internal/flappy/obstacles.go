package flappy

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/flappy-tui/internal/config"
	"github.com/vovakirdan/flappy-tui/internal/core"
)

// Obstacle is a single pipe pair: two columns spanning the full screen
// height except for a gap starting at GapY. X is the left edge and
// scrolls left each tick; the body never moves horizontally.
type Obstacle struct {
	ID        int
	X         float64
	GapY      float64
	GapHeight float64
	Scored    bool
}

// Field owns the scrolling obstacle collection. Obstacles are stored
// oldest first; generation appends at the right screen edge.
type Field struct {
	obstacles []Obstacle
	rng       *rand.Rand
	canvasW   float64
	canvasH   float64
	cfg       *config.Config
	diff      *config.DifficultyManager
	nextID    int
}

// NewField creates an obstacle field for the given screen size. It fails
// when the screen cannot fit the configured gap between its margins, so
// a degenerate setup is caught before the first spawn instead of
// producing out-of-range gaps.
func NewField(seed int64, screenW, screenH int, cfg *config.Config, diff *config.DifficultyManager) (*Field, error) {
	f := &Field{
		rng:     rand.New(rand.NewSource(seed)),
		canvasW: float64(screenW),
		canvasH: float64(screenH),
		cfg:     cfg,
		diff:    diff,
	}
	minY, maxY := f.gapRange(float64(cfg.Obstacles.GapHeight))
	if maxY < minY {
		return nil, fmt.Errorf("flappy: screen height %d cannot fit gap %d between margins %d and %d",
			screenH, cfg.Obstacles.GapHeight, cfg.Obstacles.TopMargin, cfg.Obstacles.BottomMargin)
	}
	return f, nil
}

// gapRange returns the inclusive range of valid gap-top positions: the
// gap must clear the top margin, and the gap bottom must clear both the
// bottom margin and the ground band.
func (f *Field) gapRange(gapH float64) (minY, maxY float64) {
	minY = float64(f.cfg.Obstacles.TopMargin)
	maxY = f.canvasH - float64(f.cfg.Obstacles.BottomMargin) - float64(f.cfg.World.GroundHeight) - gapH
	return minY, maxY
}

// Generate appends a new obstacle at the right screen edge with a
// uniformly random gap position. Score and ticks feed the difficulty
// progression; with a fixed preset they are ignored.
func (f *Field) Generate(score, ticks int) {
	gapH := float64(f.diff.GapHeight(f.cfg.Obstacles.GapHeight, score, ticks))
	minY, maxY := f.gapRange(gapH)
	gapY := minY + f.rng.Float64()*(maxY-minY)

	f.nextID++
	f.obstacles = append(f.obstacles, Obstacle{
		ID:        f.nextID,
		X:         f.canvasW,
		GapY:      gapY,
		GapHeight: gapH,
	})
}

// Advance runs one scroll tick: move every obstacle left, drop the ones
// fully past the left edge, then spawn a new obstacle if the newest one
// has scrolled far enough in. Removal runs before the spacing check so
// a just-removed obstacle never counts toward spacing.
func (f *Field) Advance(score, ticks int) {
	f.move(f.diff.Speed(f.cfg.Physics.BaseSpeed, score, ticks))
	f.removeOffscreen()

	spacing := float64(f.diff.Spacing(f.cfg.Obstacles.PipeSpacing, score, ticks))
	if len(f.obstacles) == 0 || f.obstacles[len(f.obstacles)-1].X < f.canvasW-spacing {
		f.Generate(score, ticks)
	}
}

// Drift moves and prunes obstacles without spawning. The menu uses it so
// decorative obstacles scroll by at base speed and disappear.
func (f *Field) Drift() {
	f.move(f.cfg.Physics.BaseSpeed)
	f.removeOffscreen()
}

func (f *Field) move(speed float64) {
	for i := range f.obstacles {
		f.obstacles[i].X -= speed
	}
}

// removeOffscreen drops obstacles whose right edge has moved past the
// left canvas edge, along with their scored bookkeeping.
func (f *Field) removeOffscreen() {
	width := float64(f.cfg.Obstacles.PipeWidth)
	kept := f.obstacles[:0]
	for _, o := range f.obstacles {
		if o.X+width >= 0 {
			kept = append(kept, o)
		}
	}
	f.obstacles = kept
}

// CollidesWith reports whether the box hits any obstacle: horizontal
// overlap with the column, and vertically outside the gap. Returns on
// the first hit.
func (f *Field) CollidesWith(box core.RectF) bool {
	width := float64(f.cfg.Obstacles.PipeWidth)
	for _, o := range f.obstacles {
		if box.Right() <= o.X || box.X >= o.X+width {
			continue
		}
		if box.Y < o.GapY || box.Bottom() > o.GapY+o.GapHeight {
			return true
		}
	}
	return false
}

// CheckScore marks and reports the first unscored obstacle whose right
// edge has passed bodyX. At most one obstacle scores per call; if a
// tick somehow passes two, the second scores on the next call.
func (f *Field) CheckScore(bodyX float64) bool {
	width := float64(f.cfg.Obstacles.PipeWidth)
	for i := range f.obstacles {
		if f.obstacles[i].Scored {
			continue
		}
		if f.obstacles[i].X+width < bodyX {
			f.obstacles[i].Scored = true
			return true
		}
	}
	return false
}

// NextAhead returns the first obstacle whose right edge is still at or
// ahead of bodyX, in storage order. ok is false when none qualifies.
func (f *Field) NextAhead(bodyX float64) (o Obstacle, ok bool) {
	width := float64(f.cfg.Obstacles.PipeWidth)
	for _, cand := range f.obstacles {
		if cand.X+width >= bodyX {
			return cand, true
		}
	}
	return Obstacle{}, false
}

// Reset clears all obstacles. The random stream is left untouched so a
// mid-session restart continues the same seeded sequence.
func (f *Field) Reset() {
	f.obstacles = f.obstacles[:0]
}
