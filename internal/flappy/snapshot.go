package flappy

// Snapshot captures the complete simulation state for determinism
// testing. Uses primitive types only; floats are scaled to ints for
// stable comparison.
type Snapshot struct {
	Tick    uint64
	Phase   string
	Score   int
	Best    int
	BodyY   int // position scaled by 1000
	BodyVel int // velocity scaled by 1000
	BodyRot int // rotation scaled by 1000

	Collided bool

	// Obstacle state (each obstacle is 5 ints: ID, X, GapY, GapHeight
	// scaled by 1000, Scored)
	ObstacleCount int
	ObstacleData  []int
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:  uint64(max(0, g.tickCount)),
		Phase: g.phase.String(),
		Score: g.score.Current(),
		Best:  g.score.Best(),
	}
	if g.body != nil {
		snap.BodyY = int(g.body.Y() * 1000)
		snap.BodyVel = int(g.body.Velocity() * 1000)
		snap.BodyRot = int(g.body.Rotation() * 1000)
	}
	snap.Collided = g.collided

	if g.field != nil {
		snap.ObstacleCount = len(g.field.obstacles)
		snap.ObstacleData = make([]int, 0, len(g.field.obstacles)*5)
		for _, o := range g.field.obstacles {
			scored := 0
			if o.Scored {
				scored = 1
			}
			snap.ObstacleData = append(snap.ObstacleData,
				o.ID, int(o.X*1000), int(o.GapY*1000), int(o.GapHeight*1000), scored)
		}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, r := range snap.Phase {
		h = h*31 + uint64(r)
	}
	h = h*31 + uint64(snap.Score)
	h = h*31 + uint64(snap.Best)
	h = h*31 + uint64(snap.BodyY)
	h = h*31 + uint64(snap.BodyVel)
	h = h*31 + uint64(snap.BodyRot)
	if snap.Collided {
		h = h*31 + 1
	} else {
		h = h * 31
	}
	h = h*31 + uint64(snap.ObstacleCount)
	for _, v := range snap.ObstacleData {
		h = h*31 + uint64(v)
	}
	return h
}
