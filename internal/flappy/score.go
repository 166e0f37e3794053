package flappy

import (
	"strconv"
	"strings"
)

// Storage keys for the persisted counters. Exported so stats surfaces
// can read the same records the game writes.
const (
	BestScoreKey   = "flappy.best_score"
	GamesPlayedKey = "flappy.games_played"
)

// Persister is the minimal key/value surface the score keeper needs.
// *storage.Store satisfies it; tests substitute fakes. Both writes keep
// the stored value consistent under concurrent sessions sharing one
// store: SetMax never lowers it and Add never drops an increment.
type Persister interface {
	Get(key string) (value string, ok bool, err error)
	SetMax(key string, v int) error
	Add(key string, delta int) (total int, err error)
}

// ScoreKeeper tracks the running score and the all-time best. The best
// is updated and persisted synchronously inside Increment, so it is
// already current if the run ends on the same tick. Persistence failures
// degrade silently to in-memory values; gameplay never stops for a
// broken store.
type ScoreKeeper struct {
	current int
	best    int
	games   int
	store   Persister // nil means in-memory only
}

// NewScoreKeeper creates a score keeper backed by store. A nil store is
// valid and keeps everything in memory.
func NewScoreKeeper(store Persister) *ScoreKeeper {
	s := &ScoreKeeper{store: store}
	s.best = s.loadCounter(BestScoreKey)
	s.games = s.loadCounter(GamesPlayedKey)
	return s
}

// loadCounter reads a non-negative integer from the store. Missing keys,
// read errors, and garbage values all load as zero.
func (s *ScoreKeeper) loadCounter(key string) int {
	if s.store == nil {
		return 0
	}
	raw, ok, err := s.store.Get(key)
	if err != nil || !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Increment adds one to the current score. If that beats the best, the
// best is updated immediately and written through to the store. The
// write is a monotone max, so a higher best persisted by another
// session stays intact.
func (s *ScoreKeeper) Increment() {
	s.current++
	if s.current > s.best {
		s.best = s.current
		if s.store != nil {
			// Write failures leave the in-memory value authoritative.
			_ = s.store.SetMax(BestScoreKey, s.best)
		}
	}
}

// IsNewBest reports whether the current run is a record: strictly above
// the best, or tied with it at a non-zero score. The tie case covers a
// best that Increment already raised to the current score this run; a
// scoreless run is never a record.
func (s *ScoreKeeper) IsNewBest() bool {
	if s.current > s.best {
		return true
	}
	return s.current == s.best && s.current > 0
}

// RecordGame adds one finished run to the games-played counter. The
// store does the addition, so runs finished by other sessions sharing
// it are counted too; the in-memory counter adopts the stored total.
func (s *ScoreKeeper) RecordGame() {
	s.games++
	if s.store == nil {
		return
	}
	total, err := s.store.Add(GamesPlayedKey, 1)
	if err != nil {
		// Write failures leave the in-memory count authoritative.
		return
	}
	s.games = total
}

// Reset zeroes the current score. Best and games played survive.
func (s *ScoreKeeper) Reset() {
	s.current = 0
}

// Current returns the running score.
func (s *ScoreKeeper) Current() int { return s.current }

// Best returns the all-time best score.
func (s *ScoreKeeper) Best() int { return s.best }

// Games returns the number of finished runs.
func (s *ScoreKeeper) Games() int { return s.games }
