package flappy

// Sound identifies a fire-and-forget sound effect.
type Sound int

const (
	SoundFlap Sound = iota
	SoundScore
	SoundHit
	SoundBest
)

// Sounder plays sound effects. Implementations must return immediately
// and swallow their own failures; the game never waits on audio.
type Sounder interface {
	Play(s Sound)
}
