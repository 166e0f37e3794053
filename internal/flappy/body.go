package flappy

import (
	"github.com/vovakirdan/flappy-tui/internal/config"
	"github.com/vovakirdan/flappy-tui/internal/core"
)

// Rotation tuning. The tilt chases velocity*rotationFactor, clamped to
// [rotationMin, rotationMax], closing 10% of the distance per tick.
const (
	rotationFactor = 3.0
	rotationMin    = -30.0
	rotationMax    = 90.0
	rotationEase   = 0.1

	// jumpRotation is the upward tilt snapped to on a flap.
	jumpRotation = -20.0

	// settleDamping scales the reversed velocity on each ground bounce
	// after a crash.
	settleDamping = 0.3
)

// Body is the player-controlled bird. Coordinates are continuous, with
// y growing downward; (x, y) is the center of the hitbox.
type Body struct {
	x, y     float64
	velocity float64
	rotation float64
	w, h     float64

	gravity      float64
	jumpImpulse  float64
	maxFallSpeed float64
}

// NewBody creates a body centered at (x, y) with the given physics.
func NewBody(x, y float64, phys config.Physics, w, h float64) *Body {
	return &Body{
		x: x, y: y,
		w: w, h: h,
		gravity:      phys.Gravity,
		jumpImpulse:  phys.JumpImpulse,
		maxFallSpeed: phys.MaxFallSpeed,
	}
}

// Integrate advances the body by one tick: gravity, terminal velocity,
// position, the y >= 0 ceiling clamp, then rotation easing.
func (b *Body) Integrate() {
	b.velocity += b.gravity
	if b.velocity > b.maxFallSpeed {
		b.velocity = b.maxFallSpeed
	}

	b.y += b.velocity
	if b.y < 0 {
		b.y = 0
		b.velocity = 0
	}

	target := core.ClampF(b.velocity*rotationFactor, rotationMin, rotationMax)
	b.rotation += (target - b.rotation) * rotationEase
}

// ApplyJump overwrites the vertical velocity with the jump impulse and
// snaps the rotation upward. Velocities never accumulate across flaps.
func (b *Body) ApplyJump() {
	b.velocity = b.jumpImpulse
	b.rotation = jumpRotation
}

// Bounds returns the collision box centered on the body's position.
func (b *Body) Bounds() core.RectF {
	return core.NewRectF(b.x-b.w/2, b.y-b.h/2, b.w, b.h)
}

// Grounded reports whether the bottom edge has reached the floor line.
func (b *Body) Grounded(floorY float64) bool {
	return b.Bounds().Bottom() >= floorY
}

// OutOfBounds reports whether the body has fallen entirely below the
// floor line.
func (b *Body) OutOfBounds(floorY float64) bool {
	return b.Bounds().Y > floorY
}

// Reset moves the body to (x, y) and zeroes velocity and rotation.
func (b *Body) Reset(x, y float64) {
	b.x = x
	b.y = y
	b.velocity = 0
	b.rotation = 0
}

// Settle reverses and damps the velocity, producing the decaying bounce
// of a downed body resting on the ground.
func (b *Body) Settle() {
	b.velocity = -b.velocity * settleDamping
}

// ClampToFloor rests the bottom edge exactly on the floor line.
func (b *Body) ClampToFloor(floorY float64) {
	b.y = floorY - b.h/2
}

// Rebound bounces the body off floorY with the given upward velocity.
// Used by the menu preview, which bounces instead of crashing.
func (b *Body) Rebound(floorY, velocity float64) {
	if b.y >= floorY {
		b.y = floorY
		b.velocity = velocity
	}
}

// X returns the horizontal center.
func (b *Body) X() float64 { return b.x }

// Y returns the vertical center.
func (b *Body) Y() float64 { return b.y }

// Velocity returns the current vertical velocity.
func (b *Body) Velocity() float64 { return b.velocity }

// Rotation returns the current tilt in degrees.
func (b *Body) Rotation() float64 { return b.rotation }
