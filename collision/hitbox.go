package collision

import "github.com/jakecoffman/cp"

// Hitbox is the world-space collision region of an entity. It is implemented
// only by OBB and Circle.
type Hitbox interface {
	Validate() error
	Bounds() cp.BB
	isHitbox()
}

func (OBB) isHitbox()    {}
func (Circle) isHitbox() {}

// Collidable is implemented by anything that can be hit. Hitbox is computed
// from the entity's current transform on every call.
type Collidable interface {
	Hitbox() Hitbox
}

// CollidesWithAny reports whether hb intersects any part, stopping at the
// first hit.
func CollidesWithAny(hb Hitbox, parts ...Collidable) bool {
	return defaultTester.CollidesWithAny(hb, parts...)
}

// CollidesWithAny is the logging form of the package-level CollidesWithAny.
// Nil parts are skipped.
func (t *Tester) CollidesWithAny(hb Hitbox, parts ...Collidable) bool {
	for _, p := range parts {
		if p == nil {
			continue
		}
		if t.Intersects(hb, p.Hitbox()) {
			return true
		}
	}
	return false
}
