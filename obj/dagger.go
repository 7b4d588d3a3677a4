package obj

import (
	"github.com/Unlucky-Polypus/Survivor/collision"
	"github.com/jakecoffman/cp"
)

// Dagger is a thrown blade travelling in a straight line.
type Dagger struct {
	Weapon
	Vel cp.Vector
}

// DaggerSet owns every dagger in flight.
type DaggerSet struct {
	Params     collision.WeaponHitboxParams
	SizeRatio  float64
	Speed      float64
	DrawOffset cp.Vector
	// Cooldown is the minimum time between throws in seconds.
	Cooldown float64
	// MaxActive caps daggers in flight; zero means unlimited.
	MaxActive int
	// Arena drops daggers whose hitbox leaves it. The zero BB disables culling.
	Arena cp.BB

	tester   *collision.Tester
	daggers  []Dagger
	cooldown float64
}

func NewDaggerSet(params collision.WeaponHitboxParams, sizeRatio, speed float64, tester *collision.Tester) *DaggerSet {
	return &DaggerSet{
		Params:    params,
		SizeRatio: sizeRatio,
		Speed:     speed,
		tester:    tester,
	}
}

// Throw launches a dagger from from toward target. It reports false when the
// throw is on cooldown, the cap is reached, or target is on top of from.
func (d *DaggerSet) Throw(from, target cp.Vector) bool {
	if d.cooldown > 0 {
		return false
	}
	if d.MaxActive > 0 && len(d.daggers) >= d.MaxActive {
		return false
	}
	dir := target.Sub(from)
	if dir.LengthSq() < 1e-12 {
		return false
	}
	dir = dir.Normalize()
	w := NewWeapon(from, dir.ToAngle(), d.SizeRatio, d.Params, d.DrawOffset)
	w.Kind = "dagger"
	w.OwnerID = PlayerID
	w.Tester = d.tester
	d.daggers = append(d.daggers, Dagger{Weapon: w, Vel: dir.Mult(d.Speed)})
	d.cooldown = d.Cooldown
	return true
}

// Update moves every dagger by dt seconds and drops those outside the arena.
func (d *DaggerSet) Update(dt float64) {
	if dt <= 0 {
		return
	}
	if d.cooldown > 0 {
		d.cooldown -= dt
	}
	kept := d.daggers[:0]
	for _, dg := range d.daggers {
		dg.Position = dg.Position.Add(dg.Vel.Mult(dt))
		if d.inArena(&dg) {
			kept = append(kept, dg)
		}
	}
	clear(d.daggers[len(kept):])
	d.daggers = kept
}

func (d *DaggerSet) inArena(dg *Dagger) bool {
	if d.Arena == (cp.BB{}) {
		return true
	}
	hb := dg.Hitbox()
	if hb == nil {
		return false
	}
	return d.Arena.Intersects(hb.Bounds())
}

// CollideWith reports whether any dagger hits hb. The first dagger found is
// consumed; removal does not preserve the order of the rest.
func (d *DaggerSet) CollideWith(hb collision.Hitbox) bool {
	for i := range d.daggers {
		if d.tester.Intersects(hb, d.daggers[i].Hitbox()) {
			last := len(d.daggers) - 1
			d.daggers[i] = d.daggers[last]
			d.daggers[last] = Dagger{}
			d.daggers = d.daggers[:last]
			return true
		}
	}
	return false
}

// Daggers returns the daggers in flight. The slice is only valid until the
// next call that modifies the set.
func (d *DaggerSet) Daggers() []Dagger {
	return d.daggers
}

func (d *DaggerSet) Len() int {
	return len(d.daggers)
}

// Inherit takes over the daggers in flight and the throw cooldown of prev.
// The cooldown never exceeds this set's Cooldown.
func (d *DaggerSet) Inherit(prev *DaggerSet) {
	if prev == nil || prev == d {
		return
	}
	d.daggers = append(d.daggers[:0], prev.daggers...)
	for i := range d.daggers {
		d.daggers[i].Tester = d.tester
	}
	d.cooldown = min(prev.cooldown, d.Cooldown)
}

// Clear drops every dagger and resets the throw cooldown.
func (d *DaggerSet) Clear() {
	clear(d.daggers)
	d.daggers = d.daggers[:0]
	d.cooldown = 0
}
