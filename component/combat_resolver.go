package component

import (
	"github.com/Unlucky-Polypus/Survivor/collision"
	"go.uber.org/zap"
)

type hitKey struct {
	HitboxID string
	OwnerID  int
	TargetID int
}

// highlightFrames is how long a resolved hit stays in Recent.
const highlightFrames = 6

// CombatResolver applies damage between hitboxes and hurtboxes.
type CombatResolver struct {
	Emitter *CombatEventEmitter

	tester   *collision.Tester
	log      *zap.Logger
	frame    int
	lastHits map[hitKey]int
	// Recent holds collisions applied in the last few frames for debug drawing.
	Recent []CollisionRecord
}

// CollisionRecord stores a recent collision pair for debug highlighting.
type CollisionRecord struct {
	Hit        collision.Hitbox
	Hurt       collision.Hitbox
	FramesLeft int
}

// NewCombatResolver creates a resolver that logs through log.
func NewCombatResolver(log *zap.Logger) *CombatResolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &CombatResolver{
		tester:   collision.NewTester(log),
		log:      log.Named("combat"),
		lastHits: make(map[hitKey]int),
	}
}

// Tick advances the frame counter and expires highlight records. Call once
// per game frame.
func (r *CombatResolver) Tick() {
	if r == nil {
		return
	}
	r.frame++
	out := r.Recent[:0]
	for _, rec := range r.Recent {
		rec.FramesLeft--
		if rec.FramesLeft > 0 {
			out = append(out, rec)
		}
	}
	r.Recent = out
}

// Frame returns the number of ticks so far.
func (r *CombatResolver) Frame() int {
	if r == nil {
		return 0
	}
	return r.frame
}

// Resolve applies combat between a single damage dealer and hurtbox owner.
// Returns true if any damage was applied.
func (r *CombatResolver) Resolve(dealer DamageDealerComponent, target HurtboxComponent, health HealthComponent) bool {
	if r == nil || dealer == nil || target == nil || health == nil {
		return false
	}
	if !target.CanBeHit() || !health.IsAlive() {
		return false
	}

	dealing := dealer.Hitboxes()
	receiving := target.Hurtboxes()
	if len(dealing) == 0 || len(receiving) == 0 {
		return false
	}

	applied := false
	for _, hb := range dealing {
		if !hb.Active {
			continue
		}
		for _, hu := range receiving {
			if !hu.Enabled {
				continue
			}
			if hb.OwnerID == hu.OwnerID {
				continue
			}
			if !factionCanHit(hb.Damage.Faction, hu.Faction) {
				continue
			}
			if !r.tester.Intersects(hb.Shape, hu.Shape) {
				continue
			}

			evt := CombatEvent{
				Type:       EventHit,
				AttackerID: hb.OwnerID,
				TargetID:   hu.OwnerID,
				Damage:     hb.Damage.Amount,
				HitboxID:   hb.ID,
				Frame:      r.frame,
				Pos:        shapeCenter(hu.Shape),
			}
			r.Emitter.Emit(evt)

			if r.isOnCooldown(hb, hu) {
				continue
			}

			if health.ApplyDamage(hb.Damage.Amount, evt) {
				applied = true
				r.markHit(hb, hu)
				r.Recent = append(r.Recent, CollisionRecord{Hit: hb.Shape, Hurt: hu.Shape, FramesLeft: highlightFrames})
				if hb.Damage.IFrameFrames > 0 {
					health.StartIFrames(hb.Damage.IFrameFrames)
				}
				r.log.Debug("damage applied",
					zap.String("hitbox", hb.ID),
					zap.Int("attacker", hb.OwnerID),
					zap.Int("target", hu.OwnerID),
					zap.Int("hp", health.CurrentHP()),
				)
				evt.Type = EventDamageApplied
				r.Emitter.Emit(evt)
				if !health.IsAlive() {
					evt.Type = EventDeath
					r.Emitter.Emit(evt)
				}
				if !hb.Damage.MultiHit {
					break
				}
			}
		}
	}
	return applied
}

func (r *CombatResolver) isOnCooldown(hb Hitbox, hu Hurtbox) bool {
	if hb.Damage.MultiHit {
		return false
	}
	if hb.Damage.CooldownFrames <= 0 {
		return false
	}
	if r.lastHits == nil {
		r.lastHits = make(map[hitKey]int)
	}
	key := hitKey{HitboxID: hb.ID, OwnerID: hb.OwnerID, TargetID: hu.OwnerID}
	last, ok := r.lastHits[key]
	if !ok {
		return false
	}
	return (r.frame - last) < hb.Damage.CooldownFrames
}

func (r *CombatResolver) markHit(hb Hitbox, hu Hurtbox) {
	if r.lastHits == nil {
		r.lastHits = make(map[hitKey]int)
	}
	key := hitKey{HitboxID: hb.ID, OwnerID: hb.OwnerID, TargetID: hu.OwnerID}
	r.lastHits[key] = r.frame
}

// Forget drops cooldown bookkeeping for an owner that left the world.
func (r *CombatResolver) Forget(ownerID int) {
	if r == nil {
		return
	}
	for k := range r.lastHits {
		if k.OwnerID == ownerID || k.TargetID == ownerID {
			delete(r.lastHits, k)
		}
	}
}

func factionCanHit(attacker Faction, target Faction) bool {
	if attacker == FactionNeutral || target == FactionNeutral {
		return true
	}
	return attacker != target
}
