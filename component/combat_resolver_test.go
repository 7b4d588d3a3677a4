package component

import (
	"testing"

	"github.com/Unlucky-Polypus/Survivor/collision"
	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"
)

type dealer []Hitbox

func (d dealer) Hitboxes() []Hitbox { return d }

type target struct {
	boxes []Hurtbox
	open  bool
}

func (t target) Hurtboxes() []Hurtbox { return t.boxes }
func (t target) CanBeHit() bool       { return t.open }

func square(x, y float64) collision.OBB {
	return collision.OBB{Center: cp.Vector{X: x, Y: y}, Half: cp.Vector{X: 5, Y: 5}}
}

func enemyContact(x, y float64, cooldown int) dealer {
	return dealer{{
		ID:      "body",
		Shape:   square(x, y),
		Active:  true,
		OwnerID: 2,
		Damage:  Damage{Amount: 1, Faction: FactionEnemy, CooldownFrames: cooldown},
	}}
}

func playerTarget() target {
	return target{open: true, boxes: []Hurtbox{{ID: "body", Shape: square(0, 0), Faction: FactionPlayer, Enabled: true, OwnerID: 1}}}
}

func TestResolveAppliesDamageOnOverlap(t *testing.T) {
	r := NewCombatResolver(nil)
	var events []CombatEventType
	r.Emitter = &CombatEventEmitter{}
	r.Emitter.Subscribe(func(evt CombatEvent) { events = append(events, evt.Type) })

	h := NewHealth(1)
	require.True(t, r.Resolve(enemyContact(8, 0, 0), playerTarget(), h))
	require.Equal(t, []CombatEventType{EventHit, EventDamageApplied, EventDeath}, events)
	require.Len(t, r.Recent, 1)
}

func TestResolveSkipsMisses(t *testing.T) {
	r := NewCombatResolver(nil)
	h := NewHealth(3)

	cases := []struct {
		name   string
		dealer dealer
		target target
	}{
		{"apart", enemyContact(20, 0, 0), playerTarget()},
		{"target_closed", enemyContact(0, 0, 0), target{boxes: playerTarget().boxes}},
		{"same_faction", dealer{{Shape: square(0, 0), Active: true, OwnerID: 2, Damage: Damage{Amount: 1, Faction: FactionPlayer}}}, playerTarget()},
		{"same_owner", dealer{{Shape: square(0, 0), Active: true, OwnerID: 1, Damage: Damage{Amount: 1, Faction: FactionEnemy}}}, playerTarget()},
		{"inactive", dealer{{Shape: square(0, 0), OwnerID: 2, Damage: Damage{Amount: 1, Faction: FactionEnemy}}}, playerTarget()},
		{"nil_shape", dealer{{Active: true, OwnerID: 2, Damage: Damage{Amount: 1, Faction: FactionEnemy}}}, playerTarget()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.False(t, r.Resolve(c.dealer, c.target, h))
			require.Equal(t, 3, h.CurrentHP())
		})
	}
}

func TestResolveCooldownAndIFrames(t *testing.T) {
	r := NewCombatResolver(nil)
	h := NewHealth(10)
	d := enemyContact(0, 0, 3)

	require.True(t, r.Resolve(d, playerTarget(), h))
	r.Tick()
	require.False(t, r.Resolve(d, playerTarget(), h), "cooldown")
	r.Tick()
	r.Tick()
	require.True(t, r.Resolve(d, playerTarget(), h))
	require.Equal(t, 8, h.CurrentHP())

	d[0].Damage.CooldownFrames = 0
	d[0].Damage.IFrameFrames = 2
	require.True(t, r.Resolve(d, playerTarget(), h))
	require.False(t, r.Resolve(d, playerTarget(), h), "i-frames")
	h.Tick()
	h.Tick()
	require.True(t, r.Resolve(d, playerTarget(), h))
}

func TestResolverTickExpiresHighlights(t *testing.T) {
	r := NewCombatResolver(nil)
	require.True(t, r.Resolve(enemyContact(0, 0, 0), playerTarget(), NewHealth(5)))
	for i := 0; i < highlightFrames-1; i++ {
		r.Tick()
	}
	require.Len(t, r.Recent, 1)
	r.Tick()
	require.Empty(t, r.Recent)
	require.Equal(t, highlightFrames, r.Frame())
}

func TestResolverForget(t *testing.T) {
	r := NewCombatResolver(nil)
	h := NewHealth(5)
	d := enemyContact(0, 0, 100)
	require.True(t, r.Resolve(d, playerTarget(), h))
	require.False(t, r.Resolve(d, playerTarget(), h))
	r.Forget(2)
	require.True(t, r.Resolve(d, playerTarget(), h))
}
