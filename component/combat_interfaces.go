package component

// HealthComponent exposes health operations for combat systems.
type HealthComponent interface {
	IsAlive() bool
	ApplyDamage(amount int, evt CombatEvent) bool
	StartIFrames(frames int)
	Tick()
	CurrentHP() int
	MaxHP() int
}

// DamageDealerComponent exposes the hitboxes an entity attacks with.
type DamageDealerComponent interface {
	Hitboxes() []Hitbox
}

// HurtboxComponent exposes defensive collision data.
type HurtboxComponent interface {
	Hurtboxes() []Hurtbox
	CanBeHit() bool
}
