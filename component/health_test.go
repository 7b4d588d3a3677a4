package component

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealthApplyDamage(t *testing.T) {
	h := NewHealth(3)
	var damaged, died int
	h.OnDamage = func(*Health, CombatEvent) { damaged++ }
	h.OnDeath = func(*Health, CombatEvent) { died++ }

	require.True(t, h.ApplyDamage(1, CombatEvent{}))
	require.Equal(t, 2, h.CurrentHP())

	h.StartIFrames(2)
	require.False(t, h.ApplyDamage(1, CombatEvent{}), "i-frames block damage")
	h.Tick()
	h.Tick()
	require.True(t, h.ApplyDamage(5, CombatEvent{}))
	require.Zero(t, h.CurrentHP())
	require.False(t, h.IsAlive())
	require.False(t, h.ApplyDamage(1, CombatEvent{}), "dead entities take no damage")

	require.Equal(t, 2, damaged)
	require.Equal(t, 1, died)

	h.Reset()
	require.True(t, h.IsAlive())
	require.Equal(t, 3, h.CurrentHP())
}

func TestHealthRejectsNonPositive(t *testing.T) {
	require.Equal(t, 1, NewHealth(0).MaxHP())
	h := NewHealth(2)
	require.False(t, h.ApplyDamage(0, CombatEvent{}))
	require.False(t, h.ApplyDamage(-3, CombatEvent{}))
	require.Equal(t, 2, h.CurrentHP())

	var nilHealth *Health
	require.False(t, nilHealth.IsAlive())
	require.Zero(t, nilHealth.CurrentHP())
}
