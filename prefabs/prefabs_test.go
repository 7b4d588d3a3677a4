package prefabs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Unlucky-Polypus/Survivor/collision"
	"github.com/stretchr/testify/require"
)

func embedded() *Loader { return &Loader{} }

func TestLoadAllEmbedded(t *testing.T) {
	c, err := embedded().LoadAll(context.Background())
	require.NoError(t, err)

	require.Equal(t, 5, c.Player.Health)
	require.Equal(t, 11, c.Enemy.Animation.FrameCount)
	require.Equal(t, 0.12, c.Enemy.Animation.FrameDuration)
	require.Equal(t, 2.0, c.Sword.SwingSpeed)
	require.Equal(t, 0.7, c.Sword.Hitbox.WidthRatio)
	require.Equal(t, 0.55, c.Dagger.Hitbox.HeightRatio)
	require.Equal(t, "director.tengo", c.Director.Script)
	require.NotNil(t, c.Aura.Color)
}

func TestLoadAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := embedded().LoadAll(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aura.yaml"), []byte("name: aura\nradius: 99\nopacity: 0.25\n"), 0o644))

	l := &Loader{Dir: dir}
	spec, err := LoadSpecFrom[AuraSpec](l, "prefabs/aura.yaml")
	require.NoError(t, err)
	require.Equal(t, 99.0, spec.Radius)

	_, ok := l.ModTime("aura.yaml")
	require.True(t, ok)
	_, ok = l.ModTime("sword.yaml")
	require.False(t, ok)

	sword, err := LoadSpecFrom[WeaponSpec](l, "sword.yaml")
	require.NoError(t, err, "missing overrides fall back to the embedded copy")
	require.Equal(t, "sword", sword.Name)
}

func TestChangedSkipsUntouchedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aura.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: aura\nradius: 10\n"), 0o644))

	l := &Loader{Dir: dir}
	_, ok := l.ModTime(path)
	require.True(t, ok, "paths inside Dir resolve as reported by the watcher")

	seen := map[string]time.Time{}
	require.Equal(t, []string{path}, l.Changed([]string{path, path}, seen))
	require.Empty(t, l.Changed([]string{path}, seen))

	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	require.Equal(t, []string{path}, l.Changed([]string{path}, seen))

	require.NoError(t, os.Remove(path))
	require.Equal(t, []string{path}, l.Changed([]string{path}, seen), "a removed override falls back to the embedded copy")
	require.NotContains(t, seen, path)
}

func TestInvalidOverrideFailsLoadAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sword.yaml"), []byte("name: sword\nsprite: {width: 10, height: 10}\nhitbox: {width_ratio: 1.5, height_ratio: 0.5}\nsize_ratio: 1\n"), 0o644))

	_, err := (&Loader{Dir: dir}).LoadAll(context.Background())
	require.ErrorIs(t, err, ErrInvalidSpec)
	require.ErrorIs(t, err, collision.ErrInvalidRatio)
}

func TestSpecValidation(t *testing.T) {
	cases := []struct {
		name string
		spec validator
	}{
		{"player_without_health", PlayerSpec{MoveSpeed: 1}},
		{"player_negative_collider", PlayerSpec{MoveSpeed: 1, Health: 1, Collider: ColliderSpec{Width: -1}}},
		{"enemy_negative_speed", EnemySpec{MoveSpeed: -1, Health: 1}},
		{"weapon_zero_scale", WeaponSpec{Sprite: SpriteSpec{Width: 1, Height: 1}, Hitbox: WeaponHitboxSpec{WidthRatio: 1, HeightRatio: 1}}},
		{"weapon_zero_ratio", WeaponSpec{SizeRatio: 1}},
		{"aura_opacity", AuraSpec{Radius: 1, Opacity: 2}},
		{"director_negative", DirectorSpec{MaxEnemies: -1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.ErrorIs(t, c.spec.Validate(), ErrInvalidSpec)
		})
	}
}

func TestYAMLColor(t *testing.T) {
	spec, err := LoadSpecFrom[AuraSpec](embedded(), "aura.yaml")
	require.NoError(t, err)
	r, g, b, a := spec.Color.RGBA()
	require.Equal(t, uint32(0x30*0x101), r)
	require.Equal(t, uint32(0x19*0x101), g)
	require.Equal(t, uint32(0x4f*0x101), b)
	require.Equal(t, uint32(0xffff), a)

	require.Nil(t, ColorOr(nil, nil))
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"director.tengo", "scripts/director.tengo", "prefabs/scripts/director.tengo"} {
		src, err := embedded().LoadScript(name)
		require.NoError(t, err, name)
		require.Contains(t, string(src), "max_enemies")
	}
}

func TestWatcherReportsSpecChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(nil, dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "enemy.yaml")
	require.NoError(t, os.WriteFile(target, []byte("name: enemy\n"), 0o644))

	select {
	case name := <-w.Events:
		require.Equal(t, target, name)
	case <-time.After(5 * time.Second):
		t.Fatal("no watcher event")
	}
}
