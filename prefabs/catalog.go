package prefabs

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Catalog holds every prefab the game needs to start a run.
type Catalog struct {
	Player   PlayerSpec
	Enemy    EnemySpec
	Sword    WeaponSpec
	Dagger   WeaponSpec
	Aura     AuraSpec
	Director DirectorSpec
}

type validator interface {
	Validate() error
}

// LoadAll reads and validates every prefab concurrently. The first failure
// cancels the rest.
func (l *Loader) LoadAll(ctx context.Context) (*Catalog, error) {
	var c Catalog
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return loadInto(ctx, l, "player.yaml", &c.Player) })
	g.Go(func() error { return loadInto(ctx, l, "enemy.yaml", &c.Enemy) })
	g.Go(func() error { return loadInto(ctx, l, "sword.yaml", &c.Sword) })
	g.Go(func() error { return loadInto(ctx, l, "dagger.yaml", &c.Dagger) })
	g.Go(func() error { return loadInto(ctx, l, "aura.yaml", &c.Aura) })
	g.Go(func() error { return loadInto(ctx, l, "director.yaml", &c.Director) })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &c, nil
}

func loadInto[T validator](ctx context.Context, l *Loader, filename string, dst *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	spec, err := LoadSpecFrom[T](l, filename)
	if err != nil {
		return err
	}
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	*dst = spec
	return nil
}
