package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Unlucky-Polypus/Survivor/collision"
	"github.com/Unlucky-Polypus/Survivor/common"
	"github.com/Unlucky-Polypus/Survivor/component"
	"github.com/Unlucky-Polypus/Survivor/obj"
	"github.com/Unlucky-Polypus/Survivor/prefabs"
	"github.com/Unlucky-Polypus/Survivor/render"
	"github.com/Unlucky-Polypus/Survivor/system"
	"github.com/ebitenui/ebitenui"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

const loadTimeout = 5 * time.Second

type state int

const (
	stateMenu state = iota
	statePlaying
	statePaused
	stateGameOver
)

func (s state) String() string {
	switch s {
	case stateMenu:
		return "menu"
	case statePlaying:
		return "playing"
	case statePaused:
		return "paused"
	case stateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

type Options struct {
	Debug     bool
	Seed      uint64
	PrefabDir string
}

type Game struct {
	opts Options
	log  *zap.Logger

	loader  *prefabs.Loader
	world   *system.World
	scores  *system.ScoreBook
	camera  *obj.Camera
	input   *obj.Input
	art     *art
	watcher *prefabs.Watcher
	// stamps holds the modification time of each reloaded file.
	stamps  map[string]time.Time

	state   state
	menus   map[state]*ebitenui.UI
	runID   string
	newBest bool
	quit    bool
	frames  int
}

func NewGame(opts Options, log *zap.Logger) (*Game, error) {
	loader := &prefabs.Loader{Dir: opts.PrefabDir}
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	cat, err := loader.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load prefabs: %w", err)
	}
	director, err := loadDirector(loader, cat, log)
	if err != nil {
		return nil, err
	}

	spawner := system.NewSpawner(opts.Seed, common.ArenaBounds(), cat.Director.SpawnMargin)
	camera := obj.NewCamera(common.BaseWidth, common.BaseHeight, 1)
	camera.SetWorldBounds(common.ArenaWidth, common.ArenaHeight)
	camera.SetSmooth(0.15)

	g := &Game{
		opts:   opts,
		log:    log,
		loader: loader,
		world:  system.NewWorld(cat, director, spawner, log),
		scores: system.OpenScoreBook("survivor", log),
		camera: camera,
		input:  obj.NewInput(camera),
		art:    newArt(cat),
		state:  stateMenu,
		menus:  map[state]*ebitenui.UI{},
		stamps: map[string]time.Time{},
	}
	g.world.Anims = g.art.Animation
	g.world.Events.Subscribe(g.onCombat)
	g.world.Reset()
	g.camera.SnapTo(g.world.Player.Pos)

	if opts.Debug {
		g.watch()
	}
	g.buildMenus()

	log.Info("game ready", zap.Uint64("seed", opts.Seed), zap.Int("best", g.scores.Best()), zap.Bool("debug", opts.Debug))
	return g, nil
}

func loadDirector(loader *prefabs.Loader, cat *prefabs.Catalog, log *zap.Logger) (*system.Director, error) {
	fallback := system.DirectorOutput{MaxEnemies: cat.Director.MaxEnemies, EnemySpeed: cat.Director.EnemySpeed}
	if cat.Director.Script == "" {
		return system.NewStaticDirector(fallback), nil
	}
	src, err := loader.LoadScript(cat.Director.Script)
	if err != nil {
		return nil, fmt.Errorf("load director script: %w", err)
	}
	return system.NewDirector(src, fallback, log)
}

// watch starts hot reloading prefabs from disk. A missing directory only
// disables reloading.
func (g *Game) watch() {
	dir := g.opts.PrefabDir
	w, err := prefabs.NewWatcher(g.log, dir, filepath.Join(dir, "scripts"))
	if err != nil {
		g.log.Warn("prefab hot reload disabled", zap.String("dir", dir), zap.Error(err))
		return
	}
	g.watcher = w
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) buildMenus() {
	quit := menuButton{label: "Quit", onClick: func() { g.quit = true }}
	g.menus[stateMenu] = newMenuUI("Survivor",
		[]string{fmt.Sprintf("Best: %d", g.scores.Best()), "WASD to move, click or Space to throw"},
		menuButton{label: "Play", onClick: g.startRun},
		quit,
	)
	g.menus[statePaused] = newMenuUI("Paused", nil,
		menuButton{label: "Resume", onClick: func() { g.state = statePlaying }},
		menuButton{label: "Restart", onClick: g.startRun},
		quit,
	)
	g.menus[stateGameOver] = g.gameOverMenu()
}

func (g *Game) gameOverMenu() *ebitenui.UI {
	best := fmt.Sprintf("Best: %d", g.scores.Best())
	if g.newBest {
		best = "New best!"
	}
	return newMenuUI("Game Over",
		[]string{fmt.Sprintf("Score: %d", g.world.Score), best},
		menuButton{label: "Play again", onClick: g.startRun},
		menuButton{label: "Quit", onClick: func() { g.quit = true }},
	)
}

func (g *Game) startRun() {
	g.world.Reset()
	g.runID = uuid.NewString()
	g.newBest = false
	g.camera.SnapTo(g.world.Player.Pos)
	g.state = statePlaying
	g.log.Info("run started", zap.String("run", g.runID))
}

func (g *Game) finishRun() {
	g.state = stateGameOver
	newBest, err := g.scores.Submit(g.world.Score, g.runID)
	if err != nil {
		g.log.Warn("failed to save score", zap.Error(err))
	}
	g.newBest = newBest
	g.menus[stateGameOver] = g.gameOverMenu()
	g.log.Info("run finished",
		zap.String("run", g.runID),
		zap.Int("score", g.world.Score),
		zap.Duration("survived", time.Duration(g.world.Elapsed*float64(time.Second))),
		zap.Bool("new_best", newBest),
	)
}

func (g *Game) onCombat(evt component.CombatEvent) {
	if evt.Type == component.EventHit {
		return
	}
	g.log.Debug("combat",
		zap.String("type", string(evt.Type)),
		zap.Int("attacker", evt.AttackerID),
		zap.Int("target", evt.TargetID),
		zap.Int("damage", evt.Damage),
		zap.Int("frame", evt.Frame),
	)
}

// reload drains pending file changes and applies the newest prefabs. A set
// that fails to load or validate is rejected and the running one kept.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	var changed []string
drain:
	for {
		select {
		case name := <-g.watcher.Events:
			changed = append(changed, name)
		case err := <-g.watcher.Errors:
			g.log.Warn("prefab watcher", zap.Error(err))
		default:
			break drain
		}
	}
	// Editors often rewrite or touch a file without a new write landing.
	changed = g.loader.Changed(changed, g.stamps)
	if len(changed) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	cat, err := g.loader.LoadAll(ctx)
	if err != nil {
		g.log.Warn("prefab reload rejected", zap.Strings("files", changed), zap.Error(err))
		return
	}
	director, err := loadDirector(g.loader, cat, g.log)
	if err != nil {
		g.log.Warn("director reload rejected", zap.Strings("files", changed), zap.Error(err))
		return
	}

	g.art = newArt(cat)
	g.world.Anims = g.art.Animation
	g.world.ApplyCatalog(cat)
	g.world.SetDirector(director)
	g.log.Info("prefabs reloaded", zap.Strings("files", changed))
}

func (g *Game) Update() error {
	g.frames++
	g.reload()
	g.input.Update()

	switch g.state {
	case statePlaying:
		if g.input.PausePressed {
			g.state = statePaused
			break
		}
		g.world.Update(1/float64(ebiten.TPS()), system.Intent{
			Move:   g.input.Move,
			Throw:  g.input.ThrowPressed,
			Target: g.input.Cursor,
		})
		g.camera.Update(g.world.Player.Pos)
		if g.world.GameOver() {
			g.finishRun()
		}
	case statePaused:
		if g.input.PausePressed {
			g.state = statePlaying
			break
		}
		g.menus[g.state].Update()
	default:
		g.menus[g.state].Update()
	}

	if g.quit {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)
	g.drawWorld(screen)
	if g.opts.Debug {
		g.drawDebug(screen)
	}
	if g.state != stateMenu {
		g.drawHUD(screen)
	}
	if ui := g.menus[g.state]; ui != nil && g.state != statePlaying {
		ui.Draw(screen)
	}
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	w, cam := g.world, g.camera
	arena := common.ArenaBounds()
	render.DrawHitbox(screen, collision.OBB{
		Center: arena.Center(),
		Half:   cp.Vector{X: (arena.R - arena.L) / 2, Y: (arena.T - arena.B) / 2},
	}, cam, colornames.Gray)

	p := w.Player
	if p.Aura != nil && p.Aura.Enabled {
		c := cam.WorldToScreen(p.Aura.Center)
		vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(p.Aura.Radius*cam.Zoom()), g.art.aura, true)
	}

	for _, e := range w.Enemies {
		if render.Visible(e.Hitbox(), cam) {
			render.DrawAnimation(screen, e.Anim, e.Pos, cam)
		}
	}

	// Blink while invulnerable.
	if p.Health.IFrames == 0 || g.frames/4%2 == 0 {
		render.DrawAnimation(screen, p.Anim, p.Pos, cam)
	}

	if s := p.Sword; s != nil {
		render.DrawWeapon(screen, g.art.sword, placement(&s.Weapon), cam)
	}
	if p.Daggers != nil {
		for _, d := range p.Daggers.Daggers() {
			render.DrawWeapon(screen, g.art.dagger, placement(&d.Weapon), cam)
		}
	}
}

func placement(w *obj.Weapon) render.WeaponPlacement {
	return render.WeaponPlacement{Pivot: w.Position, Angle: w.Angle, Size: w.Size(), Offset: w.DrawOffset}
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	w, cam := g.world, g.camera
	p := w.Player
	render.DrawHitbox(screen, p.Hitbox(), cam, colornames.Lime)
	for _, e := range w.Enemies {
		render.DrawHitbox(screen, e.Hitbox(), cam, colornames.Orange)
	}
	for _, part := range p.Weapons() {
		render.DrawHitbox(screen, part.Hitbox(), cam, colornames.Cyan)
	}
	if p.Daggers != nil {
		for _, d := range p.Daggers.Daggers() {
			render.DrawHitbox(screen, d.Hitbox(), cam, colornames.Cyan)
		}
	}
	render.DrawHighlights(screen, w.Resolver.Recent, cam, colornames.Red)

	pressure := w.Pressure()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  Enemies: %d/%d  Speed: %.1f",
		ebiten.ActualFPS(), len(w.Enemies), pressure.MaxEnemies, pressure.EnemySpeed), 8, 24)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	w := g.world
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("HP: %d/%d  Score: %d  Best: %d  Time: %s",
		w.Player.Health.CurrentHP(), w.Player.Health.MaxHP(), w.Score, max(g.scores.Best(), w.Score),
		time.Duration(w.Elapsed*float64(time.Second)).Truncate(time.Second)), 8, 8)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
