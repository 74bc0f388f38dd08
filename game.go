package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/bowstep/assets"
	"github.com/milk9111/bowstep/common"
	"github.com/milk9111/bowstep/ecs"
	"github.com/milk9111/bowstep/ecs/component"
	"github.com/milk9111/bowstep/ecs/entity"
	"github.com/milk9111/bowstep/ecs/system"
	"github.com/milk9111/bowstep/locomotion"
	"github.com/milk9111/bowstep/pause"
	"github.com/milk9111/bowstep/prefabs"
	"github.com/milk9111/bowstep/sound"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	baseWidth     = common.BaseWidth
	baseHeight    = common.BaseHeight
	pixelsPerUnit = common.PixelsPerUnit
)

// Game wires the ECS world, the fixed-step accumulator, the pause menu and
// debug hot reload into an ebiten.Game.
type Game struct {
	cfg   prefabs.GameSpec
	debug bool
	log   *slog.Logger

	sounds  *sound.Manager
	terrain locomotion.TerrainSet
	lore    *system.LoreScripts

	world     *ecs.World
	level     prefabs.LevelSpec
	scheduler *ecs.Scheduler
	input     *system.InputSystem
	physics   *system.PhysicsSystem
	hub       *system.PlayerHubSystem
	overlay   *system.OverlaySystem
	builder   *entity.Builder

	menu    *pause.Menu
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher
	face    text.Face

	accumulator float64
	timeScale   float64
	quit        bool
}

func NewGame(cfg prefabs.GameSpec, log *slog.Logger) (*Game, error) {
	if log == nil {
		log = slog.Default()
	}

	audioSpec, err := prefabs.LoadAudioSpec()
	if err != nil {
		return nil, fmt.Errorf("game: load audio: %w", err)
	}
	terrain, err := prefabs.LoadTerrainSet()
	if err != nil {
		return nil, fmt.Errorf("game: load terrain: %w", err)
	}

	mixer := sound.NewMixer(audioSpec.MixerSnapshots()...)
	g := &Game{
		cfg:       cfg,
		debug:     cfg.Debug,
		log:       log,
		sounds:    sound.NewManager(audioSpec.Cues, assets.PlayerFactory, mixer, log),
		terrain:   terrain,
		lore:      system.NewLoreScripts(prefabs.LoadScript),
		face:      text.NewGoXFace(basicfont.Face7x13),
		timeScale: 1,
	}

	if err := g.loadLevel(); err != nil {
		return nil, err
	}

	g.menu = pause.New(cfg.Pause, g.sounds, mixer, g, log)
	g.pauseUI = NewPauseUI(g.menu, mixer, log)

	if g.debug {
		g.startWatcher()
	}
	return g, nil
}

// loadLevel builds a fresh world from the level and player prefabs. It is
// used at start-up and by restart.
func (g *Game) loadLevel() error {
	level, err := prefabs.LoadLevelSpec(g.cfg.Level)
	if err != nil {
		return fmt.Errorf("game: load level %s: %w", g.cfg.Level, err)
	}

	if g.hub != nil {
		g.hub.Reset()
	}

	w := ecs.NewWorld()
	physics := system.NewPhysicsSystem(level.Gravity, g.log)
	builder := entity.NewBuilder(entity.Services{
		Physics:    physics,
		Terrain:    system.NewWorldTerrain(w),
		Sounds:     g.sounds,
		TerrainSet: g.terrain,
		Log:        g.log,
	})
	hub := system.NewPlayerHubSystem(builder, g.lore, g.sounds, g.debug, g.log)
	locomotionSystem := system.NewLocomotionSystem()
	arrows := system.NewArrowSystem(physics, hub, g.log)
	overlay := system.NewOverlaySystem()

	if err := entity.LoadLevelToWorld(w, level); err != nil {
		return fmt.Errorf("game: build level: %w", err)
	}
	if _, err := builder.BuildPlayer(w, g.cfg.Player, level.Spawn); err != nil {
		return fmt.Errorf("game: build player: %w", err)
	}
	physics.Sync(w)

	scheduler := ecs.NewScheduler(
		locomotionSystem,
		hub,
		arrows,
		system.NewAudioSystem(g.sounds),
		system.NewAnimationSystem(),
		system.NewTTLSystem(),
		overlay,
	)
	scheduler.AddFixed(physics)
	scheduler.AddFixed(locomotionSystem)
	scheduler.AddFixed(arrows)

	t := w.Time()
	t.Scale = g.timeScale
	t.FixedDelta = 1 / float64(g.cfg.TickRate)

	g.world = w
	g.level = level
	g.physics = physics
	g.builder = builder
	g.hub = hub
	g.overlay = overlay
	g.scheduler = scheduler
	if g.input == nil {
		g.input = system.NewInputSystem(g.debug)
	}
	g.accumulator = 0

	g.log.Info("level loaded", "level", level.Name, "blocks", len(level.Blocks), "interactables", len(level.Interactables))
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.applyReloads()

	t := g.world.Time()
	t.Scale = g.timeScale
	t.Advance(1 / float64(ebiten.TPS()))

	g.input.Update(g.world)
	g.menu.Update(t.Unscaled, g.pausePressed())
	if g.menu.Paused() {
		g.pauseUI.Update()
	}
	if g.quit {
		return ebiten.Termination
	}

	// The menu may have changed the scale or rebuilt the world.
	t = g.world.Time()
	t.Scale = g.timeScale
	t.Delta = t.Unscaled * t.Scale

	var dropped float64
	g.accumulator, dropped = g.scheduler.Step(g.world, g.accumulator, g.cfg.MaxFixedSteps)
	if dropped > 0 {
		g.log.Debug("dropped fixed step backlog", "seconds", dropped)
	}
	return nil
}

func (g *Game) pausePressed() bool {
	if e, _, ok := g.hub.Hub(g.world); ok {
		if input, ok := ecs.Get(g.world, e, component.InputComponent.Kind()); ok {
			return input.PausePressed
		}
	}
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

func (g *Game) StopShooting() bool {
	if _, hub, ok := g.hub.Hub(g.world); ok {
		return hub.StopShooting
	}
	return false
}

func (g *Game) SetStopShooting(stop bool) {
	if _, hub, ok := g.hub.Hub(g.world); ok {
		hub.StopShooting = stop
	}
}

func (g *Game) SetTimeScale(scale float64) {
	g.timeScale = scale
	if g.world != nil {
		g.world.Time().Scale = scale
	}
}

func (g *Game) SetCursorVisible(visible bool) {
	if visible {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
}

func (g *Game) StopMusic() {
	g.hub.StopMusic()
	g.sounds.StopAll(sound.BusMusic)
}

func (g *Game) Restart() error {
	return g.loadLevel()
}

func (g *Game) Quit() {
	g.quit = true
}

// Close releases the hot reload watcher.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) startWatcher() {
	dirs := []string{"prefabs", "prefabs/scripts"}
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			g.log.Warn("hot reload disabled, prefab directory not found", "dir", dir)
			return
		}
	}
	watcher, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		g.log.Warn("hot reload disabled", "err", err)
		return
	}
	g.watcher = watcher
	g.log.Info("watching prefabs for changes", "dirs", dirs)
}

// applyReloads handles files the watcher reported since the last frame.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		g.log.Warn("prefab watcher", "err", err)
	default:
	}

	rebuild := false
	for _, name := range g.watcher.Drain() {
		switch {
		case strings.HasSuffix(name, ".tengo"):
			g.lore.Invalidate(name)
			g.log.Info("lore script reloaded", "script", name)
		case name == "terrain.yaml":
			set, err := prefabs.LoadTerrainSet()
			if err != nil {
				g.log.Error("reload terrain", "err", err)
				continue
			}
			g.terrain = set
			g.builder.SetTerrainSet(set)
			rebuild = true
		case name == g.cfg.Player, name == g.cfg.Level, strings.HasPrefix(name, "arrow"):
			rebuild = true
		default:
			g.log.Info("prefab changed, restart to apply", "file", name)
		}
	}
	if !rebuild {
		return
	}
	if err := g.loadLevel(); err != nil {
		g.log.Error("hot reload", "err", err)
		return
	}
	g.log.Info("level rebuilt after prefab change")
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	camX, camY := g.camera()
	toScreen := func(x, y float64) (float32, float32) {
		return float32((x-camX)*pixelsPerUnit + baseWidth/2), float32((y-camY)*pixelsPerUnit + baseHeight/2)
	}

	ecs.ForEach2(g.world, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if body.Radius > 0 {
			return
		}
		x, y := toScreen(t.X-body.Width/2, t.Y-body.Height/2)
		vector.DrawFilledRect(screen, x, y, float32(body.Width*pixelsPerUnit), float32(body.Height*pixelsPerUnit), g.blockColor(e), false)
	})

	ecs.ForEach2(g.world, component.InteractableComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, it *component.Interactable, t *component.Transform) {
		x, y := toScreen(t.X, t.Y)
		vector.StrokeCircle(screen, x, y, float32(it.Range*pixelsPerUnit), 1, colornames.Gold, false)
	})

	ecs.ForEach2(g.world, component.ArrowComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, arrow *component.Arrow, t *component.Transform) {
		x, y := toScreen(t.X, t.Y)
		clr := colornames.Orange
		if arrow.Stuck {
			clr = colornames.Lightgreen
		}
		vector.DrawFilledCircle(screen, x, y, 4, clr, false)
	})

	if g.debug {
		ebitenutil.DebugPrint(screen, g.debugText())
	}
	g.drawOverlay(screen, g.overlay.State())
	if g.menu.Paused() {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) camera() (float64, float64) {
	if e, _, ok := g.hub.Hub(g.world); ok {
		if t, ok := ecs.Get(g.world, e, component.TransformComponent.Kind()); ok {
			return t.X, t.Y
		}
	}
	return g.level.Spawn.X, g.level.Spawn.Y
}

func (g *Game) blockColor(e ecs.Entity) color.Color {
	switch {
	case ecs.Has(g.world, e, component.PlayerTagComponent.Kind()):
		return colornames.Skyblue
	case ecs.Has(g.world, e, component.ReflectorTagComponent.Kind()):
		return colornames.Silver
	}
	if terrain, ok := ecs.Get(g.world, e, component.TerrainComponent.Kind()); ok {
		switch terrain.Kind {
		case "stone":
			return colornames.Slategray
		case "wood":
			return colornames.Sienna
		}
	}
	return colornames.Saddlebrown
}

func (g *Game) debugText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.2f  TPS: %.2f  fixed ticks: %d\n", ebiten.ActualFPS(), ebiten.ActualTPS(), g.world.Time().FixedTicks)
	e, hub, ok := g.hub.Hub(g.world)
	if !ok {
		return b.String()
	}
	fmt.Fprintf(&b, "arrow: %s\n", hub.ArrowPrefab())
	if loco, ok := ecs.Get(g.world, e, component.LocomotionComponent.Kind()); ok && loco.Controller != nil {
		c := loco.Controller
		fmt.Fprintf(&b, "grounded: %v  terrain: %s  cooldown: %d\n", c.Grounded(), c.CurrentTerrain(), c.Cooldown())
	}
	return b.String()
}

func (g *Game) drawOverlay(screen *ebiten.Image, o system.Overlay) {
	if o.Footing != "" {
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, baseHeight-20)
		op.ColorScale.ScaleWithColor(colornames.Lightgray)
		text.Draw(screen, "footing: "+string(o.Footing), g.face, op)
	}
	if o.LoreVisible {
		g.drawLore(screen, o.LoreText)
	}
	if o.Flash > 0 {
		vector.DrawFilledRect(screen, 0, 0, baseWidth, baseHeight, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(160 * o.Flash)}, false)
	}
}

func (g *Game) drawLore(screen *ebiten.Image, lore string) {
	const margin = 40
	vector.DrawFilledRect(screen, margin, baseHeight-140, baseWidth-2*margin, 100, color.NRGBA{A: 200}, false)
	op := &text.DrawOptions{}
	op.GeoM.Translate(margin+16, baseHeight-124)
	op.ColorScale.ScaleWithColor(colornames.White)
	op.LineSpacing = 18
	text.Draw(screen, lore, g.face, op)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

var _ pause.Host = (*Game)(nil)
