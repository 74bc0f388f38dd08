package system

import (
	"log/slog"

	"github.com/milk9111/bowstep/common"
	"github.com/milk9111/bowstep/ecs"
	"github.com/milk9111/bowstep/ecs/component"
	"github.com/milk9111/bowstep/sound"
)

const (
	audioPull     = "pull"
	audioShoot    = "shoot"
	audioTeleport = "teleport"

	triggerDraw  = "draw"
	triggerShoot = "shoot"

	arrowSpawnDistance = 0.6
)

// ArrowSpawner builds an arrow entity from a prefab, launched from origin
// along dir.
type ArrowSpawner interface {
	SpawnArrow(w *ecs.World, prefab string, origin, dir common.Vec3) (ecs.Entity, error)
}

// MusicPlayer starts and stops the hub's music cue.
type MusicPlayer interface {
	NewInstance(cue sound.CueID) *sound.Instance
	Play(inst *sound.Instance)
	Stop(inst *sound.Instance)
}

// LoreShown is the payload of ecs.EventLoreShown.
type LoreShown struct {
	Interactable ecs.Entity
	Text         string
}

// PlayerHubSystem owns the single player hub: it enforces there is only one,
// turns primary input into bow audio, animation triggers and arrows, and
// shows or hides lore.
type PlayerHubSystem struct {
	spawner ArrowSpawner
	lore    LoreSource
	music   MusicPlayer
	debug   bool
	log     *slog.Logger

	hub         ecs.Entity
	musicHandle *sound.Instance
}

func NewPlayerHubSystem(spawner ArrowSpawner, lore LoreSource, music MusicPlayer, debug bool, log *slog.Logger) *PlayerHubSystem {
	if log == nil {
		log = slog.Default()
	}
	return &PlayerHubSystem{
		spawner: spawner,
		lore:    lore,
		music:   music,
		debug:   debug,
		log:     log.With("system", "player_hub"),
	}
}

// Hub returns the authoritative hub entity and its component.
func (s *PlayerHubSystem) Hub(w *ecs.World) (ecs.Entity, *component.PlayerHub, bool) {
	if s.hub == 0 || !w.IsAlive(s.hub) {
		return 0, nil, false
	}
	hub, ok := ecs.Get(w, s.hub, component.PlayerHubComponent.Kind())
	return s.hub, hub, ok
}

// Reset forgets the current hub, e.g. before a level rebuild.
func (s *PlayerHubSystem) Reset() {
	s.StopMusic()
	s.hub = 0
}

func (s *PlayerHubSystem) StopMusic() {
	if s.music != nil && s.musicHandle != nil {
		s.music.Stop(s.musicHandle)
	}
	s.musicHandle = nil
}

func (s *PlayerHubSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.enforceSingleHub(w)

	e, hub, ok := s.Hub(w)
	if !ok {
		return
	}
	if !hub.Started() {
		s.startMusic(hub)
	}
	if w.Time().Scale == 0 {
		return
	}

	input, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		return
	}

	if s.debug && input.DebugSlot >= 0 {
		s.selectArrow(hub, input.DebugSlot)
	}

	if input.InteractPressed {
		if hub.LoreVisible {
			s.HideLore(w)
		} else {
			s.tryInteract(w, e)
		}
	}
	if hub.LoreVisible {
		return
	}

	if input.PrimaryPressed {
		s.draw(w, e, hub)
	}
	if input.PrimaryReleased {
		s.shoot(w, e, hub)
	}
}

func (s *PlayerHubSystem) enforceSingleHub(w *ecs.World) {
	hubs := w.Query(component.PlayerHubComponent.Kind())
	if s.hub != 0 && !w.IsAlive(s.hub) {
		s.hub = 0
	}
	for _, e := range hubs {
		if s.hub == 0 {
			s.hub = e
			continue
		}
		if e == s.hub {
			continue
		}
		s.log.Error("multiple players found, destroying extra player", "kept", s.hub, "destroyed", e)
		ecs.DestroyEntity(w, e)
	}
}

func (s *PlayerHubSystem) startMusic(hub *component.PlayerHub) {
	if s.music == nil || hub.Music == "" {
		return
	}
	s.musicHandle = s.music.NewInstance(hub.Music)
	s.music.Play(s.musicHandle)
}

func (s *PlayerHubSystem) selectArrow(hub *component.PlayerHub, slot int) {
	if slot >= len(hub.ArrowPrefabs) {
		s.log.Warn("no arrow prefab in slot", "slot", slot, "available", len(hub.ArrowPrefabs))
		return
	}
	hub.SelectedArrow = slot
	s.log.Info("arrow prefab selected", "slot", slot, "prefab", hub.ArrowPrefabs[slot])
}

func (s *PlayerHubSystem) draw(w *ecs.World, e ecs.Entity, hub *component.PlayerHub) {
	if audio, ok := ecs.Get(w, e, component.AudioComponent.Kind()); ok {
		audio.Request(audioPull)
	}
	fireTrigger(w, e, triggerDraw)
	hub.Drawing = true
}

func (s *PlayerHubSystem) shoot(w *ecs.World, e ecs.Entity, hub *component.PlayerHub) {
	if audio, ok := ecs.Get(w, e, component.AudioComponent.Kind()); ok {
		audio.Cancel(audioPull)
		audio.Request(audioShoot)
	}
	fireTrigger(w, e, triggerShoot)

	drawn := hub.Drawing
	hub.Drawing = false
	if !drawn || hub.StopShooting || s.spawner == nil {
		return
	}

	prefab := hub.ArrowPrefab()
	if prefab == "" {
		return
	}
	origin, dir := aimOf(w, e)
	if _, err := s.spawner.SpawnArrow(w, prefab, origin.Add(dir.Scale(arrowSpawnDistance)), dir); err != nil {
		s.log.Error("spawn arrow", "prefab", prefab, "err", err)
	}
}

func aimOf(w *ecs.World, e ecs.Entity) (origin, dir common.Vec3) {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		origin = common.Vec3{X: t.X, Y: t.Y, Z: t.Z}
		dir = common.Direction(t.Yaw, t.Pitch)
	}
	if loco, ok := ecs.Get(w, e, component.LocomotionComponent.Kind()); ok && loco.Controller != nil {
		dir = loco.Controller.LookDirection()
	}
	if dir.Len() == 0 {
		dir = common.Direction(0, 0)
	}
	return origin, dir
}

func (s *PlayerHubSystem) tryInteract(w *ecs.World, e ecs.Entity) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	target, it, ok := nearestInteractable(w, t.X, t.Y, t.Z)
	if !ok {
		return
	}
	it.Visits++

	text := it.Name
	if s.lore != nil {
		lore, err := s.lore.Lore(it)
		if err != nil {
			s.log.Error("run lore script", "interactable", it.Name, "script", it.Script, "err", err)
		} else {
			text = lore
		}
	}
	s.ShowLore(w, target, text)
}

// ShowLore displays text and disables movement, look and shooting.
func (s *PlayerHubSystem) ShowLore(w *ecs.World, source ecs.Entity, text string) {
	e, hub, ok := s.Hub(w)
	if !ok {
		return
	}
	hub.LoreVisible = true
	hub.LoreText = text
	hub.Drawing = false
	setLocomotionDisabled(w, e, true)
	w.Events().Push(ecs.Event{Type: ecs.EventLoreShown, Data: LoreShown{Interactable: source, Text: text}})
}

// HideLore closes the lore panel and re-enables the player.
func (s *PlayerHubSystem) HideLore(w *ecs.World) {
	e, hub, ok := s.Hub(w)
	if !ok {
		return
	}
	hub.LoreVisible = false
	hub.LoreText = ""
	setLocomotionDisabled(w, e, false)
	w.Events().Push(ecs.Event{Type: ecs.EventLoreHidden})
}

func setLocomotionDisabled(w *ecs.World, e ecs.Entity, disabled bool) {
	if loco, ok := ecs.Get(w, e, component.LocomotionComponent.Kind()); ok {
		loco.Disabled = disabled
		if disabled && loco.Controller != nil {
			loco.Controller.Halt()
		}
	}
}

func fireTrigger(w *ecs.World, e ecs.Entity, trigger string) {
	w.Events().Push(ecs.Event{
		Type: ecs.EventAnimationTrigger,
		Data: ecs.AnimationTrigger{Entity: e, Trigger: trigger},
	})
}
