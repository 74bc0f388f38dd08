package system

import (
	"github.com/milk9111/bowstep/ecs"
	"github.com/milk9111/bowstep/ecs/component"
	"github.com/milk9111/bowstep/locomotion"
)

const teleportFlashSeconds = 0.25

// Overlay is the screen-space state drawn over the level.
type Overlay struct {
	LoreVisible bool
	LoreText    string
	// Footing is the terrain under the player's last grounded step.
	Footing locomotion.TerrainKind
	// Flash is the remaining teleport flash strength in [0, 1].
	Flash float64
}

// OverlaySystem folds lore, terrain and teleport events into Overlay. The
// flash decays on scaled time so it holds while paused.
type OverlaySystem struct {
	state      Overlay
	flashTimer float64
}

func NewOverlaySystem() *OverlaySystem {
	return &OverlaySystem{}
}

func (s *OverlaySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if s.flashTimer > 0 {
		s.flashTimer = max(s.flashTimer-w.Time().Delta, 0)
	}

	for _, evt := range w.Events().Peek() {
		switch evt.Type {
		case ecs.EventLoreShown:
			if shown, ok := evt.Data.(LoreShown); ok {
				s.state.LoreVisible = true
				s.state.LoreText = shown.Text
			}
		case ecs.EventLoreHidden:
			s.state.LoreVisible = false
			s.state.LoreText = ""
		case ecs.EventTerrainChanged:
			changed, ok := evt.Data.(TerrainChanged)
			if ok && ecs.Has(w, changed.Entity, component.PlayerHubComponent.Kind()) {
				s.state.Footing = changed.To
			}
		case ecs.EventTeleported:
			s.flashTimer = teleportFlashSeconds
		}
	}

	s.state.Flash = s.flashTimer / teleportFlashSeconds
}

func (s *OverlaySystem) State() Overlay {
	return s.state
}
