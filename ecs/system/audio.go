package system

import (
	"github.com/milk9111/bowstep/ecs"
	"github.com/milk9111/bowstep/ecs/component"
	"github.com/milk9111/bowstep/sound"
)

// AudioPlayer is the part of sound.Manager the audio system drives.
type AudioPlayer interface {
	Play(inst *sound.Instance)
	Stop(inst *sound.Instance)
	Update(dt float64)
}

// AudioSystem applies the Play/Stop flags of Audio components and advances
// the mixer on unscaled time.
type AudioSystem struct {
	player AudioPlayer
}

func NewAudioSystem(player AudioPlayer) *AudioSystem {
	return &AudioSystem{player: player}
}

func (a *AudioSystem) Update(w *ecs.World) {
	if a.player == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := min(len(audioComp.Play), len(audioComp.Stop), len(audioComp.Instances))

		for i := 0; i < count; i++ {
			if !audioComp.Stop[i] {
				continue
			}
			a.player.Stop(audioComp.Instances[i])
			audioComp.Stop[i] = false
		}

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}
			a.player.Play(audioComp.Instances[i])
			audioComp.Play[i] = false
		}
	})

	a.player.Update(w.Time().Unscaled)
}
