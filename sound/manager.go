package sound

import (
	"log/slog"
)

// Manager owns the cue table and plays instances through the mixer.
type Manager struct {
	cues    map[CueID]CueSpec
	factory PlayerFactory
	mixer   *Mixer
	log     *slog.Logger

	active  map[*Instance]struct{}
	missing map[CueID]bool
}

func NewManager(cues []CueSpec, factory PlayerFactory, mixer *Mixer, log *slog.Logger) *Manager {
	if mixer == nil {
		mixer = NewMixer()
	}
	if log == nil {
		log = slog.Default()
	}
	m := &Manager{
		cues:    make(map[CueID]CueSpec, len(cues)),
		factory: factory,
		mixer:   mixer,
		log:     log.With("component", "sound"),
		active:  make(map[*Instance]struct{}),
		missing: make(map[CueID]bool),
	}
	for _, c := range cues {
		if c.Bus == "" {
			c.Bus = BusSFX
		}
		if c.Volume <= 0 {
			c.Volume = 1
		}
		m.cues[c.ID] = c
	}
	return m
}

func (m *Manager) Mixer() *Mixer {
	return m.mixer
}

// NewInstance generates a playable handle for cue. Unknown cues or decode
// failures yield an instance that plays nothing; the failure is logged once.
func (m *Manager) NewInstance(cue CueID) *Instance {
	inst := &Instance{Cue: cue}
	spec, ok := m.cues[cue]
	if !ok {
		m.warnOnce(cue, "unknown cue")
		return inst
	}
	inst.spec = spec
	if m.factory == nil {
		return inst
	}
	player, err := m.factory(spec)
	if err != nil {
		m.log.Error("create player", "cue", cue, "file", spec.File, "err", err)
		return inst
	}
	inst.player = player
	return inst
}

// Play restarts the instance from the beginning.
func (m *Manager) Play(inst *Instance) {
	if !inst.Valid() {
		return
	}
	inst.player.SetVolume(m.volumeOf(inst))
	if err := inst.player.Rewind(); err != nil {
		m.log.Warn("rewind", "cue", inst.Cue, "err", err)
	}
	inst.player.Play()
	m.active[inst] = struct{}{}
}

func (m *Manager) Stop(inst *Instance) {
	if !inst.Valid() {
		return
	}
	if inst.player.IsPlaying() {
		inst.player.Pause()
	}
	delete(m.active, inst)
}

// Update advances the mixer, keeps looping cues alive and drops finished
// instances. dt is unscaled so snapshot blends run while paused.
func (m *Manager) Update(dt float64) {
	m.mixer.Update(dt)
	for inst := range m.active {
		if !inst.player.IsPlaying() {
			if !inst.spec.Loop {
				delete(m.active, inst)
				continue
			}
			_ = inst.player.Rewind()
			inst.player.Play()
		}
		inst.player.SetVolume(m.volumeOf(inst))
	}
}

// StopAll silences every active instance on a bus, or all buses when bus is
// empty.
func (m *Manager) StopAll(bus Bus) {
	for inst := range m.active {
		if bus != "" && inst.spec.Bus != bus {
			continue
		}
		m.Stop(inst)
	}
}

func (m *Manager) volumeOf(inst *Instance) float64 {
	return inst.spec.Volume * m.mixer.Volume(inst.spec.Bus)
}

func (m *Manager) warnOnce(cue CueID, msg string) {
	if m.missing[cue] {
		return
	}
	m.missing[cue] = true
	m.log.Warn(msg, "cue", cue)
}
