// Package pause implements the pause menu state: time scale, mixer snapshot,
// shooting suppression and the menu's own sounds. Widgets live in the game
// package; they call into Menu.
package pause

import (
	"log/slog"

	"github.com/milk9111/bowstep/prefabs"
	"github.com/milk9111/bowstep/sound"
)

// Audio plays the menu cues.
type Audio interface {
	NewInstance(cue sound.CueID) *sound.Instance
	Play(inst *sound.Instance)
}

// Mixer switches between the paused and unpaused snapshots.
type Mixer interface {
	TransitionTo(name string, seconds float64) bool
}

// Host is the game the menu pauses.
type Host interface {
	StopShooting() bool
	SetStopShooting(stop bool)
	SetTimeScale(scale float64)
	SetCursorVisible(visible bool)
	StopMusic()
	Restart() error
	Quit()
}

type Menu struct {
	cfg   prefabs.PauseSpec
	audio Audio
	mixer Mixer
	host  Host
	log   *slog.Logger

	whoosh *sound.Instance
	click  *sound.Instance
	hover  *sound.Instance

	paused      bool
	wasShooting bool
	sinceClick  float64
}

func New(cfg prefabs.PauseSpec, audio Audio, mixer Mixer, host Host, log *slog.Logger) *Menu {
	if log == nil {
		log = slog.Default()
	}
	m := &Menu{
		cfg:   cfg,
		audio: audio,
		mixer: mixer,
		host:  host,
		log:   log.With("component", "pause"),
	}
	if audio != nil {
		m.whoosh = audio.NewInstance(cfg.Whoosh)
		m.click = audio.NewInstance(cfg.Click)
		m.hover = audio.NewInstance(cfg.Hover)
	}
	m.host.SetTimeScale(1)
	return m
}

func (m *Menu) Paused() bool {
	return m.paused
}

// Update advances the click limiter on unscaled time and toggles on the
// pause key.
func (m *Menu) Update(unscaledDt float64, pausePressed bool) {
	m.sinceClick += unscaledDt
	if pausePressed {
		m.Toggle()
	}
}

// Toggle pauses or resumes.
func (m *Menu) Toggle() {
	if m.paused {
		m.resumeAudio()
	} else {
		m.play(m.whoosh)
		m.transition(m.cfg.Snapshot)
		m.wasShooting = m.host.StopShooting()
		m.host.SetStopShooting(true)
	}

	m.paused = !m.paused
	m.host.SetCursorVisible(m.paused)
	if m.paused {
		m.host.SetTimeScale(0)
	} else {
		m.host.SetTimeScale(1)
	}
	m.log.Debug("toggled", "paused", m.paused)
}

// Resume unpauses if paused.
func (m *Menu) Resume() {
	if m.paused {
		m.Toggle()
	}
}

// Restart resumes and asks the host to rebuild the level.
func (m *Menu) Restart() error {
	m.host.SetTimeScale(1)
	m.Resume()
	return m.host.Restart()
}

// Quit stops the music, resumes and ends the game.
func (m *Menu) Quit() {
	m.host.StopMusic()
	m.Resume()
	m.host.Quit()
}

// SliderClick plays the click cue at most once per click interval. It
// reports whether the cue played.
func (m *Menu) SliderClick() bool {
	if m.sinceClick <= m.cfg.ClickInterval {
		return false
	}
	m.play(m.click)
	m.sinceClick = 0
	return true
}

func (m *Menu) Hover() {
	m.play(m.hover)
}

func (m *Menu) resumeAudio() {
	m.play(m.whoosh)
	m.transition(m.cfg.Unpaused)
	m.host.SetStopShooting(m.wasShooting)
}

func (m *Menu) transition(snapshot string) {
	if m.mixer == nil {
		return
	}
	if !m.mixer.TransitionTo(snapshot, m.cfg.Transition) {
		m.log.Warn("unknown mixer snapshot", "snapshot", snapshot)
	}
}

func (m *Menu) play(inst *sound.Instance) {
	if m.audio != nil {
		m.audio.Play(inst)
	}
}
