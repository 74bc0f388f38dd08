package pause

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/milk9111/bowstep/prefabs"
	"github.com/milk9111/bowstep/sound"
)

type fakeAudio struct {
	played []sound.CueID
}

func (a *fakeAudio) NewInstance(cue sound.CueID) *sound.Instance {
	return &sound.Instance{Cue: cue}
}

func (a *fakeAudio) Play(inst *sound.Instance) {
	a.played = append(a.played, inst.Cue)
}

func (a *fakeAudio) count(cue sound.CueID) int {
	n := 0
	for _, c := range a.played {
		if c == cue {
			n++
		}
	}
	return n
}

type fakeMixer struct {
	snapshots []string
	seconds   []float64
}

func (m *fakeMixer) TransitionTo(name string, seconds float64) bool {
	m.snapshots = append(m.snapshots, name)
	m.seconds = append(m.seconds, seconds)
	return true
}

type fakeHost struct {
	stopShooting  bool
	scale         float64
	cursorVisible bool
	musicStopped  bool
	restarts      int
	quit          bool
	restartErr    error
}

func (h *fakeHost) StopShooting() bool           { return h.stopShooting }
func (h *fakeHost) SetStopShooting(stop bool)    { h.stopShooting = stop }
func (h *fakeHost) SetTimeScale(scale float64)   { h.scale = scale }
func (h *fakeHost) SetCursorVisible(visible bool) { h.cursorVisible = visible }
func (h *fakeHost) StopMusic()                   { h.musicStopped = true }
func (h *fakeHost) Restart() error               { h.restarts++; return h.restartErr }
func (h *fakeHost) Quit()                        { h.quit = true }

func testSpec() prefabs.PauseSpec {
	return prefabs.PauseSpec{
		Snapshot:      "paused",
		Unpaused:      "unpaused",
		Transition:    0.01,
		ClickInterval: 0.15,
		Whoosh:        "whoosh",
		Click:         "click",
		Hover:         "hit",
	}
}

func newMenu() (*Menu, *fakeAudio, *fakeMixer, *fakeHost) {
	a := &fakeAudio{}
	mx := &fakeMixer{}
	h := &fakeHost{}
	m := New(testSpec(), a, mx, h, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return m, a, mx, h
}

func TestPauseAndResume(t *testing.T) {
	m, a, mx, h := newMenu()
	if h.scale != 1 {
		t.Fatalf("new menu should run at time scale 1, got %v", h.scale)
	}

	m.Update(0.016, true)
	if !m.Paused() || h.scale != 0 || !h.cursorVisible || !h.stopShooting {
		t.Fatalf("pause did not apply: paused=%v host=%+v", m.Paused(), h)
	}
	if mx.snapshots[0] != "paused" || mx.seconds[0] != 0.01 {
		t.Fatalf("expected paused snapshot over 0.01s, got %v %v", mx.snapshots, mx.seconds)
	}

	m.Update(0.016, true)
	if m.Paused() || h.scale != 1 || h.cursorVisible || h.stopShooting {
		t.Fatalf("resume did not apply: paused=%v host=%+v", m.Paused(), h)
	}
	if mx.snapshots[1] != "unpaused" {
		t.Fatalf("expected unpaused snapshot, got %v", mx.snapshots)
	}
	if got := a.count("whoosh"); got != 2 {
		t.Fatalf("expected a whoosh per toggle, got %d", got)
	}
}

func TestResumeRestoresPreviousStopShooting(t *testing.T) {
	m, _, _, h := newMenu()
	h.stopShooting = true

	m.Toggle()
	m.Toggle()
	if !h.stopShooting {
		t.Fatalf("stopShooting set before pausing must survive resume")
	}
}

func TestSliderClickRateLimited(t *testing.T) {
	m, a, _, _ := newMenu()

	m.Update(0.2, false)
	if !m.SliderClick() {
		t.Fatalf("first click after 0.2s should play")
	}
	if m.SliderClick() {
		t.Fatalf("immediate second click should be suppressed")
	}
	m.Update(0.1, false)
	if m.SliderClick() {
		t.Fatalf("click after 0.1s should be suppressed")
	}
	m.Update(0.1, false)
	if !m.SliderClick() {
		t.Fatalf("click after 0.2s should play")
	}
	if got := a.count("click"); got != 2 {
		t.Fatalf("expected 2 clicks, got %d", got)
	}
}

func TestRestartAndQuit(t *testing.T) {
	m, a, _, h := newMenu()
	m.Toggle()

	h.restartErr = errors.New("boom")
	if err := m.Restart(); err == nil {
		t.Fatalf("expected restart error to propagate")
	}
	if m.Paused() || h.scale != 1 || h.restarts != 1 {
		t.Fatalf("restart should resume at scale 1: paused=%v host=%+v", m.Paused(), h)
	}

	m.Toggle()
	m.Quit()
	if !h.musicStopped || !h.quit || m.Paused() {
		t.Fatalf("quit should stop music, resume and quit: host=%+v", h)
	}

	m.Hover()
	if a.count("hit") != 1 {
		t.Fatalf("hover should play the hit cue")
	}
}
