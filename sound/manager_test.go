package sound

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

type fakePlayer struct {
	playing bool
	volume  float64
	plays   int
	rewinds int
}

func (p *fakePlayer) Play()               { p.playing = true; p.plays++ }
func (p *fakePlayer) Pause()              { p.playing = false }
func (p *fakePlayer) Rewind() error       { p.rewinds++; return nil }
func (p *fakePlayer) IsPlaying() bool     { return p.playing }
func (p *fakePlayer) SetVolume(v float64) { p.volume = v }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(t *testing.T, players map[CueID]*fakePlayer, snapshots ...Snapshot) *Manager {
	t.Helper()
	cues := []CueSpec{
		{ID: "step", File: "step.wav", Volume: 0.5},
		{ID: "theme", File: "theme.wav", Bus: BusMusic, Loop: true},
		{ID: "broken", File: "broken.wav"},
	}
	factory := func(spec CueSpec) (Player, error) {
		if spec.ID == "broken" {
			return nil, errors.New("decode failed")
		}
		p := &fakePlayer{}
		players[spec.ID] = p
		return p, nil
	}
	return NewManager(cues, factory, NewMixer(snapshots...), quietLogger())
}

func TestManagerPlayAndStop(t *testing.T) {
	players := map[CueID]*fakePlayer{}
	m := newTestManager(t, players)

	inst := m.NewInstance("step")
	m.Play(inst)
	p := players["step"]
	if !p.playing || p.rewinds != 1 || p.volume != 0.5 {
		t.Fatalf("unexpected player state %+v", p)
	}
	m.Stop(inst)
	if p.playing {
		t.Fatalf("expected stopped player")
	}
}

func TestManagerInvalidInstancesAreSilent(t *testing.T) {
	players := map[CueID]*fakePlayer{}
	m := newTestManager(t, players)

	for _, cue := range []CueID{"missing", "broken"} {
		inst := m.NewInstance(cue)
		if inst.Valid() {
			t.Fatalf("%s: expected invalid instance", cue)
		}
		m.Play(inst)
		m.Stop(inst)
	}
}

func TestManagerLoopsAndFollowsMixer(t *testing.T) {
	players := map[CueID]*fakePlayer{}
	m := newTestManager(t, players, Snapshot{Name: "paused", Volumes: map[Bus]float64{BusMusic: 0.2}})

	inst := m.NewInstance("theme")
	m.Play(inst)
	p := players["theme"]
	p.playing = false

	if !m.Mixer().TransitionTo("paused", 0) {
		t.Fatalf("expected known snapshot")
	}
	m.Update(0.016)
	if !p.playing || p.plays != 2 {
		t.Fatalf("looping cue should restart, plays=%d", p.plays)
	}
	if p.volume != 0.2 {
		t.Fatalf("expected music bus volume 0.2, got %v", p.volume)
	}

	m.StopAll(BusMusic)
	if p.playing {
		t.Fatalf("expected music stopped")
	}
}

func TestMixerTransition(t *testing.T) {
	m := NewMixer(Snapshot{Name: "quiet", Volumes: map[Bus]float64{BusSFX: 0}})
	if m.TransitionTo("nope", 1) {
		t.Fatalf("unknown snapshot should be rejected")
	}
	m.TransitionTo("quiet", 1)
	m.Update(0.5)
	if v := m.Volume(BusSFX); v != 0.5 {
		t.Fatalf("expected half-way volume 0.5, got %v", v)
	}
	m.Update(1)
	if v := m.Volume(BusSFX); v != 0 {
		t.Fatalf("expected finished volume 0, got %v", v)
	}
	if v := m.Volume(BusMusic); v != 1 {
		t.Fatalf("untouched bus should stay at 1, got %v", v)
	}
}

func TestMixerTransitionLandsOnTarget(t *testing.T) {
	tests := []struct {
		name     string
		target   float64
		duration float64
		steps    []float64
	}{
		{name: "instant", target: 0.2, duration: 0, steps: nil},
		{name: "overshoot", target: 0.2, duration: 0.5, steps: []float64{0.3, 0.3}},
		{name: "uneven steps", target: 0.7, duration: 0.3, steps: []float64{0.1, 0.1, 0.1, 0.1}},
		{name: "tiny target", target: 0.1, duration: 1, steps: []float64{0.25, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMixer(Snapshot{Name: "to", Volumes: map[Bus]float64{BusMusic: tt.target}})
			m.TransitionTo("to", tt.duration)
			for _, dt := range tt.steps {
				m.Update(dt)
			}
			if v := m.Volume(BusMusic); v != tt.target {
				t.Fatalf("expected exactly %v, got %v", tt.target, v)
			}
		})
	}
}

func TestMixerMasterScalesBuses(t *testing.T) {
	m := NewMixer()
	m.SetMaster(0.5)
	if v := m.Volume(BusMusic); v != 0.5 {
		t.Fatalf("expected 0.5, got %v", v)
	}
	m.SetMaster(3)
	if m.Master() != 1 {
		t.Fatalf("master should clamp to 1, got %v", m.Master())
	}
	if v := m.Volume(Bus("unknown")); v != 1 {
		t.Fatalf("unknown bus should follow master, got %v", v)
	}
}
