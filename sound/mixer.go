package sound

import "github.com/milk9111/bowstep/common"

// Snapshot is a named set of bus volumes.
type Snapshot struct {
	Name    string          `yaml:"name"`
	Volumes map[Bus]float64 `yaml:"volumes"`
}

// Mixer interpolates bus volumes between snapshots over unscaled time.
type Mixer struct {
	snapshots map[string]Snapshot
	current   map[Bus]float64
	from      map[Bus]float64
	target    *Snapshot
	duration  float64
	elapsed   float64
	master    float64
}

func NewMixer(snapshots ...Snapshot) *Mixer {
	m := &Mixer{
		snapshots: make(map[string]Snapshot, len(snapshots)),
		current:   map[Bus]float64{BusMusic: 1, BusSFX: 1, BusUI: 1},
		master:    1,
	}
	for _, s := range snapshots {
		m.snapshots[s.Name] = s
	}
	return m
}

// TransitionTo starts blending toward the named snapshot. Unknown names
// return false and leave the mix untouched.
func (m *Mixer) TransitionTo(name string, seconds float64) bool {
	s, ok := m.snapshots[name]
	if !ok {
		return false
	}
	m.from = make(map[Bus]float64, len(m.current))
	for bus, v := range m.current {
		m.from[bus] = v
	}
	m.target = &s
	m.duration = seconds
	m.elapsed = 0
	if seconds <= 0 {
		m.Update(0)
	}
	return true
}

// Update advances an active transition.
func (m *Mixer) Update(dt float64) {
	if m.target == nil {
		return
	}
	m.elapsed += dt
	t := 1.0
	if m.duration > 0 {
		t = common.Clamp(m.elapsed/m.duration, 0, 1)
	}
	for bus, to := range m.target.Volumes {
		if t >= 1 {
			m.current[bus] = to
			continue
		}
		m.current[bus] = common.Lerp(m.from[bus], to, t)
	}
	if t >= 1 {
		m.target = nil
	}
}

// Volume returns the current volume of a bus scaled by the master volume;
// unknown buses play at full bus volume.
func (m *Mixer) Volume(bus Bus) float64 {
	if v, ok := m.current[bus]; ok {
		return v * m.master
	}
	return m.master
}

// SetMaster sets the overall volume, clamped to [0, 1].
func (m *Mixer) SetMaster(v float64) {
	m.master = common.Clamp(v, 0, 1)
}

func (m *Mixer) Master() float64 {
	return m.master
}
