package ecs

// System runs once per rendered frame.
type System interface {
	Update(w *World)
}

// FixedSystem runs once per fixed simulation step; dt is the constant step.
type FixedSystem interface {
	FixedUpdate(w *World, dt float64)
}

type Scheduler struct {
	systems []System
	fixed   []FixedSystem
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) AddFixed(system FixedSystem) {
	if system == nil {
		return
	}
	s.fixed = append(s.fixed, system)
}

// Update runs the variable-rate systems and then drops this frame's events.
func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
	w.events.flush()
}

func (s *Scheduler) FixedUpdate(w *World, dt float64) {
	for _, system := range s.fixed {
		system.FixedUpdate(w, dt)
	}
	w.time.FixedTicks++
}

// Step runs one frame. The frame's scaled delta is added to acc and drained
// in fixed steps, at most maxSteps of them, before the variable systems run.
// Backlog still owed after the cap is dropped and returned so the caller can
// report it.
func (s *Scheduler) Step(w *World, acc float64, maxSteps int) (carry, dropped float64) {
	acc += w.time.Delta
	fixed := w.time.FixedDelta
	if fixed > 0 {
		for steps := 0; acc >= fixed && steps < maxSteps; steps++ {
			s.FixedUpdate(w, fixed)
			acc -= fixed
		}
		if acc >= fixed {
			dropped, acc = acc, 0
		}
	}
	s.Update(w)
	return acc, dropped
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
