package system

import (
	"reflect"
	"testing"

	"github.com/milk9111/bowstep/ecs"
	"github.com/milk9111/bowstep/ecs/component"
)

func bowAnimator() *component.Animator {
	return &component.Animator{
		State: "idle",
		Transitions: map[string]string{
			"idle/draw":   "drawn",
			"drawn/shoot": "recoil",
			"recoil/draw": "drawn",
		},
	}
}

func TestFire(t *testing.T) {
	cases := []struct {
		name     string
		triggers []string
		state    string
		fired    []string
	}{
		{"draw", []string{"draw"}, "drawn", []string{"draw"}},
		{"draw_shoot", []string{"draw", "shoot"}, "recoil", []string{"draw", "shoot"}},
		{"shoot_from_idle_ignored", []string{"shoot"}, "idle", nil},
		{"redraw_after_recoil", []string{"draw", "shoot", "draw"}, "drawn", []string{"draw", "shoot", "draw"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			anim := bowAnimator()
			for _, trig := range c.triggers {
				Fire(anim, trig)
			}
			if anim.State != c.state {
				t.Fatalf("state = %q, want %q", anim.State, c.state)
			}
			if !reflect.DeepEqual(anim.Fired, c.fired) {
				t.Fatalf("fired = %v, want %v", anim.Fired, c.fired)
			}
		})
	}
}

func TestFireHistoryCapped(t *testing.T) {
	anim := &component.Animator{State: "a", Transitions: map[string]string{"a/x": "a"}}
	for i := 0; i < maxFiredHistory+5; i++ {
		Fire(anim, "x")
	}
	if len(anim.Fired) != maxFiredHistory {
		t.Fatalf("expected history capped at %d, got %d", maxFiredHistory, len(anim.Fired))
	}
}

func TestAnimationSystemAppliesQueuedTriggers(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.AnimatorComponent.Kind(), bowAnimator()); err != nil {
		t.Fatalf("add animator: %v", err)
	}
	other := ecs.CreateEntity(w)

	fireTrigger(w, e, triggerDraw)
	fireTrigger(w, other, triggerDraw)
	w.Events().Push(ecs.Event{Type: ecs.EventAnimationTrigger, Data: "not a trigger"})

	NewAnimationSystem().Update(w)

	anim, _ := ecs.Get(w, e, component.AnimatorComponent.Kind())
	if anim.State != "drawn" {
		t.Fatalf("expected drawn, got %q", anim.State)
	}
}
