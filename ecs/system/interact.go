package system

import (
	"fmt"
	"math"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/bowstep/ecs"
	"github.com/milk9111/bowstep/ecs/component"
	"github.com/milk9111/bowstep/prefabs"
)

// LoreSource produces the text shown when an interactable is inspected.
type LoreSource interface {
	Lore(it *component.Interactable) (string, error)
}

// ScriptLoader returns the source of a named lore script.
type ScriptLoader func(name string) ([]byte, error)

// LoreScripts runs tengo lore scripts. A script receives `name` and `visits`
// and must define `lore`. Compiled scripts are cached until invalidated.
type LoreScripts struct {
	load  ScriptLoader
	cache map[string]*tengo.Compiled
}

func NewLoreScripts(load ScriptLoader) *LoreScripts {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &LoreScripts{load: load, cache: map[string]*tengo.Compiled{}}
}

// Invalidate drops a cached script so the next run recompiles it. An empty
// name drops everything.
func (l *LoreScripts) Invalidate(name string) {
	if name == "" {
		l.cache = map[string]*tengo.Compiled{}
		return
	}
	delete(l.cache, scriptKey(name))
}

func (l *LoreScripts) Lore(it *component.Interactable) (string, error) {
	if it == nil {
		return "", fmt.Errorf("lore: nil interactable")
	}
	if strings.TrimSpace(it.Script) == "" {
		return it.Name, nil
	}

	compiled, err := l.compiled(it.Script)
	if err != nil {
		return "", err
	}
	run := compiled.Clone()
	if err := run.Set("name", it.Name); err != nil {
		return "", fmt.Errorf("lore: %s: set name: %w", it.Script, err)
	}
	if err := run.Set("visits", it.Visits); err != nil {
		return "", fmt.Errorf("lore: %s: set visits: %w", it.Script, err)
	}
	if err := run.Run(); err != nil {
		return "", fmt.Errorf("lore: %s: run: %w", it.Script, err)
	}

	v := run.Get("lore")
	if v.IsUndefined() {
		return "", fmt.Errorf("lore: %s: script did not set lore", it.Script)
	}
	return v.String(), nil
}

func (l *LoreScripts) compiled(name string) (*tengo.Compiled, error) {
	key := scriptKey(name)
	if c, ok := l.cache[key]; ok {
		return c, nil
	}

	src, err := l.load(name)
	if err != nil {
		return nil, fmt.Errorf("lore: load %s: %w", name, err)
	}
	script := tengo.NewScript(src)
	_ = script.Add("name", "")
	_ = script.Add("visits", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("lore: compile %s: %w", name, err)
	}
	l.cache[key] = compiled
	return compiled, nil
}

func scriptKey(name string) string {
	s := strings.TrimPrefix(name, "prefabs/")
	return strings.TrimPrefix(s, "scripts/")
}

// nearestInteractable returns the closest interactable whose range covers
// the point (x, y, z).
func nearestInteractable(w *ecs.World, x, y, z float64) (ecs.Entity, *component.Interactable, bool) {
	var (
		best     ecs.Entity
		bestComp *component.Interactable
		bestDist = math.Inf(1)
	)
	ecs.ForEach2(w, component.InteractableComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, it *component.Interactable, t *component.Transform) {
		d := math.Sqrt((t.X-x)*(t.X-x) + (t.Y-y)*(t.Y-y) + (t.Z-z)*(t.Z-z))
		if d > it.Range || d >= bestDist {
			return
		}
		best, bestComp, bestDist = e, it, d
	})
	return best, bestComp, bestComp != nil
}
