package system

import (
	"io"
	"log/slog"

	"github.com/milk9111/bowstep/ecs"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func runningWorld() *ecs.World {
	w := ecs.NewWorld()
	w.Time().Scale = 1
	w.Time().FixedDelta = 0.02
	return w
}

func eventsOf(w *ecs.World, typ string) []ecs.Event {
	var out []ecs.Event
	for _, evt := range w.Events().Peek() {
		if evt.Type == typ {
			out = append(out, evt)
		}
	}
	return out
}
