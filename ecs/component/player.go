package component

import "github.com/milk9111/bowstep/sound"

// PlayerHub is the authoritative player state other systems are handed.
type PlayerHub struct {
	Health float64
	Music  sound.CueID

	ArrowPrefabs  []string
	SelectedArrow int
	StopShooting  bool
	Drawing       bool

	LoreVisible bool
	LoreText    string

	started bool
}

// Started reports and latches the first update after spawn.
func (h *PlayerHub) Started() bool {
	if h.started {
		return true
	}
	h.started = true
	return false
}

// ArrowPrefab is the prefab file new arrows are built from.
func (h *PlayerHub) ArrowPrefab() string {
	if len(h.ArrowPrefabs) == 0 {
		return ""
	}
	if h.SelectedArrow < 0 || h.SelectedArrow >= len(h.ArrowPrefabs) {
		return h.ArrowPrefabs[0]
	}
	return h.ArrowPrefabs[h.SelectedArrow]
}

var PlayerHubComponent = NewComponent[PlayerHub]()
