package component

import "github.com/milk9111/bowstep/sound"

// Audio holds named cue instances. Systems set Play/Stop flags; the audio
// system applies and clears them once per frame.
type Audio struct {
	Names     []string
	Instances []*sound.Instance
	Play      []bool
	Stop      []bool
}

// Index returns the slot of name, or -1.
func (a *Audio) Index(name string) int {
	if a == nil {
		return -1
	}
	for i, n := range a.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// Request flags name to play on the next audio pass.
func (a *Audio) Request(name string) bool {
	i := a.Index(name)
	if i < 0 {
		return false
	}
	a.Play[i] = true
	a.Stop[i] = false
	return true
}

// Cancel flags name to stop on the next audio pass.
func (a *Audio) Cancel(name string) bool {
	i := a.Index(name)
	if i < 0 {
		return false
	}
	a.Stop[i] = true
	a.Play[i] = false
	return true
}

var AudioComponent = NewComponent[Audio]()
