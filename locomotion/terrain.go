package locomotion

import (
	"fmt"

	"github.com/milk9111/bowstep/sound"
)

// TerrainKind classifies a walkable surface.
type TerrainKind string

// TerrainProfile bundles the cues played while on one kind of terrain.
type TerrainProfile struct {
	Kind       TerrainKind `yaml:"kind"`
	Footstep   sound.CueID `yaml:"footstep"`
	JumpLaunch sound.CueID `yaml:"jump_launch"`
	JumpLand   sound.CueID `yaml:"jump_land"`
}

// TerrainSet maps terrain kinds to profiles and names the fallback kind.
type TerrainSet struct {
	Default  TerrainKind      `yaml:"default"`
	Profiles []TerrainProfile `yaml:"profiles"`
}

// Profile looks up the profile for kind.
func (s TerrainSet) Profile(kind TerrainKind) (TerrainProfile, bool) {
	for _, p := range s.Profiles {
		if p.Kind == kind {
			return p, true
		}
	}
	return TerrainProfile{}, false
}

// DefaultProfile returns the profile used when nothing classified is below
// the character.
func (s TerrainSet) DefaultProfile() (TerrainProfile, error) {
	p, ok := s.Profile(s.Default)
	if !ok {
		return TerrainProfile{}, fmt.Errorf("%w: %q", ErrUnknownDefaultTerrain, s.Default)
	}
	return p, nil
}
