package sound

// CueID names a sound cue declared in the audio prefab.
type CueID string

// Bus groups cues for mixer snapshots.
type Bus string

const (
	BusMusic Bus = "music"
	BusSFX   Bus = "sfx"
	BusUI    Bus = "ui"
)

// CueSpec describes where a cue's samples live and how loud it plays.
type CueSpec struct {
	ID     CueID   `yaml:"id"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
	Bus    Bus     `yaml:"bus"`
	Loop   bool    `yaml:"loop"`
}

// Player is the subset of *audio.Player the manager drives.
type Player interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	SetVolume(volume float64)
}

// PlayerFactory builds a fresh player for a cue.
type PlayerFactory func(spec CueSpec) (Player, error)

// Instance is a playable handle generated from a cue. Several instances of
// the same cue may exist; each owns its own player.
type Instance struct {
	Cue    CueID
	spec   CueSpec
	player Player
}

// Valid reports whether the instance has something to play.
func (i *Instance) Valid() bool {
	return i != nil && i.player != nil
}
