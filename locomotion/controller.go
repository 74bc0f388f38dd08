package locomotion

import (
	"log/slog"
	"math"

	"github.com/milk9111/bowstep/common"
	"github.com/milk9111/bowstep/sound"
)

const maxPitch = 89 * math.Pi / 180

// Deps are the host services a controller drives.
type Deps struct {
	Body    Body
	Physics PhysicsQuery
	Terrain TerrainLookup
	Audio   Audio
	Log     *slog.Logger
}

// Input is what the variable-rate tick samples from devices.
type Input struct {
	Horizontal  float64
	Forward     float64
	JumpPressed bool
	LookX       float64
	LookY       float64
}

// Controller is the locomotion and ground-detection state of one character.
// Update runs once per rendered frame and FixedUpdate once per simulation
// step; both must be called from the same goroutine.
type Controller struct {
	cfg  Config
	deps Deps
	log  *slog.Logger

	horizontal float64
	forward    float64
	yaw        float64
	pitch      float64
	frameDelta float64

	history       *GroundHistory
	grounded      bool
	cooldown      int
	sinceFootstep float64

	terrain    TerrainProfile
	footstep   *sound.Instance
	jumpLaunch *sound.Instance
	jumpLand   *sound.Instance
}

// New validates cfg and builds a controller standing on the default terrain.
// Missing dependencies are logged rather than returned; a controller without
// a body or physics query is a setup bug, not a recoverable state.
func New(cfg Config, deps Deps) (*Controller, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	def, err := cfg.Terrain.DefaultProfile()
	if err != nil {
		return nil, err
	}

	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "locomotion")

	if deps.Body == nil {
		log.Error("body component missing")
	}
	if deps.Physics == nil {
		log.Error("physics query missing")
	}
	if deps.Terrain == nil {
		log.Error("terrain lookup missing")
	}
	if deps.Audio == nil {
		log.Error("audio service missing")
	}

	c := &Controller{
		cfg:      cfg,
		deps:     deps,
		log:      log,
		history:  NewGroundHistory(cfg.JumpBuffer),
		grounded: true,
	}
	c.applyTerrain(def)
	return c, nil
}

// IsActive reports whether there is non-zero movement input this frame.
func (c *Controller) IsActive() bool {
	return c.horizontal != 0 || c.forward != 0
}

func (c *Controller) CurrentTerrain() TerrainKind {
	return c.terrain.Kind
}

func (c *Controller) Grounded() bool {
	return c.grounded
}

func (c *Controller) Cooldown() int {
	return c.cooldown
}

func (c *Controller) History() *GroundHistory {
	return c.history
}

// FootstepElapsed is the time accumulated toward the next footstep.
func (c *Controller) FootstepElapsed() float64 {
	return c.sinceFootstep
}

func (c *Controller) Yaw() float64 {
	return c.yaw
}

func (c *Controller) Pitch() float64 {
	return c.pitch
}

// LookDirection is the unit vector the character is facing.
func (c *Controller) LookDirection() common.Vec3 {
	return common.Direction(c.yaw, c.pitch)
}

// Update is the variable-rate tick: cache input, turn, try to jump and run
// footstep cadence.
func (c *Controller) Update(in Input, dt float64) {
	c.frameDelta = dt

	if c.deps.Body != nil {
		v := c.deps.Body.Velocity()
		c.deps.Body.SetVelocity(common.Vec3{Y: v.Y})
	}

	c.horizontal = in.Horizontal
	c.forward = in.Forward
	c.Look(in.LookX, in.LookY)

	if in.JumpPressed {
		c.TryJump()
	}

	c.updateFootsteps(dt)
}

// Halt drops the cached movement input so fixed ticks stop displacing the
// body. Ground sampling and the jump cooldown keep running.
func (c *Controller) Halt() {
	c.horizontal = 0
	c.forward = 0
}

// Look turns the character by raw look deltas scaled by rotation speeds.
func (c *Controller) Look(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	c.yaw = math.Mod(c.yaw+dx*c.cfg.HorizontalRotationSpeed*math.Pi/180, 2*math.Pi)
	c.pitch = common.Clamp(c.pitch-dy*c.cfg.VerticalRotationSpeed*math.Pi/180, -maxPitch, maxPitch)
}

// TryJump starts a jump if grounded and the cooldown has elapsed. It returns
// false, changing nothing, otherwise.
func (c *Controller) TryJump() bool {
	if !c.grounded || c.cooldown != 0 {
		return false
	}
	c.cooldown = c.history.Len()
	if c.deps.Body != nil {
		c.deps.Body.ApplyImpulse(common.Up.Scale(c.cfg.JumpImpulse))
	}
	c.probeTerrain()
	c.play(c.jumpLaunch)
	return true
}

func (c *Controller) updateFootsteps(dt float64) {
	if !c.IsActive() {
		return
	}
	if c.sinceFootstep > c.cfg.FootstepInterval && c.history.At(0) {
		c.sinceFootstep = 0
		c.probeTerrain()
		c.play(c.footstep)
		return
	}
	// Airborne time past the threshold is not banked.
	if c.sinceFootstep <= c.cfg.FootstepInterval {
		c.sinceFootstep += dt
	}
}

// FixedUpdate is the fixed-rate tick: displace horizontally, sample ground
// contact into the history window, and detect landings during a jump.
func (c *Controller) FixedUpdate(dt float64) {
	c.move(dt)

	prev := c.history.Push(c.sampleGround())
	newest := c.history.At(0)
	c.grounded = c.history.Any()

	if c.cooldown > 0 {
		c.cooldown--
		if newest && !prev {
			c.probeTerrain()
			c.play(c.jumpLand)
		}
	}
}

func (c *Controller) move(fixedDt float64) {
	if c.deps.Body == nil || !c.IsActive() {
		return
	}
	dt := fixedDt
	if c.cfg.MoveDelta == MoveDeltaFrame {
		dt = c.frameDelta
	}
	fwd, right := common.Basis(c.yaw)
	step := fwd.Scale(c.forward).Add(right.Scale(c.horizontal)).Scale(c.cfg.MoveSpeed * dt)
	c.deps.Body.SetPosition(c.deps.Body.Position().Add(step))
}

func (c *Controller) probeOrigin() common.Vec3 {
	if c.deps.Body == nil {
		return c.cfg.ProbeOffset
	}
	return c.deps.Body.Position().Add(c.cfg.ProbeOffset)
}

func (c *Controller) sampleGround() bool {
	if c.deps.Physics == nil {
		return false
	}
	return c.deps.Physics.SphereCast(c.probeOrigin(), c.cfg.GroundProbeRadius, common.Down, c.cfg.GroundProbeRange)
}

// probeTerrain casts a ray below the character and reclassifies the terrain.
func (c *Controller) probeTerrain() {
	var (
		hit Hit
		ok  bool
	)
	if c.deps.Physics != nil {
		hit, ok = c.deps.Physics.Raycast(c.probeOrigin(), common.Down, c.cfg.TerrainProbeRange)
	}
	if !ok {
		c.reclassify(nil)
		return
	}
	c.reclassify(&hit)
}

// reclassify switches profiles when the surface below changed kind. Absent
// or unclassified surfaces always reset to the default profile and regenerate
// the cue handles, even when already on the default.
func (c *Controller) reclassify(hit *Hit) {
	if hit != nil && c.deps.Terrain != nil {
		if kind, ok := c.deps.Terrain.TerrainOf(hit.Surface); ok {
			if kind == c.terrain.Kind {
				return
			}
			if p, ok := c.cfg.Terrain.Profile(kind); ok {
				c.applyTerrain(p)
				return
			}
			c.log.Warn("terrain kind has no profile", "kind", kind)
		}
	}
	def, _ := c.cfg.Terrain.DefaultProfile()
	c.applyTerrain(def)
}

func (c *Controller) applyTerrain(p TerrainProfile) {
	if p.Kind != c.terrain.Kind {
		c.log.Debug("terrain changed", "from", c.terrain.Kind, "to", p.Kind)
	}
	c.terrain = p
	if c.deps.Audio == nil {
		return
	}
	c.footstep = c.deps.Audio.NewInstance(p.Footstep)
	c.jumpLaunch = c.deps.Audio.NewInstance(p.JumpLaunch)
	c.jumpLand = c.deps.Audio.NewInstance(p.JumpLand)
}

func (c *Controller) play(inst *sound.Instance) {
	if c.deps.Audio == nil {
		return
	}
	c.deps.Audio.Play(inst)
}
