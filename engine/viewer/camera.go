package viewer

import (
	stdmath "math"

	"github.com/charmbracelet/harmonica"
	"github.com/spaghettifunk/heritage/engine/math"
	"github.com/spaghettifunk/heritage/engine/renderer/metadata"
)

type Preset string

const (
	Preset3D    Preset = "3d"
	PresetFront Preset = "front"
	PresetSide  Preset = "side"
	PresetTop   Preset = "top"
)

// Presets lists every view preset in cycling order.
var Presets = []Preset{Preset3D, PresetFront, PresetSide, PresetTop}

func ParsePreset(s string) (Preset, bool) {
	for _, p := range Presets {
		if string(p) == s {
			return p, true
		}
	}
	return Preset3D, false
}

// Orbit is a camera offset from the target in spherical coordinates. Polar is
// measured from +Y, azimuth from +Z towards +X.
type Orbit struct {
	Azimuth  float64
	Polar    float64
	Distance float64
}

// Offset converts the orbit to a cartesian offset.
func (o Orbit) Offset() math.Vec3 {
	sinP := stdmath.Sin(o.Polar)
	return math.NewVec3(
		float32(o.Distance*sinP*stdmath.Sin(o.Azimuth)),
		float32(o.Distance*stdmath.Cos(o.Polar)),
		float32(o.Distance*sinP*stdmath.Cos(o.Azimuth)),
	)
}

// angles returns the azimuth and polar angle of a preset:
//
//	3d     azimuth 45°, polar 60°  (above and in front-right)
//	front  azimuth 0°,  polar 90°  (on +Z, level with the target)
//	side   azimuth 90°, polar 90°  (on +X, level with the target)
//	top    polar 0°                (directly above, looking down)
func (p Preset) angles() (azimuth, polar float64) {
	switch p {
	case PresetFront:
		return 0, stdmath.Pi / 2
	case PresetSide:
		return stdmath.Pi / 2, stdmath.Pi / 2
	case PresetTop:
		return 0, 0
	default:
		return stdmath.Pi / 4, stdmath.Pi / 3
	}
}

type CameraConfig struct {
	FOV             float32 // radians
	Near            float32
	Far             float32
	MinDistance     float64
	MaxDistance     float64
	SpringFrequency float64
	SpringDamping   float64
}

// CameraRig orbits a target. Controls move the goal orbit; Update springs the
// current orbit towards it.
type CameraRig struct {
	Target math.Vec3
	Aspect float32

	config  CameraConfig
	current Orbit
	goal    Orbit
	vel     Orbit
}

func NewCameraRig(config CameraConfig) *CameraRig {
	r := &CameraRig{
		Target: math.NewVec3Zero(),
		Aspect: 16.0 / 9.0,
		config: config,
	}
	r.goal = Orbit{Distance: config.MinDistance}
	r.SetPreset(Preset3D)
	r.Snap()
	return r
}

// SetPreset moves the goal orbit to the preset angles, keeping the distance.
// The azimuth is picked on the turn closest to the current one so the camera
// never spins through full circles.
func (r *CameraRig) SetPreset(p Preset) {
	az, polar := p.angles()
	turns := stdmath.Round((r.current.Azimuth - az) / (2 * stdmath.Pi))
	r.goal.Azimuth = az + turns*2*stdmath.Pi
	r.goal.Polar = polar
}

// Fit aims at the centre of box and backs off until the bounding sphere fits
// in the field of view. The camera jumps there without damping.
func (r *CameraRig) Fit(box math.Extents3D) {
	if box.IsEmpty() {
		return
	}
	r.Target = box.Center()
	radius := float64(box.Size().Length()) / 2
	half := float64(r.config.FOV) / 2
	if half <= 0 {
		half = stdmath.Pi / 8
	}
	r.goal.Distance = r.clampDistance(radius / stdmath.Sin(half) * 1.1)
	r.Snap()
}

// Zoom scales the goal distance by 0.9^delta; positive deltas move closer.
func (r *CameraRig) Zoom(delta float64) {
	r.goal.Distance = r.clampDistance(r.goal.Distance * stdmath.Pow(0.9, delta))
}

// Orbit turns the goal around the target. Polar stays between straight down
// and the horizon.
func (r *CameraRig) Orbit(dAzimuth, dPolar float64) {
	r.goal.Azimuth += dAzimuth
	r.goal.Polar = math.Clamp(r.goal.Polar+dPolar, 0, stdmath.Pi/2)
}

// Snap makes the current orbit equal the goal.
func (r *CameraRig) Snap() {
	r.current = r.goal
	r.vel = Orbit{}
}

// Update advances the damped orbit by deltaTime seconds.
func (r *CameraRig) Update(deltaTime float64) {
	if deltaTime <= 0 {
		return
	}
	spring := harmonica.NewSpring(deltaTime, r.config.SpringFrequency, r.config.SpringDamping)
	r.current.Azimuth, r.vel.Azimuth = spring.Update(r.current.Azimuth, r.vel.Azimuth, r.goal.Azimuth)
	r.current.Polar, r.vel.Polar = spring.Update(r.current.Polar, r.vel.Polar, r.goal.Polar)
	r.current.Distance, r.vel.Distance = spring.Update(r.current.Distance, r.vel.Distance, r.goal.Distance)
}

func (r *CameraRig) Current() Orbit {
	return r.current
}

func (r *CameraRig) Goal() Orbit {
	return r.goal
}

func (r *CameraRig) Position() math.Vec3 {
	return r.Target.Add(r.current.Offset())
}

func (r *CameraRig) GoalPosition() math.Vec3 {
	return r.Target.Add(r.goal.Offset())
}

func (r *CameraRig) CameraData() metadata.CameraData {
	return metadata.CameraData{
		Position: r.Position(),
		Target:   r.Target,
		Up:       math.NewVec3Up(),
		FOV:      r.config.FOV,
		Near:     r.config.Near,
		Far:      r.config.Far,
	}
}

func (r *CameraRig) clampDistance(d float64) float64 {
	return math.Clamp(d, r.config.MinDistance, r.config.MaxDistance)
}
