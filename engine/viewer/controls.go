package viewer

import (
	stdmath "math"

	"github.com/spaghettifunk/heritage/engine/core"
)

const orbitStep = stdmath.Pi / 16

// HandleKey applies the keyboard binding for key and reports whether it was
// consumed.
//
//	R        toggle rotation
//	1-4      3d, front, side, top
//	+ / -    zoom in / out
//	arrows   orbit
func (v *Viewer) HandleKey(key core.KeyCode) bool {
	switch key {
	case core.KEY_R:
		v.SetRotation(!v.State().Rotating)
	case core.KEY_1, core.KEY_2, core.KEY_3, core.KEY_4:
		v.SetViewPreset(Presets[key-core.KEY_1])
	case core.KEY_PLUS, core.KEY_ADD:
		v.Zoom(1)
	case core.KEY_MINUS, core.KEY_SUBTRACT:
		v.Zoom(-1)
	case core.KEY_LEFT:
		v.Orbit(-orbitStep, 0)
	case core.KEY_RIGHT:
		v.Orbit(orbitStep, 0)
	case core.KEY_UP:
		v.Orbit(0, -orbitStep)
	case core.KEY_DOWN:
		v.Orbit(0, orbitStep)
	default:
		return false
	}
	return true
}

// HandleScroll zooms one step per wheel notch.
func (v *Viewer) HandleScroll(notches int8) {
	v.Zoom(float64(notches))
}
