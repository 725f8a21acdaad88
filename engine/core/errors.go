package core

import (
	"errors"
)

var (
	// ErrSetupFailure means the rendering context could not be created.
	ErrSetupFailure = errors.New("renderer setup failed")
	// ErrAssetLoad covers every failure of the external model path:
	// network, parse and unusable geometry.
	ErrAssetLoad = errors.New("asset load failed")
	// ErrDegenerateGeometry is returned for meshes with zero or non-finite size.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	ErrDisposed           = errors.New("already disposed")
	ErrNotMounted         = errors.New("viewer is not mounted")
	ErrUnknown            = errors.New("unknown")
)
