package engine

import "github.com/spaghettifunk/heritage/engine/config"

type ApplicationConfig struct {
	Config *config.Config
	// Headless renders offscreen instead of opening a window.
	Headless bool
	// MaxFrames stops the loop after that many frames; 0 runs until quit.
	MaxFrames uint64
}
