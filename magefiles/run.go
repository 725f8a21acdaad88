//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Opens the viewer window. MONUMENT picks the monument (default Taj Mahal), LOG_LEVEL the log level.
func (Run) Viewer() error {
	name := os.Getenv("MONUMENT")
	if name == "" {
		name = "Taj Mahal"
	}
	fmt.Println("Run viewer...")
	if _, err := executeCmd("go", withArgs("run", ".", "view", name), logLevelEnv(), withStream()); err != nil {
		return err
	}
	return nil
}

// Tours every catalog monument in a window.
func (Run) Tour() error {
	_, err := executeCmd("go", withArgs("run", ".", "tour"), logLevelEnv(), withStream())
	return err
}
