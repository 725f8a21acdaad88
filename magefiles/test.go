//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs the unit tests with the race detector.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "-race", "-count=1", "./..."), withStream())
	return err
}

// Renders a few frames of every procedural monument offscreen.
func (Test) Smoke() error {
	mg.Deps(Build.Binary)
	for _, name := range []string{"Taj Mahal", "qutub_minar", "Red Fort"} {
		if _, err := executeCmd(binaryPath, withArgs("render", name, "--frames", "10"), withEnv("HERITAGE_BACKEND=software"), withStream()); err != nil {
			return err
		}
	}
	return nil
}
