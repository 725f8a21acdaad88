//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Downloads the modules and builds the heritage binary into bin/.
func (Build) Binary() error {
	mg.Deps(Build.Deps)
	if _, err := executeCmd("go", withArgs("build", "-o", binaryPath, "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs go mod download.
func (Build) Deps() error {
	_, err := executeCmd("go", withArgs("mod", "download"))
	return err
}

// Writes every catalog monument as .glb into build/models.
func (Build) Models() error {
	mg.Deps(Build.Binary)
	_, err := executeCmd(binaryPath, withArgs("export", "--all", "--dir", "build/models"), withStream())
	return err
}
