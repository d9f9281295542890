//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds assets/ into resources/ with the local rlres.toml, if any.
func (Run) Pipeline() error {
	mg.Deps(Build.Binary)
	fmt.Println("Run pipeline...")
	if _, err := executeCmd("bin/rlres", withArgs("--config", "rlres.toml"), withStream()); err != nil {
		return err
	}
	return nil
}

// Prints the header of one resource file: mage run:inspect resources/tex/123.res
func (Run) Inspect(path string) error {
	if _, err := executeCmd("go", withArgs("run", ".", "--inspect", path), withStream()); err != nil {
		return err
	}
	return nil
}
