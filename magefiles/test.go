//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every package test.
func (Test) All() error {
	if _, err := executeCmd("go", withArgs("test", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the tests of one package, e.g. mage test:pkg ./engine/assets/...
func (Test) Pkg(pkg string) error {
	if _, err := executeCmd("go", withArgs("test", "-v", pkg), withStream()); err != nil {
		return err
	}
	return nil
}
