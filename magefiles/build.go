//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

const binDir = "bin"

type Build mg.Namespace

// Compiles every engine package.
func (Build) Engine() error {
	_, err := executeCmd("go", withArgs("build", "./engine/..."), withStream())
	return err
}

// Builds the testbed binary into bin/.
func (Build) Testbed() error {
	_, err := executeCmd("go", withArgs("build", "-o", binDir+"/testbed", "."), withStream())
	return err
}

// Builds the testbed with assertions compiled out.
func (Build) Release() error {
	_, err := executeCmd("go",
		withArgs("build"),
		withTags("release"),
		withArgs("-o", binDir+"/testbed-release", "."),
		withStream(),
	)
	return err
}

type Test mg.Namespace

// Runs every test with assertions enabled.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs every test against the release build, where assertions only log.
func (Test) Release() error {
	_, err := executeCmd("go", withArgs("test"), withTags("release"), withArgs("./..."), withStream())
	return err
}

// Runs the tests with the race detector; the asset watcher and job workers
// are the concurrent parts.
func (Test) Race() error {
	_, err := executeCmd("go",
		withArgs("test", "-race", "./engine/core/...", "./engine/assets/..."),
		withEnv("CGO_ENABLED", "1"),
		withStream(),
	)
	return err
}
