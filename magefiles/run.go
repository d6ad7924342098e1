//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the testbed. TESTBED_CONFIG selects a configuration file.
func (Run) Testbed() error {
	mg.Deps(Build.Testbed)
	args := []string{}
	if cfg := os.Getenv("TESTBED_CONFIG"); cfg != "" {
		args = append(args, "-config", cfg)
	}
	fmt.Println("Run testbed...")
	_, err := executeCmd(binDir+"/testbed", withArgs(args...), withStream())
	return err
}

// Runs the testbed without opening a window.
func (Run) Headless() error {
	mg.Deps(Build.Testbed)
	_, err := executeCmd(binDir+"/testbed", withArgs("-headless", "-frames", "600"), withStream())
	return err
}
