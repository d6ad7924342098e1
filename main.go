/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/anima2d/engine"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/testbed"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML or YAML configuration file")
	headless := flag.Bool("headless", false, "run without opening a window")
	frames := flag.Uint64("frames", 0, "stop after this many frames (0 runs until closed)")
	flag.Parse()

	cfg := engine.DefaultConfig()
	cfg.Name = "Anima2D Sandbox"
	cfg.AssetsDir = "assets"
	if *configPath != "" {
		loaded, err := engine.LoadConfig(*configPath)
		if err != nil {
			core.LogFatal("loading configuration: %s", err.Error())
		}
		cfg = loaded
	}
	if *headless {
		cfg.Headless = true
	}
	if _, err := os.Stat(cfg.AssetsDir); cfg.AssetsDir != "" && err != nil {
		core.LogWarn("assets directory %q not found, hot reload disabled", cfg.AssetsDir)
		cfg.AssetsDir = ""
	}

	tb := testbed.NewSandbox(*frames)

	e, err := engine.New(cfg, tb)
	if err != nil {
		core.LogFatal("%s", err.Error())
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal("%s", err.Error())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// stop the loop on sigterm and friends; Run shuts the engine down
	go func() {
		<-sigCh
		e.Terminate()
	}()

	if err := e.Run(); err != nil {
		core.LogFatal("%s", err.Error())
	}
}
