// Command stagedemo runs the scene pipeline without a window: it loads
// a scene, steps the simulation for a fixed number of frames with a
// scripted input pattern, and prints the frame statistics. With -gpu it
// uploads resources and uniforms through the real device instead of the
// headless recorder.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/app"
	"github.com/gogpu/stage/config"
	"github.com/gogpu/stage/render"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "stagedemo:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfgPath = flag.String("config", "stage.toml", "configuration file")
		root    = flag.String("root", ".", "asset root directory")
		scene   = flag.String("scene", "", "scene file, overriding the config")
		frames  = flag.Int("frames", 600, "frames to simulate")
		dt      = flag.Float64("dt", 1.0/60, "fixed frame delta in seconds")
		seed    = flag.Int64("seed", 1, "random seed")
		useGPU  = flag.Bool("gpu", false, "use the GPU device instead of the headless recorder")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *scene != "" {
		cfg.Assets.Scene = *scene
	}

	lvl, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	stage.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	var device render.Device
	if *useGPU {
		gpu, err := render.NewGPUDevice()
		if err != nil {
			return err
		}
		device = gpu
	} else {
		device = render.NewHeadless()
	}
	defer device.Close()

	a := app.New(cfg, os.DirFS(*root), device,
		app.WithRand(rand.New(rand.NewSource(*seed))))
	if err := a.Init(); err != nil {
		return err
	}
	defer a.Close()

	in := a.Input()
	for frame := 0; frame < *frames; frame++ {
		script(in, frame)
		if err := a.Tick(float32(*dt)); err != nil {
			return err
		}
		if err := a.Draw(); err != nil {
			return err
		}
		if frame%60 == 59 {
			fmt.Println(a.Stats().Title(cfg.Window.Title))
		}
	}

	fmt.Println(a.Stats().Title(cfg.Window.Title))
	return nil
}

// script drives a canned input pattern: grow the population every
// second, hold zoom through the middle of the run, and circle the
// camera object for the back half.
func script(in *stage.Input, frame int) {
	if frame%60 == 0 {
		in.Press(stage.ActionTogglePopulation)
	} else {
		in.Release(stage.ActionTogglePopulation)
	}

	if frame >= 120 && frame < 360 {
		in.Press(stage.ActionZoom)
	} else {
		in.Release(stage.ActionZoom)
	}

	if frame >= 300 {
		in.Press(stage.ActionTurnLeft)
		in.Press(stage.ActionMoveForward)
	}
}
