// Command blossom runs the gesture-driven particle sculpture.
//
// Usage:
//
//	blossom [flags]
//
// Flags:
//
//	-config <path>    YAML scene configuration (defaults are used when empty)
//	-input <source>   gesture source: cursor, demo or none (default cursor)
//	-headless         run without a window for -frames frames
//	-frames <n>       frame count for headless runs
//	-seed <n>         generator seed, overrides the config
//	-debug            debug logging
//
// Controls: hold the left mouse button and move away from the window centre
// to spread the virtual hands; Esc quits.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/gekko3d/blossom"
	"github.com/gekko3d/blossom/sculpt/config"
	"github.com/gekko3d/blossom/sculpt/gesture"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML scene configuration")
	input := flag.String("input", "cursor", "gesture source: cursor, demo or none")
	headless := flag.Bool("headless", false, "run without a window")
	frames := flag.Int("frames", 600, "frames to simulate in headless mode")
	seed := flag.Int64("seed", 0, "generator seed (overrides config)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log := blossom.NewDefaultLogger("blossom", *debug)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Errorf("%v", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	scene, err := cfg.Scene()
	if err != nil {
		log.Errorf("invalid config: %v", err)
		os.Exit(1)
	}

	builder := blossom.NewAppBuilder().
		UseStates(blossom.StateRunning, blossom.StateExit).
		UseModule(blossom.LoggingModule{Logger: log})

	if *headless {
		builder.UseModule(blossom.TimeModule{FixedStep: time.Second / 60})
	} else {
		builder.UseModule(blossom.TimeModule{})
	}
	builder.UseModule(blossom.SculptureModule{Scene: scene, Seed: cfg.Seed})

	req := gesture.CameraRequest{Width: cfg.Gesture.Width, Height: cfg.Gesture.Height, Facing: cfg.Gesture.Facing}
	var pointer *blossom.PointerCell
	switch *input {
	case "cursor":
		if *headless {
			log.Warnf("cursor input needs a window, running without gestures")
			break
		}
		pointer = &blossom.PointerCell{}
		hands := &gesture.PointerHands{Sample: pointer.Load, FrameRate: cfg.Gesture.FrameRate}
		builder.UseModule(blossom.GestureModule{Camera: hands, Detectors: hands.Detectors(), Request: req})
	case "demo":
		script := demoScript(cfg.Gesture.FrameRate)
		builder.UseModule(blossom.GestureModule{Camera: script, Detectors: script.Detectors(), Request: req})
	case "none":
	default:
		fmt.Fprintf(os.Stderr, "unknown -input %q\n", *input)
		flag.Usage()
		os.Exit(2)
	}

	if *headless {
		builder.UseModule(blossom.HeadlessModule{Frames: *frames})
	} else {
		builder.UseModule(
			blossom.ClientModule{
				WindowWidth:  cfg.Window.Width,
				WindowHeight: cfg.Window.Height,
				WindowTitle:  cfg.Window.Title,
			},
			blossom.InputModule{Pointer: pointer},
		)
	}

	builder.Build().Run()
}

// demoScript spreads and joins two virtual hands in a loop for one minute.
func demoScript(frameRate float64) *gesture.Script {
	if frameRate <= 0 {
		frameRate = 30
	}
	interval := time.Duration(float64(time.Second) / frameRate)
	n := int(60 * frameRate)
	steps := make([]gesture.ScriptStep, n)
	for i := range steps {
		// 8s cycle: joined, spreading, apart, joining
		phase := float32(i%int(8*frameRate)) / float32(8*frameRate)
		var spread float32
		switch {
		case phase < 0.25:
			spread = 0.1
		case phase < 0.5:
			spread = 0.1 + (phase-0.25)*4*0.6
		case phase < 0.75:
			spread = 0.7
		default:
			spread = 0.7 - (phase-0.75)*4*0.6
		}
		steps[i] = gesture.ScriptStep{
			Time:      time.Duration(i) * interval,
			Detection: gesture.TwoHands(0.5-spread/2, 0.5, 0.5+spread/2, 0.5),
		}
	}
	return &gesture.Script{Steps: steps, Interval: interval}
}
