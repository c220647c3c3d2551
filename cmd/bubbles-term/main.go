package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gekko3d/bubbles"
)

func main() {
	configPath := flag.String("config", "", "YAML bubble config")
	watch := flag.Bool("watch", false, "reload -config when it changes")
	fps := flag.Int("fps", 30, "target frames per second")
	frames := flag.Uint64("frames", 0, "exit after this many frames, 0 runs until q is pressed")
	pop := flag.Bool("pop", false, "play a short tone when bubbles respawn")
	logPath := flag.String("log", os.DevNull, "log file, the terminal itself is used for drawing")
	debug := flag.Bool("debug", false, "enable debug logging")
	configFlags := bubbles.NewConfigFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := configFlags.ResolveConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *fps <= 0 {
		*fps = 30
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	modules := []bubbles.Module{
		bubbles.LoggingModule{Prefix: "bubbles-term", Debug: *debug, Output: *logPath},
		bubbles.TimeModule{},
		bubbles.BubblesModule{Config: cfg},
		TerminalModule{
			Screen: screen,
			Camera: bubbles.NewCamera(),
			Colors: bubbles.NewCyclingColor(20 * time.Second),
			Frame:  time.Second / time.Duration(*fps),
		},
		bubbles.LifecycleModule{MaxFrames: *frames},
	}
	if *pop {
		modules = append(modules, PopModule{})
	}
	if *watch && *configPath != "" {
		modules = append(modules, bubbles.ConfigWatchModule{Path: *configPath})
	}

	bubbles.NewAppBuilder().
		UseModule(modules...).
		Build().
		Run()
}
