package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gekko3d/bubbles"
)

func main() {
	configPath := flag.String("config", "", "YAML bubble config")
	frames := flag.Uint64("frames", 240, "frames to simulate before the snapshot")
	out := flag.String("out", "bubbles.png", "output PNG path")
	width := flag.Int("width", 1280, "image width")
	height := flag.Int("height", 720, "image height")
	debug := flag.Bool("debug", false, "enable debug logging")
	configFlags := bubbles.NewConfigFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := configFlags.ResolveConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *frames == 0 || *width <= 0 || *height <= 0 {
		fmt.Fprintln(os.Stderr, "-frames, -width and -height must be positive")
		os.Exit(2)
	}

	snapshot := &SnapshotModule{
		Path:    *out,
		AtFrame: *frames,
		Width:   *width,
		Height:  *height,
		Camera:  bubbles.NewCamera(),
		Colors:  bubbles.StaticColor{0.75, 0.9, 1, 1},
	}
	bubbles.NewAppBuilder().
		UseModule(
			bubbles.LoggingModule{Prefix: "bubbles-snapshot", Debug: *debug},
			bubbles.TimeModule{},
			bubbles.BubblesModule{Config: cfg},
			snapshot,
		).
		Build().
		Run()

	if snapshot.Err != nil {
		fmt.Fprintln(os.Stderr, snapshot.Err)
		os.Exit(1)
	}
}
