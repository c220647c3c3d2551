package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/bubbles"
	"github.com/gekko3d/bubbles/gpu"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML bubble config")
	watch := flag.Bool("watch", false, "reload -config when it changes")
	metricsAddr := flag.String("metrics-addr", "", "serve prometheus metrics on this address")
	frames := flag.Uint64("frames", 0, "exit after this many frames, 0 runs until the window closes")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
	static := flag.Bool("static-color", false, "keep the ambient tint fixed instead of cycling hue")
	debug := flag.Bool("debug", false, "enable debug logging")
	configFlags := bubbles.NewConfigFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := configFlags.ResolveConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *watch && *configPath == "" {
		fmt.Fprintln(os.Stderr, "-watch requires -config")
		os.Exit(2)
	}

	var colors bubbles.ColorProvider = bubbles.NewCyclingColor(20 * time.Second)
	if *static {
		colors = bubbles.StaticColor{0.75, 0.9, 1, 1}
	}

	modules := []bubbles.Module{
		bubbles.LoggingModule{Prefix: "bubbles", Debug: *debug},
		bubbles.TimeModule{},
		bubbles.BubblesModule{Config: cfg},
		bubbles.MetricsModule{Addr: *metricsAddr},
		gpu.NewPlatformWindow(*width, *height, "Bubbles"),
		gpu.InputModule{},
		gpu.BubbleClientModule{
			Camera:     bubbles.NewCamera(),
			Colors:     colors,
			ClearColor: wgpu.Color{R: 0.02, G: 0.05, B: 0.12, A: 1},
		},
		bubbles.LifecycleModule{MaxFrames: *frames},
	}
	if *watch {
		modules = append(modules, bubbles.ConfigWatchModule{Path: *configPath})
	}

	bubbles.NewAppBuilder().
		UseModule(modules...).
		Build().
		Run()
}
