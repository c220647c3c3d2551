package bubbles

import (
	"flag"
	"math"
	"strconv"

	"github.com/gekko3d/bubbles/bubble"
)

// ConfigFlags binds the bubble config to command line flags. Only flags
// given on the command line override a loaded config.
type ConfigFlags struct {
	fs     *flag.FlagSet
	values bubble.Config
	count  uint
}

func NewConfigFlags(fs *flag.FlagSet) *ConfigFlags {
	f := &ConfigFlags{fs: fs, values: bubble.DefaultConfig()}
	f.count = uint(f.values.Count)
	fs.UintVar(&f.count, "count", f.count, "number of bubbles")
	fs.Func("speed", "base rise speed", floatFlag(&f.values.BaseSpeed))
	fs.Func("size", "bubble radius in world units", floatFlag(&f.values.BubbleSize))
	fs.Func("opacity", "bubble opacity in [0,1]", floatFlag(&f.values.Opacity))
	fs.BoolVar(&f.values.Repeat, "repeat", f.values.Repeat, "respawn bubbles that leave the top of the field")
	fs.Uint64Var(&f.values.Seed, "seed", f.values.Seed, "random seed, 0 seeds from the clock")
	return f
}

// Apply copies every flag set on the command line into cfg.
func (f *ConfigFlags) Apply(cfg bubble.Config) (bubble.Config, error) {
	if f.count > math.MaxUint32 {
		return bubble.Config{}, &bubble.ConfigError{Field: "count", Reason: "exceeds 4294967295"}
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "count":
			cfg.Count = uint32(f.count)
		case "speed":
			cfg.BaseSpeed = f.values.BaseSpeed
		case "size":
			cfg.BubbleSize = f.values.BubbleSize
		case "opacity":
			cfg.Opacity = f.values.Opacity
		case "repeat":
			cfg.Repeat = f.values.Repeat
		case "seed":
			cfg.Seed = f.values.Seed
		}
	})
	return cfg, nil
}

// ResolveConfig loads path when it is set, then applies the flags.
func (f *ConfigFlags) ResolveConfig(path string) (bubble.Config, error) {
	cfg := bubble.DefaultConfig()
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return bubble.Config{}, err
		}
		cfg = loaded
	}
	cfg, err := f.Apply(cfg)
	if err != nil {
		return bubble.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return bubble.Config{}, err
	}
	return cfg, nil
}

func floatFlag(dst *float32) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return err
		}
		*dst = float32(v)
		return nil
	}
}
