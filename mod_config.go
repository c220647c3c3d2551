package bubbles

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/bubbles/bubble"
)

// LoadConfig reads a YAML bubble config. Keys missing from the file keep
// their defaults.
func LoadConfig(path string) (bubble.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return bubble.Config{}, fmt.Errorf("read bubble config: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (bubble.Config, error) {
	cfg := bubble.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return bubble.Config{}, fmt.Errorf("parse bubble config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return bubble.Config{}, err
	}
	return cfg, nil
}

// ConfigWatcher reloads a config file whenever it changes on disk and hands
// every valid result to onChange. Bursts of events are debounced.
type ConfigWatcher struct {
	path     string
	debounce time.Duration
	onChange func(bubble.Config)
	log      Logger
	watcher  *fsnotify.Watcher
	started  bool
	done     chan struct{}
}

func NewConfigWatcher(path string, log Logger, onChange func(bubble.Config)) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if log == nil {
		log = NewNopLogger()
	}
	return &ConfigWatcher{
		path:     abs,
		debounce: 250 * time.Millisecond,
		onChange: onChange,
		log:      log,
		watcher:  watcher,
		done:     make(chan struct{}),
	}, nil
}

// Start watches the directory holding the file, so editors that replace
// the file by rename are still noticed.
func (cw *ConfigWatcher) Start(ctx context.Context) error {
	if err := cw.watcher.Add(filepath.Dir(cw.path)); err != nil {
		return fmt.Errorf("watch %s: %w", cw.path, err)
	}
	cw.log.Infof("watching bubble config %s", cw.path)
	cw.started = true

	debounceTimer := time.NewTimer(0)
	<-debounceTimer.C

	go func() {
		defer close(cw.done)
		for {
			select {
			case event, ok := <-cw.watcher.Events:
				if !ok {
					return
				}
				if cw.shouldProcessEvent(event) {
					cw.log.Debugf("config change detected: %s %s", event.Op, event.Name)
					debounceTimer.Reset(cw.debounce)
				}

			case err, ok := <-cw.watcher.Errors:
				if !ok {
					return
				}
				cw.log.Errorf("config watcher: %v", err)

			case <-debounceTimer.C:
				cw.reload()

			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (cw *ConfigWatcher) Stop() error {
	err := cw.watcher.Close()
	if cw.started {
		<-cw.done
	}
	return err
}

func (cw *ConfigWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return false
	}
	return filepath.Clean(event.Name) == cw.path
}

func (cw *ConfigWatcher) reload() {
	cfg, err := LoadConfig(cw.path)
	if err != nil {
		cw.log.Warnf("bubble config reload skipped: %v", err)
		return
	}
	cw.log.Infof("bubble config reloaded from %s", cw.path)
	cw.onChange(cfg)
}

// ConfigWatchModule feeds reloads of Path into the BubbleField. Install
// it after BubblesModule.
type ConfigWatchModule struct {
	Path string
}

func (mod ConfigWatchModule) Install(app *App, cmd *Commands) {
	field, ok := Resource[BubbleField](app)
	if !ok {
		panic("ConfigWatchModule requires BubblesModule")
	}

	watcher, err := NewConfigWatcher(mod.Path, app.Logger(), field.Request)
	if err != nil {
		panic(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := watcher.Start(ctx); err != nil {
		cancel()
		panic(err)
	}
	cmd.OnTeardown(func() {
		cancel()
		if err := watcher.Stop(); err != nil {
			app.Logger().Warnf("config watcher stop: %v", err)
		}
	})
}
