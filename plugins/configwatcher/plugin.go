// Package configwatcher reloads the listmonk session when the files it was
// configured from change on disk.
package configwatcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/listmonk-mcp/pkg/listmonkmcp"
	"github.com/bft-labs/listmonk-mcp/pkg/log"
)

// Plugin watches PluginConfig.WatchPaths and calls PluginConfig.Reload
// after they change. A failed reload is retried every RetryInterval until
// it succeeds, the files change again, or the server stops.
type Plugin struct {
	mu sync.Mutex

	retryInterval time.Duration
	debounceDelay time.Duration

	logger   log.Logger
	reload   func(ctx context.Context) error
	files    map[string]struct{}
	trigger  chan struct{}
	debounce *time.Timer
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// Config holds configuration options for the config watcher plugin.
type Config struct {
	// RetryInterval is the delay between reload attempts after a failure.
	// Default: 5 seconds
	RetryInterval time.Duration

	// DebounceDelay is how long to wait after the last change before
	// reloading. Editors often write a file in several steps.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RetryInterval: 5 * time.Second,
		DebounceDelay: 100 * time.Millisecond,
	}
}

// New creates a new config watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 5 * time.Second
	}
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Plugin{
		retryInterval: cfg.RetryInterval,
		debounceDelay: cfg.DebounceDelay,
		trigger:       make(chan struct{}, 1),
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "configwatcher"
}

// Initialize starts watching. Without watch paths or a reload hook the
// plugin stays idle.
func (p *Plugin) Initialize(ctx context.Context, cfg listmonkmcp.PluginConfig) error {
	p.logger = cfg.Logger
	if p.logger == nil {
		p.logger = log.NewNoopLogger()
	}
	if len(cfg.WatchPaths) == 0 || cfg.Reload == nil {
		p.logger.Warn("config watcher disabled: nothing to watch")
		return nil
	}
	p.reload = cfg.Reload

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch parent directories so files replaced by rename stay watched.
	p.files = make(map[string]struct{}, len(cfg.WatchPaths))
	dirs := make(map[string]struct{})
	for _, path := range cfg.WatchPaths {
		abs, err := filepath.Abs(path)
		if err != nil {
			watcher.Close()
			return err
		}
		p.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			p.logger.Warn("config watcher: cannot watch directory",
				log.String("dir", dir),
				log.Err(err))
		}
	}
	if len(watcher.WatchList()) == 0 {
		watcher.Close()
		p.logger.Warn("config watcher disabled: no watchable directory")
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(2)
	go p.watchLoop(watchCtx, watcher)
	go p.reloadLoop(watchCtx)

	p.logger.Info("config watcher started", log.Any("paths", cfg.WatchPaths))
	return nil
}

// Shutdown stops the watcher and waits for in-flight reloads.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()
	p.wg.Wait()
	return nil
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if _, watched := p.files[filepath.Clean(event.Name)]; !watched {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			p.logger.Debug("config file changed",
				log.String("file", event.Name),
				log.String("op", event.Op.String()))
			p.schedule()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("config watcher error", log.Err(err))
		}
	}
}

// schedule (re)arms the debounce timer.
func (p *Plugin) schedule() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		select {
		case p.trigger <- struct{}{}:
		default:
		}
	})
}

func (p *Plugin) reloadLoop(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.trigger:
			p.reloadWithRetry(ctx)
		}
	}
}

// reloadWithRetry retries until success or cancellation. A new change
// restarts the attempt immediately.
func (p *Plugin) reloadWithRetry(ctx context.Context) {
	for attempt := 1; ; attempt++ {
		err := p.reload(ctx)
		if err == nil {
			p.logger.Info("configuration reloaded", log.Int("attempt", attempt))
			return
		}
		p.logger.Error("configuration reload failed",
			log.Int("attempt", attempt),
			log.Duration("retry_in", p.retryInterval),
			log.Err(err))

		select {
		case <-ctx.Done():
			return
		case <-p.trigger:
		case <-time.After(p.retryInterval):
		}
	}
}

var _ listmonkmcp.Plugin = (*Plugin)(nil)
