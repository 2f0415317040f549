package configwatcher

import "github.com/bft-labs/listmonk-mcp/pkg/listmonkmcp"

// WithConfigWatcher returns a listmonkmcp Option that reloads the session
// when the server's watch paths change.
//
// Usage:
//
//	srv, err := listmonkmcp.New(cfg,
//	    listmonkmcp.WithConfigLoader(loader),
//	    configwatcher.WithConfigWatcher(configwatcher.Config{
//	        RetryInterval: 5 * time.Second,
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithConfigWatcher(cfg Config) listmonkmcp.Option {
	return listmonkmcp.WithPlugin(New(cfg))
}

// WithDefaultConfigWatcher enables config watching with default settings
// (retry every 5s, debounce 100ms).
func WithDefaultConfigWatcher() listmonkmcp.Option {
	return WithConfigWatcher(DefaultConfig())
}
