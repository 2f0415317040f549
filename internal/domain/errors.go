package domain

import "errors"

// Domain errors represent error conditions of the embeddable server.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("listmonk-mcp: already running")

	// ErrNotRunning is returned when Stop() or Serve() is called on a stopped instance.
	ErrNotRunning = errors.New("listmonk-mcp: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("listmonk-mcp: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("listmonk-mcp: invalid configuration")

	// ErrNoConfigLoader is returned by Reload when no loader was configured.
	ErrNoConfigLoader = errors.New("listmonk-mcp: no config loader configured")
)
