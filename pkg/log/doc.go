// Package log provides the logging abstraction used by listmonk-mcp components.
//
// The Logger interface keeps the client library and the MCP server independent
// of any logging backend. A zerolog adapter and a no-op logger are provided.
//
// # Usage
//
// Log to stderr through zerolog at a listmonk-style level name:
//
//	logger, err := log.NewZerologAdapter(os.Stderr, "INFO")
//
// Or discard everything in tests:
//
//	logger := log.NewNoopLogger()
//
// Standard output is reserved for the MCP stdio transport, so never point a
// logger at os.Stdout when running the server.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package log
