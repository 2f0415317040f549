package listmonkmcp

// Version information for the server module.
const (
	// Version is reported to MCP clients during initialization.
	Version = "0.1.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "0.1.0"
)
