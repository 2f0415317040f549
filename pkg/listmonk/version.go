package listmonk

// Version information for the listmonk client module.
const (
	// Version is the current version of the client module.
	Version = "0.1.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "0.1.0"
)

// UserAgent is sent with every request unless overridden with WithUserAgent.
const UserAgent = "Listmonk-MCP-Server/" + Version
