// Package mcptools exposes the listmonk client as MCP tools and resources.
//
// Tools return a JSON document in the text content of the result:
//
//	{"success": true, "subscriber": {...}, "message": "Subscriber a@b.com added successfully"}
//	{"success": false, "error": "Subscriber not found", "status_code": 404}
//
// Failed calls also set IsError on the result. Resources render markdown
// summaries for browsing subscribers, lists, campaigns and templates.
//
// Handlers never hold a client themselves; every call asks the Provider for
// the current session so a reloaded configuration takes effect immediately.
package mcptools
