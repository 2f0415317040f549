// Package listmonkmcp embeds the listmonk MCP server in other applications.
//
// A Server owns one listmonk session and exposes it to MCP clients as tools
// (subscribers, lists, campaigns, templates, transactional email, health)
// and markdown resources under the listmonk:// scheme.
//
// Basic usage:
//
//	cfg, err := listmonk.NewConfig(listmonk.Params{
//	    URL:      "http://localhost:9000",
//	    Username: "api",
//	    Password: "token",
//	})
//	if err != nil {
//	    return err
//	}
//
//	srv, err := listmonkmcp.New(listmonkmcp.Config{Listmonk: cfg},
//	    listmonkmcp.WithLogger(logger),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//	defer srv.Stop()
//
//	return srv.Serve(ctx, os.Stdin, os.Stdout)
//
// # Lifecycle
//
// A Server moves through Stopped, Starting, Running and Stopping. Start
// fails, and the server is Crashed, when the listmonk health check or a
// plugin initialization fails. Stop may be called from any goroutine; it
// unblocks Serve.
//
// # Reload
//
// With WithConfigLoader, Reload builds and connects a new session before
// swapping it in. In-flight tool calls finish on the session they started
// with. A failed reload leaves the current session untouched.
//
// # Plugins
//
// Plugins implement Name, Initialize and Shutdown. See plugins/configwatcher
// for hot reload on file changes and plugins/metrics for a Prometheus
// endpoint.
package listmonkmcp
