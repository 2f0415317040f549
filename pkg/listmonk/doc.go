// Package listmonk is an HTTP client for the listmonk mailing-list server.
//
// A Client is built from an immutable Config, connected once, shared by any
// number of goroutines, and closed when the host is done with it:
//
//	cfg, err := listmonk.NewConfig(listmonk.Params{
//	    URL:        "http://localhost:9000",
//	    Username:   "api",
//	    Password:   "token",
//	    Timeout:    30 * time.Second,
//	    MaxRetries: 3,
//	})
//	if err != nil {
//	    return err
//	}
//	c, err := listmonk.New(cfg, listmonk.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	if err := c.Connect(ctx); err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	subs, err := c.GetSubscribers(ctx, listmonk.SubscriberQuery{PerPage: 50})
//
// # Errors
//
// Every operation returns either the server's decoded JSON envelope or an
// *APIError. Connectivity failures are retried with exponential backoff
// (1s, 2s, 4s, ...) up to MaxRetries times and then surface with
// StatusCode 0. Responses with a non-2xx status are never retried and carry
// the status and decoded body. GetSubscriberByEmail reports an empty result
// as a 404 APIError.
//
// Issuing a request before Connect or after Close returns ErrNotConnected.
package listmonk
