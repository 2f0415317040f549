package listmonkmcp_test

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/bft-labs/listmonk-mcp/pkg/listmonk"
	"github.com/bft-labs/listmonk-mcp/pkg/listmonkmcp"
	"github.com/bft-labs/listmonk-mcp/pkg/log"
)

// ExampleNew shows how to host the listmonk tools on stdio inside another
// program.
func ExampleNew() {
	cfg, err := listmonk.NewConfig(listmonk.Params{
		URL:      "http://localhost:9000",
		Username: "api",
		Password: "token",
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	logger, err := log.NewZerologAdapter(os.Stderr, "info")
	if err != nil {
		fmt.Println(err)
		return
	}

	srv, err := listmonkmcp.New(listmonkmcp.Config{Listmonk: cfg},
		listmonkmcp.WithLogger(logger),
		listmonkmcp.WithEventHandler(&stateLogger{}),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		fmt.Println(err)
		return
	}
	defer srv.Stop()

	_ = srv.Serve(ctx, os.Stdin, os.Stdout)
}

// stateLogger prints lifecycle transitions and ignores reloads.
type stateLogger struct {
	listmonkmcp.BaseEventHandler
}

func (stateLogger) OnStateChange(e listmonkmcp.StateChangeEvent) {
	fmt.Fprintf(os.Stderr, "%s -> %s (%s)\n", e.Previous, e.Current, e.Reason)
}
