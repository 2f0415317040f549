package listmonkmcp

import "github.com/bft-labs/listmonk-mcp/internal/app"

// State is the lifecycle state of a Server.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// StateChangeEvent is emitted on every lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// ReloadEvent is emitted after every Reload attempt. Err is nil when the new
// session replaced the old one.
type ReloadEvent struct {
	URL string
	Err error
}

// EventHandler receives server events. Calls are synchronous; handlers
// should return quickly.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnReload(event ReloadEvent)
}

// BaseEventHandler implements EventHandler with no-ops. Embed it to
// override only the events you care about.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent) {}
func (BaseEventHandler) OnReload(ReloadEvent)           {}

// emitter adapts EventHandler to the lifecycle's emitter.
type emitter struct {
	handler EventHandler
}

func (e *emitter) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func (e *emitter) onReload(url string, err error) {
	if e.handler == nil {
		return
	}
	e.handler.OnReload(ReloadEvent{URL: url, Err: err})
}

func convertState(s app.State) State {
	switch s {
	case app.StateStarting:
		return StateStarting
	case app.StateRunning:
		return StateRunning
	case app.StateStopping:
		return StateStopping
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}
