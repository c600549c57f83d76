package atoll

import (
	"fmt"
	"log/slog"
	"time"
)

type LogEvent interface {
	EventName() string
	Message() string
	LogLevel() slog.Level
	LogAttrs() []slog.Attr
}

type baseEvent struct {
	EventTime time.Time
}

func newBaseEvent() baseEvent {
	return baseEvent{EventTime: time.Now()}
}

func (e baseEvent) baseAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("component", "atoll.session"),
		slog.Time("event_time", e.EventTime),
	}
}

// ResolveFailedEvent is reported when a contact point fails to resolve.
// The session tolerates the failure and continues with the remaining
// contact points.
type ResolveFailedEvent struct {
	baseEvent
	Hostname string
	Port     int
	Error    error
}

func (e ResolveFailedEvent) EventName() string { return "resolve_failed" }
func (e ResolveFailedEvent) Message() string {
	return fmt.Sprintf("Unable to resolve %s:%d", e.Hostname, e.Port)
}
func (e ResolveFailedEvent) LogLevel() slog.Level { return slog.LevelWarn }
func (e ResolveFailedEvent) LogAttrs() []slog.Attr {
	attrs := e.baseAttrs()
	attrs = append(attrs,
		slog.String("event", e.EventName()),
		slog.String("hostname", e.Hostname),
		slog.Int("port", e.Port),
	)
	if e.Error != nil {
		attrs = append(attrs, slog.String("error", e.Error.Error()))
	}
	return attrs
}

// PoolBootstrapEvent is reported once per connect attempt, when the session
// starts establishing the full connection matrix across hosts and workers.
type PoolBootstrapEvent struct {
	baseEvent
	Hosts              int
	Workers            int
	PendingConnections int
}

func (e PoolBootstrapEvent) EventName() string { return "pool_bootstrap" }
func (e PoolBootstrapEvent) Message() string {
	return fmt.Sprintf("Bootstrapping pools for %d hosts across %d workers", e.Hosts, e.Workers)
}
func (e PoolBootstrapEvent) LogLevel() slog.Level { return slog.LevelInfo }
func (e PoolBootstrapEvent) LogAttrs() []slog.Attr {
	attrs := e.baseAttrs()
	attrs = append(attrs,
		slog.String("event", e.EventName()),
		slog.Int("hosts", e.Hosts),
		slog.Int("workers", e.Workers),
		slog.Int("pending_connections", e.PendingConnections),
	)
	return attrs
}

// SessionReadyEvent is reported when every pool connection has been
// established and the session starts accepting traffic.
type SessionReadyEvent struct {
	baseEvent
	Hosts int
}

func (e SessionReadyEvent) EventName() string    { return "session_ready" }
func (e SessionReadyEvent) Message() string      { return "Session is ready" }
func (e SessionReadyEvent) LogLevel() slog.Level { return slog.LevelInfo }
func (e SessionReadyEvent) LogAttrs() []slog.Attr {
	attrs := e.baseAttrs()
	attrs = append(attrs,
		slog.String("event", e.EventName()),
		slog.Int("hosts", e.Hosts),
	)
	return attrs
}

// AllWorkersBusyEvent is reported when a request is failed because every
// I/O worker refused it.
type AllWorkersBusyEvent struct {
	baseEvent
	Workers int
}

func (e AllWorkersBusyEvent) EventName() string    { return "all_workers_busy" }
func (e AllWorkersBusyEvent) Message() string      { return "All workers are busy" }
func (e AllWorkersBusyEvent) LogLevel() slog.Level { return slog.LevelWarn }
func (e AllWorkersBusyEvent) LogAttrs() []slog.Attr {
	attrs := e.baseAttrs()
	attrs = append(attrs,
		slog.String("event", e.EventName()),
		slog.Int("workers", e.Workers),
	)
	return attrs
}

// SessionClosedEvent is reported when every worker has been joined and the
// session loop stops.
type SessionClosedEvent struct {
	baseEvent
}

func (e SessionClosedEvent) EventName() string    { return "session_closed" }
func (e SessionClosedEvent) Message() string      { return "Session closed" }
func (e SessionClosedEvent) LogLevel() slog.Level { return slog.LevelInfo }
func (e SessionClosedEvent) LogAttrs() []slog.Attr {
	attrs := e.baseAttrs()
	attrs = append(attrs, slog.String("event", e.EventName()))
	return attrs
}
