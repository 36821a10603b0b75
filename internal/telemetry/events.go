package telemetry

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Severity is the console event log's severity level, adapted from the
// reference corpus's SimulationEvent severity coloring.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityError
	SeverityCritical
)

var severityColors = map[Severity]*color.Color{
	SeverityInfo:     color.New(color.FgGreen),
	SeverityWarn:     color.New(color.FgYellow),
	SeverityError:    color.New(color.FgRed),
	SeverityCritical: color.New(color.FgRed, color.Bold),
}

func (s Severity) label() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarn:
		return "WARN"
	case SeverityError:
		return "ERROR"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// EventType enumerates the swarm-level events worth surfacing to the
// console independently of the per-tick CSV log: mode transitions, latched
// faults, the readiness latch, and an overrun halt.
type EventType string

const (
	EventModeTransition EventType = "mode_transition"
	EventFault          EventType = "fault"
	EventReadinessLatch EventType = "readiness_latch"
	EventOverrun        EventType = "overrun"
)

// Event is one console-logged occurrence, correlated with a UUID the way
// the reference corpus correlates entities and events.
type Event struct {
	ID       uuid.UUID
	At       time.Time
	Type     EventType
	Severity Severity
	Agent    string
	Message  string
}

// EventLog prints events to the console with fatih/color severity coding,
// the same library the reference corpus's SimulationLogger uses for its
// event stream.
type EventLog struct {
	NoColor bool
}

// Emit constructs and prints an event.
func (l *EventLog) Emit(now time.Time, typ EventType, sev Severity, agent, message string) Event {
	ev := Event{ID: uuid.New(), At: now, Type: typ, Severity: sev, Agent: agent, Message: message}
	l.print(ev)
	return ev
}

func (l *EventLog) print(ev Event) {
	line := fmt.Sprintf("[%s] %-16s %-8s %s", ev.At.Format("15:04:05.000"), ev.Agent, ev.Type, ev.Message)
	if l.NoColor {
		fmt.Println(ev.Severity.label(), line)
		return
	}
	c := severityColors[ev.Severity]
	c.Println(ev.Severity.label(), line)
}
