// Package request tracks the lifecycle of single asynchronous HTTP calls and
// echoes caller-supplied correlation values back with each outcome.
package request

import (
	"encoding/json"
	"fmt"
)

// Status is the lifecycle phase of a tracker.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// State is a snapshot of a tracker. Exactly one Status holds at a time.
type State struct {
	Status          Status
	Payload         json.RawMessage
	ErrorMessage    string
	CorrelationID   string
	CorrelationData any
}

// Loading reports whether a call is outstanding.
func (s State) Loading() bool { return s.Status == StatusPending }

// ActionKind tags a state transition.
type ActionKind string

const (
	ActionSend     ActionKind = "SEND"
	ActionResponse ActionKind = "RESPONSE"
	ActionError    ActionKind = "ERROR"
	ActionClear    ActionKind = "CLEAR"
)

// Action is one input to Reduce. Fields not used by Kind are ignored.
type Action struct {
	Kind            ActionKind
	Payload         json.RawMessage
	ErrorMessage    string
	CorrelationID   string
	CorrelationData any
}

// Reduce applies a to s and returns the next state. It never mutates s.
//
// SEND clears payload, error and correlation data and records the new
// correlation id. A failed call also clears the payload so that consumers
// never read data left over from an earlier success.
func Reduce(s State, a Action) (State, error) {
	switch a.Kind {
	case ActionSend:
		return State{
			Status:        StatusPending,
			CorrelationID: a.CorrelationID,
		}, nil
	case ActionResponse:
		return State{
			Status:          StatusSucceeded,
			Payload:         a.Payload,
			CorrelationID:   a.CorrelationID,
			CorrelationData: a.CorrelationData,
		}, nil
	case ActionError:
		return State{
			Status:          StatusFailed,
			ErrorMessage:    a.ErrorMessage,
			CorrelationID:   a.CorrelationID,
			CorrelationData: a.CorrelationData,
		}, nil
	case ActionClear:
		return State{}, nil
	default:
		return s, fmt.Errorf("request: unknown action %q", a.Kind)
	}
}
