package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_Send(t *testing.T) {
	prev := State{
		Status:          StatusFailed,
		Payload:         json.RawMessage(`{"a":1}`),
		ErrorMessage:    "boom",
		CorrelationID:   "OLD",
		CorrelationData: 7,
	}

	next, err := Reduce(prev, Action{Kind: ActionSend, CorrelationID: "ADD"})
	require.NoError(t, err)
	assert.Equal(t, State{Status: StatusPending, CorrelationID: "ADD"}, next)
	assert.Equal(t, "boom", prev.ErrorMessage, "Reduce must not mutate its input")
}

func TestReduce_ResponseKeepsCorrelationUnchanged(t *testing.T) {
	data := map[string]any{"title": "Apple"}
	next, err := Reduce(State{Status: StatusPending}, Action{
		Kind:            ActionResponse,
		Payload:         json.RawMessage(`{"name":"abc123"}`),
		CorrelationID:   "ADD",
		CorrelationData: data,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, next.Status)
	assert.JSONEq(t, `{"name":"abc123"}`, string(next.Payload))
	assert.Equal(t, "ADD", next.CorrelationID)
	assert.Equal(t, data, next.CorrelationData)
	assert.Empty(t, next.ErrorMessage)
}

func TestReduce_ErrorClearsPayload(t *testing.T) {
	prev := State{Status: StatusSucceeded, Payload: json.RawMessage(`[1]`)}
	next, err := Reduce(prev, Action{Kind: ActionError, ErrorMessage: "unreachable"})
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, next.Status)
	assert.Equal(t, "unreachable", next.ErrorMessage)
	assert.Nil(t, next.Payload)
}

func TestReduce_ClearFromEveryStatus(t *testing.T) {
	for _, st := range []Status{StatusIdle, StatusPending, StatusSucceeded, StatusFailed} {
		next, err := Reduce(State{Status: st, ErrorMessage: "x", CorrelationID: "y"}, Action{Kind: ActionClear})
		require.NoError(t, err)
		assert.Equal(t, State{}, next, "from %s", st)
		assert.Equal(t, StatusIdle, next.Status)
	}
}

func TestReduce_UnknownAction(t *testing.T) {
	prev := State{Status: StatusPending}
	next, err := Reduce(prev, Action{Kind: "RETRY"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RETRY")
	assert.Equal(t, prev, next)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "succeeded", StatusSucceeded.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "status(9)", Status(9).String())
}
