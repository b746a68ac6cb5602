package request

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
)

const maxReasonLen = 200

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request describes one call. CorrelationData and CorrelationID are not
// sent anywhere; they come back unchanged in the resulting State.
type Request struct {
	URL             string
	Method          string
	Body            []byte
	CorrelationData any
	CorrelationID   string
}

// Tracker issues requests and tracks their lifecycle. Every call proceeds
// even when another is pending: nothing is de-duplicated or cancelled, and
// outcomes are applied in the order responses arrive.
type Tracker struct {
	client Doer
	logger *zap.Logger

	// notifyMu is held from before a transition until its subscribers
	// return, so snapshots are delivered in the order transitions apply.
	notifyMu    sync.Mutex
	mu          sync.Mutex
	state       State
	subscribers []func(State)

	inflight sync.WaitGroup
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClient replaces the default HTTP client.
func WithClient(d Doer) Option {
	return func(t *Tracker) { t.client = d }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// WithSubscriber registers fn to receive a snapshot after every transition.
// fn runs on the goroutine that applied the transition. It may read State
// but must not start, complete or clear requests on the same tracker.
func WithSubscriber(fn func(State)) Option {
	return func(t *Tracker) { t.subscribers = append(t.subscribers, fn) }
}

// New creates an idle tracker. The default client has no timeout.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		client: &http.Client{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// State returns the current snapshot.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Clear forces the tracker back to idle. An in-flight call is not
// cancelled and will still overwrite the state when it completes.
func (t *Tracker) Clear() {
	t.dispatch(Action{Kind: ActionClear})
}

// Issue starts req and completes it on a new goroutine. Callers that run
// their own scheduler, such as a Bubble Tea command, use Start and Complete
// instead.
func (t *Tracker) Issue(ctx context.Context, req Request) {
	t.Start(req)
	t.inflight.Add(1)
	go func() {
		defer t.inflight.Done()
		t.Complete(ctx, req)
	}()
}

// Wait blocks until every call started with Issue has completed.
func (t *Tracker) Wait() {
	t.inflight.Wait()
}

// Start moves the tracker to pending for req without performing it.
// Callers that schedule work themselves pair it with Complete.
func (t *Tracker) Start(req Request) State {
	t.logger.Debug("request issued",
		zap.String("method", req.Method),
		zap.String("url", req.URL),
		zap.String("correlation_id", req.CorrelationID),
	)
	return t.dispatch(Action{Kind: ActionSend, CorrelationID: req.CorrelationID})
}

// Complete performs req, applies its outcome and returns the state that
// outcome produced.
func (t *Tracker) Complete(ctx context.Context, req Request) State {
	payload, err := t.perform(ctx, req)
	if err != nil {
		t.logger.Warn("request failed",
			zap.String("correlation_id", req.CorrelationID),
			zap.Error(err),
		)
		return t.dispatch(Action{
			Kind:            ActionError,
			ErrorMessage:    err.Error(),
			CorrelationID:   req.CorrelationID,
			CorrelationData: req.CorrelationData,
		})
	}
	return t.dispatch(Action{
		Kind:            ActionResponse,
		Payload:         payload,
		CorrelationID:   req.CorrelationID,
		CorrelationData: req.CorrelationData,
	})
}

func (t *Tracker) dispatch(a Action) State {
	t.notifyMu.Lock()
	defer t.notifyMu.Unlock()

	t.mu.Lock()
	next, err := Reduce(t.state, a)
	if err != nil {
		cur := t.state
		t.mu.Unlock()
		t.logger.Error("invalid transition", zap.Error(err))
		return cur
	}
	t.state = next
	subs := t.subscribers
	t.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

func (t *Tracker) perform(ctx context.Context, req Request) (json.RawMessage, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Method: req.Method,
			URL:    req.URL,
			Status: resp.StatusCode,
			Reason: errorReason(data),
		}
	}

	if !json.Valid(data) {
		return nil, &TransportError{Method: req.Method, URL: req.URL, Reason: "response body is not valid JSON"}
	}

	return json.RawMessage(data), nil
}

// errorReason extracts a message from an error body. Firebase and the
// bundled backend answer {"error": "..."}; anything else is passed through.
func errorReason(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return truncate(strings.TrimSpace(string(data)), maxReasonLen)
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
