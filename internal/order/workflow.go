package order

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/oceancatch/fishhub/internal/cart"
	"github.com/oceancatch/fishhub/internal/notify"
)

// State of a checkout session.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

// SubmitErrorMessage is the single generic message surfaced when the
// notification endpoint fails; field errors never use it.
const SubmitErrorMessage = "Failed to submit order. Please try again or contact us directly."

// Notifier delivers an assembled order payload to the notification
// endpoint.
type Notifier interface {
	SendOrder(ctx context.Context, payload notify.OrderPayload) error
}

// ValidationError carries the field-keyed messages of a rejected form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "order form validation failed" }

// SubmitError is the single generic failure surfaced when the
// notification endpoint rejects an order or is unreachable.
type SubmitError struct {
	cause error
}

func (e *SubmitError) Error() string { return SubmitErrorMessage }
func (e *SubmitError) Unwrap() error { return e.cause }

// ErrSubmissionInFlight rejects a second submit while one is pending.
type inFlightError struct{}

func (inFlightError) Error() string { return "an order submission is already in progress" }

var ErrSubmissionInFlight error = inFlightError{}

// ErrEmptyCart rejects checkout of an empty cart.
type emptyCartError struct{}

func (emptyCartError) Error() string { return "your order is empty" }

var ErrEmptyCart error = emptyCartError{}

// Workflow drives one session's checkout through
// Idle → Submitting → Submitted, falling back to Idle with an error
// message when the notification endpoint fails. At most one submission
// is in flight at a time; the gate is the Idle state.
type Workflow struct {
	mu       sync.Mutex
	state    State
	lastErr  string
	notifier Notifier
}

func NewWorkflow(notifier Notifier) *Workflow {
	return &Workflow{state: StateIdle, notifier: notifier}
}

// State returns the current checkout state and the retained error
// message from the last failed submission, if any.
func (w *Workflow) State() (State, string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state, w.lastErr
}

// Reset returns a Submitted workflow to Idle so a fresh checkout can
// begin. Called when the order page is entered with an empty cart.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateSubmitting {
		w.state = StateIdle
		w.lastErr = ""
	}
}

// BuildPayload assembles the notification payload from the validated
// form and a snapshot of the cart.
func BuildPayload(f Form, lines []cart.Line, total float64) notify.OrderPayload {
	items := make([]notify.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, notify.OrderItem{
			Name:     l.Name,
			Size:     l.Size,
			Price:    l.Price,
			Quantity: l.Quantity,
		})
	}
	return notify.OrderPayload{
		FullName:     f.FullName,
		Phone:        f.Phone,
		Email:        f.Email,
		Address:      f.Address,
		Instructions: f.Instructions,
		Items:        items,
		Total:        total,
	}
}

// Submit runs one checkout attempt: validate, snapshot the cart, post to
// the notification endpoint, then either clear the cart and finish in
// Submitted, or fall back to Idle keeping the cart and form intact.
//
// Validation failures return *ValidationError without touching the
// network. Endpoint failures return *SubmitError; they are never
// propagated as panics and there is no automatic retry.
func (w *Workflow) Submit(ctx context.Context, f Form, c *cart.Cart) error {
	f = f.Trimmed()
	if fieldErrors := Validate(f); len(fieldErrors) > 0 {
		return &ValidationError{Fields: fieldErrors}
	}

	w.mu.Lock()
	if w.state == StateSubmitting {
		w.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if c.Len() == 0 {
		w.mu.Unlock()
		return ErrEmptyCart
	}
	// a Submitted session with a refilled cart starts a new checkout
	w.state = StateSubmitting
	w.lastErr = ""
	w.mu.Unlock()

	payload := BuildPayload(f, c.Lines(), c.TotalPrice())

	err := w.notifier.SendOrder(ctx, payload)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.state = StateIdle
		w.lastErr = SubmitErrorMessage
		zap.L().Warn("order submission failed",
			zap.String("customer", payload.FullName),
			zap.Float64("total", payload.Total),
			zap.Error(err))
		return &SubmitError{cause: err}
	}

	c.Clear()
	w.state = StateSubmitted
	w.lastErr = ""
	zap.L().Info("order submitted",
		zap.String("customer", payload.FullName),
		zap.Int("items", len(payload.Items)),
		zap.Float64("total", payload.Total))
	return nil
}

// Tracker owns the checkout workflow of every live session.
type Tracker struct {
	mu        sync.Mutex
	workflows map[string]*Workflow
	notifier  Notifier
}

func NewTracker(notifier Notifier) *Tracker {
	return &Tracker{workflows: make(map[string]*Workflow), notifier: notifier}
}

// Get returns the session's workflow, creating an Idle one on first use.
func (t *Tracker) Get(sessionID string) *Workflow {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, found := t.workflows[sessionID]
	if !found {
		w = NewWorkflow(t.notifier)
		t.workflows[sessionID] = w
	}
	return w
}

// Drop removes the session's workflow (session teardown or sweep).
func (t *Tracker) Drop(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.workflows, sessionID)
}

// Len returns the number of tracked sessions.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.workflows)
}
