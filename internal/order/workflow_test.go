package order

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceancatch/fishhub/internal/cart"
	"github.com/oceancatch/fishhub/internal/domain"
	"github.com/oceancatch/fishhub/internal/notify"

	pkgerrors "github.com/pkg/errors"
)

// fakeNotifier records payloads and answers with a scripted result.
type fakeNotifier struct {
	mu       sync.Mutex
	payloads []notify.OrderPayload
	err      error
	block    chan struct{}
}

func (f *fakeNotifier) SendOrder(ctx context.Context, payload notify.OrderPayload) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	f.payloads = append(f.payloads, payload)
	f.mu.Unlock()
	return f.err
}

func (f *fakeNotifier) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payloads)
}

func filledCart() *cart.Cart {
	c := cart.New()
	c.AddItem(domain.Product{
		ID:        "fresh-atlantic-salmon",
		Name:      "Fresh Atlantic Salmon",
		Price:     12.5,
		Unit:      "per lb",
		Available: true,
		Sizes:     []string{"Small Fillet", "Large Fillet"},
	}, 2, "Small Fillet")
	return c
}

func TestSubmitSuccessClearsCartAndFinishesSubmitted(t *testing.T) {
	notifier := &fakeNotifier{}
	wf := NewWorkflow(notifier)
	c := filledCart()

	err := wf.Submit(context.Background(), validForm(), c)

	require.NoError(t, err)
	state, lastErr := wf.State()
	assert.Equal(t, StateSubmitted, state)
	assert.Empty(t, lastErr)
	assert.Equal(t, 0, c.Len())
	require.Equal(t, 1, notifier.calls())

	payload := notifier.payloads[0]
	assert.Equal(t, "John Doe", payload.FullName)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "Fresh Atlantic Salmon", payload.Items[0].Name)
	assert.Equal(t, "Small Fillet", payload.Items[0].Size)
	assert.Equal(t, 2, payload.Items[0].Quantity)
	assert.InDelta(t, 25.0, payload.Total, 1e-9)
}

func TestSubmitEndpointFailureKeepsCartAndReturnsToIdle(t *testing.T) {
	notifier := &fakeNotifier{err: pkgerrors.New("boom")}
	wf := NewWorkflow(notifier)
	c := filledCart()

	err := wf.Submit(context.Background(), validForm(), c)

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Equal(t, SubmitErrorMessage, submitErr.Error())

	state, lastErr := wf.State()
	assert.Equal(t, StateIdle, state)
	assert.Equal(t, SubmitErrorMessage, lastErr)
	assert.Equal(t, 1, c.Len(), "cart must survive a failed submission")
}

func TestSubmitValidationFailureNeverContactsNetwork(t *testing.T) {
	notifier := &fakeNotifier{}
	wf := NewWorkflow(notifier)
	c := filledCart()

	f := validForm()
	f.Email = "not-an-email"
	err := wf.Submit(context.Background(), f, c)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "email")
	assert.Equal(t, 0, notifier.calls())

	state, _ := wf.State()
	assert.Equal(t, StateIdle, state)
	assert.Equal(t, 1, c.Len())
}

func TestSubmitEmptyCartRejected(t *testing.T) {
	notifier := &fakeNotifier{}
	wf := NewWorkflow(notifier)

	err := wf.Submit(context.Background(), validForm(), cart.New())

	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, notifier.calls())
}

func TestSubmitGatesConcurrentSubmissions(t *testing.T) {
	notifier := &fakeNotifier{block: make(chan struct{})}
	wf := NewWorkflow(notifier)
	c := filledCart()

	done := make(chan error, 1)
	go func() {
		done <- wf.Submit(context.Background(), validForm(), c)
	}()

	// wait for the first submission to take the gate
	require.Eventually(t, func() bool {
		state, _ := wf.State()
		return state == StateSubmitting
	}, time.Second, 5*time.Millisecond)

	err := wf.Submit(context.Background(), validForm(), c)
	require.ErrorIs(t, err, ErrSubmissionInFlight)

	close(notifier.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, notifier.calls())
}

func TestResetReturnsSubmittedToIdle(t *testing.T) {
	notifier := &fakeNotifier{}
	wf := NewWorkflow(notifier)
	c := filledCart()

	require.NoError(t, wf.Submit(context.Background(), validForm(), c))

	wf.Reset()

	state, lastErr := wf.State()
	assert.Equal(t, StateIdle, state)
	assert.Empty(t, lastErr)
}

func TestBuildPayloadSnapshotsFormAndCart(t *testing.T) {
	c := filledCart()

	payload := BuildPayload(validForm().Trimmed(), c.Lines(), c.TotalPrice())

	assert.Equal(t, "John Doe", payload.FullName)
	assert.Equal(t, "+1 (555) 123-4567", payload.Phone)
	assert.Equal(t, "john@example.com", payload.Email)
	assert.Equal(t, "Ring the bell twice", payload.Instructions)
	require.Len(t, payload.Items, 1)
	assert.InDelta(t, 25.0, payload.Total, 1e-9)
}

func TestTracker(t *testing.T) {
	tr := NewTracker(&fakeNotifier{})

	a := tr.Get("session-a")
	assert.Same(t, a, tr.Get("session-a"))
	assert.NotSame(t, a, tr.Get("session-b"))
	assert.Equal(t, 2, tr.Len())

	tr.Drop("session-a")
	assert.Equal(t, 1, tr.Len())
}
