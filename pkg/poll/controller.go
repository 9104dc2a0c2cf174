package poll

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fieldline/fieldline-backend/pkg/apiclient"
	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
	"github.com/fieldline/fieldline-backend/pkg/metrics"
)

const (
	defaultInterval     = 30 * time.Second
	defaultPauseTimeout = 5 * time.Minute

	authRequiredMarker = "authentication required"
)

// FetchFunc loads the current booking set for one console view.
type FetchFunc func(ctx context.Context) ([]apiclient.Booking, error)

// Controller keeps one console view synchronized with the API by background
// polling. The cache is owned exclusively by the controller; callers read it
// through Snapshot and patch it through OptimisticUpdate. A completed poll
// always overwrites the cache wholesale, so optimistic patches survive only
// until the next fetch lands (last fetch wins, no merge).
type Controller struct {
	fetch        FetchFunc
	interval     time.Duration
	pauseTimeout time.Duration
	onAuthError  func()
	metrics      *metrics.PollMetrics
	source       string

	mu          sync.Mutex
	cache       map[int64]apiclient.Booking
	order       []int64
	loading     bool
	lastErr     error
	inFlight    bool
	paused      bool
	running     bool
	authFailed  bool
	cancel      context.CancelFunc
	ticker      *time.Ticker
	resumeTimer *time.Timer
	wg          sync.WaitGroup
}

// ControllerOption configures optional controller behavior.
type ControllerOption func(*Controller)

// WithInterval overrides the background polling interval.
func WithInterval(interval time.Duration) ControllerOption {
	return func(c *Controller) {
		if interval > 0 {
			c.interval = interval
		}
	}
}

// WithPauseTimeout overrides the auto-resume safety timeout armed by Pause.
func WithPauseTimeout(timeout time.Duration) ControllerOption {
	return func(c *Controller) {
		if timeout > 0 {
			c.pauseTimeout = timeout
		}
	}
}

// WithAuthErrorHandler registers the callback fired once per Start when a
// fetch fails authentication.
func WithAuthErrorHandler(fn func()) ControllerOption {
	return func(c *Controller) {
		c.onAuthError = fn
	}
}

// WithMetrics wires poll counters and durations, labeled by source.
func WithMetrics(m *metrics.PollMetrics, source string) ControllerOption {
	return func(c *Controller) {
		c.metrics = m
		c.source = source
	}
}

// NewController builds a controller around fetch. Start must be called before
// any data is available.
func NewController(fetch FetchFunc, opts ...ControllerOption) *Controller {
	controller := &Controller{
		fetch:        fetch,
		interval:     defaultInterval,
		pauseTimeout: defaultPauseTimeout,
		source:       "bookings",
		cache:        make(map[int64]apiclient.Booking),
	}
	for _, opt := range opts {
		opt(controller)
	}
	return controller
}

// Start runs the initial fetch synchronously, then launches the ticker loop.
// Calling Start on a running controller is a no-op. A controller stopped by
// an auth error is revived by calling Start again.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.authFailed = false
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	c.runFetch(runCtx, true)

	c.wg.Add(1)
	go c.loop(runCtx)
}

func (c *Controller) loop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	c.mu.Lock()
	c.ticker = ticker
	if c.paused {
		ticker.Stop()
	}
	c.mu.Unlock()

	defer func() {
		ticker.Stop()
		c.mu.Lock()
		if c.ticker == ticker {
			c.ticker = nil
		}
		c.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			// Pause stops the ticker, but a tick already buffered in the
			// channel can still land here; drop it.
			skip := c.paused || c.authFailed
			c.mu.Unlock()
			if skip {
				continue
			}
			c.runFetch(ctx, false)
		}
	}
}

// Refetch forces an immediate fetch with the loading flag raised. The
// single-flight guard still applies: a refetch during an in-flight fetch is
// a no-op.
func (c *Controller) Refetch(ctx context.Context) {
	c.runFetch(ctx, true)
}

// runFetch performs one fetch unless another is already in flight. Background
// ticks keep loading false so the console does not flicker.
func (c *Controller) runFetch(ctx context.Context, loading bool) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		if c.metrics != nil {
			c.metrics.IncSkipped(c.source)
		}
		return
	}
	c.inFlight = true
	if loading {
		c.loading = true
	}
	c.mu.Unlock()

	started := time.Now()
	bookings, err := c.fetch(ctx)
	if c.metrics != nil {
		c.metrics.ObserveDuration(c.source, time.Since(started))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	c.loading = false

	if err != nil {
		c.lastErr = err
		if c.metrics != nil {
			c.metrics.IncFailure(c.source)
		}
		if isAuthError(err) && !c.authFailed {
			c.authFailed = true
			c.running = false
			if c.cancel != nil {
				c.cancel()
				c.cancel = nil
			}
			if c.onAuthError != nil {
				go c.onAuthError()
			}
		}
		return
	}

	c.lastErr = nil
	if c.metrics != nil {
		c.metrics.IncSuccess(c.source)
	}
	c.cache = make(map[int64]apiclient.Booking, len(bookings))
	c.order = c.order[:0]
	for _, booking := range bookings {
		c.cache[booking.BookingID] = booking
		c.order = append(c.order, booking.BookingID)
	}
}

// Pause stops the interval ticker outright and arms the one-shot auto-resume
// timer so an operator stepping away cannot silence the board forever. An
// in-flight fetch is not aborted.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.paused = true
	if c.ticker != nil {
		c.ticker.Stop()
	}
	c.resumeTimer = time.AfterFunc(c.pauseTimeout, c.Resume)
}

// Resume restarts the interval ticker and disarms the auto-resume timer.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resumeTimer != nil {
		c.resumeTimer.Stop()
		c.resumeTimer = nil
	}
	if !c.paused {
		return
	}
	c.paused = false
	if c.ticker != nil {
		c.ticker.Reset(c.interval)
	}
}

// OptimisticUpdate patches one cached booking in place. The patch is purely
// local; the next completed poll overwrites it with server state.
func (c *Controller) OptimisticUpdate(bookingID int64, patch func(*apiclient.Booking)) {
	if patch == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	booking, ok := c.cache[bookingID]
	if !ok {
		return
	}
	patch(&booking)
	c.cache[bookingID] = booking
}

// Snapshot is a point-in-time copy of the controller state.
type Snapshot struct {
	Bookings []apiclient.Booking
	Loading  bool
	Paused   bool
	Err      error
}

// Snapshot copies the cache in fetch order along with the loading and error
// state. The returned slice is the caller's to keep.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	bookings := make([]apiclient.Booking, 0, len(c.order))
	for _, id := range c.order {
		if booking, ok := c.cache[id]; ok {
			bookings = append(bookings, booking)
		}
	}
	return Snapshot{
		Bookings: bookings,
		Loading:  c.loading,
		Paused:   c.paused,
		Err:      c.lastErr,
	}
}

// Close stops the ticker loop and the auto-resume timer and waits for the
// loop goroutine to exit.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.resumeTimer != nil {
		c.resumeTimer.Stop()
		c.resumeTimer = nil
	}
	c.running = false
	c.mu.Unlock()

	c.wg.Wait()
}

// isAuthError matches the SDK's 401 mapping: the Unauthorized code or the
// marker message it always carries.
func isAuthError(err error) bool {
	if err == nil {
		return false
	}
	if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeUnauthorized {
		return true
	}
	return strings.Contains(err.Error(), authRequiredMarker)
}
