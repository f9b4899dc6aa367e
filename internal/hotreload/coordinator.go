// Package hotreload serializes user-code reloads against the editor's update
// loop: pause, run the reload task under a timeout, and resume no matter how
// the task ends.
package hotreload

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrReloadTimeout marks a reload task that did not settle within the
// configured window.
var ErrReloadTimeout = errors.New("hot reload timed out")

// DefaultTimeout bounds a reload attempt when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// PausableLoop is the host update loop handle. The coordinator reads the
// paused flag before pausing and restores that exact value on resume, so a
// loop that was already paused stays paused afterward.
type PausableLoop interface {
	Paused() bool
	SetPaused(paused bool)
}

// Result is what a reload task reports back on success.
type Result struct {
	UpdatedInstances int
	UpdatedSystems   int
}

// ReloadTask is the caller-supplied reload work: compile and load new user
// code. The context carries the attempt's timeout; the task should observe
// it, but the coordinator cannot forcibly stop a task that ignores it. A
// timed-out task keeps running in the background and its late result is
// discarded.
type ReloadTask func(ctx context.Context) (*Result, error)

// Options tune a single reload attempt.
type Options struct {
	// Timeout for the task; DefaultTimeout when zero.
	Timeout time.Duration

	// KeepPausedOnFailure leaves the loop paused when the task fails or
	// times out, for callers that want to inspect state before manually
	// resuming. The default restores the loop's prior paused state.
	KeepPausedOnFailure bool

	// OnPhaseChange is invoked synchronously on every phase transition of
	// this attempt. Panics in the observer are recovered and logged; they
	// never break the reload.
	OnPhaseChange func(Status)
}

// Coordinator is a single-flight hot-reload state machine. Concurrent
// PerformReload calls queue cooperatively: a second caller waits for the
// prior attempt to settle, then proceeds as its own attempt.
type Coordinator struct {
	log *zap.Logger

	mu       sync.Mutex
	loop     PausableLoop
	status   Status
	observer func(Status) // current attempt's OnPhaseChange
	inflight chan struct{}
	gen      uint64 // bumped when an attempt starts or settles
}

// genKey carries the attempt generation in the task context so progress
// reports from a task that outlived its attempt are dropped.
type genKey struct{}

func New(log *zap.Logger) *Coordinator {
	return &Coordinator{
		log:    log,
		status: Status{Phase: PhaseIdle},
	}
}

// Bind attaches the pausable host loop. Must be called once before reloads;
// an unbound coordinator still runs tasks but logs a warning and skips the
// pause/resume discipline.
func (c *Coordinator) Bind(loop PausableLoop) {
	c.mu.Lock()
	c.loop = loop
	c.mu.Unlock()
}

// Status returns a snapshot copy of the coordinator state.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// PerformReload pauses the host loop, runs task under the attempt timeout,
// and resumes the loop. The only unconditional guarantee is that the loop's
// paused flag is restored to its pre-call value when the attempt settles,
// unless KeepPausedOnFailure is set and the task failed.
//
// Task errors and timeouts propagate to the caller after the loop has been
// resumed; only the caller can decide how to surface the failure.
func (c *Coordinator) PerformReload(ctx context.Context, task ReloadTask, opts Options) (*Result, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	// Single flight: wait for any prior attempt to settle, then claim.
	var done chan struct{}
	for {
		c.mu.Lock()
		if c.inflight == nil {
			done = make(chan struct{})
			c.inflight = done
			c.mu.Unlock()
			break
		}
		wait := c.inflight
		c.mu.Unlock()
		select {
		case <-wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	defer func() {
		c.mu.Lock()
		// Reset may have already released this attempt's guard.
		if c.inflight == done {
			close(done)
			c.inflight = nil
		}
		c.observer = nil
		c.mu.Unlock()
	}()

	c.mu.Lock()
	loop := c.loop
	c.status = Status{Phase: PhaseIdle, StartTime: time.Now()}
	c.observer = opts.OnPhaseChange
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	if loop == nil {
		c.log.Warn("hot reload requested before Bind; running task without pausing the loop")
	}

	// Snapshot the paused flag so resume restores the prior state, not an
	// unconditional false.
	wasPaused := false
	if loop != nil {
		wasPaused = loop.Paused()
	}

	c.setPhase(PhasePreparing)
	if loop != nil {
		loop.SetPaused(true)
	}

	c.setPhase(PhaseCompiling)

	type taskOutcome struct {
		res *Result
		err error
	}
	outcome := make(chan taskOutcome, 1)
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	tctx = context.WithValue(tctx, genKey{}, gen)
	go func() {
		res, err := task(tctx)
		outcome <- taskOutcome{res, err}
	}()

	var res *Result
	var err error
	select {
	case o := <-outcome:
		res, err = o.res, o.err
	case <-tctx.Done():
		if errors.Is(tctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %v", ErrReloadTimeout, timeout)
		} else {
			err = tctx.Err()
		}
	}

	// The attempt has settled; a task still running in the background must
	// not touch coordinator state through its progress reports.
	c.mu.Lock()
	c.gen++
	c.mu.Unlock()

	if err != nil {
		c.mu.Lock()
		c.status.Err = err.Error()
		c.mu.Unlock()
		c.setPhase(PhaseFailed)

		if loop != nil && !opts.KeepPausedOnFailure {
			loop.SetPaused(wasPaused)
		}
		c.log.Error("hot reload failed", zap.Error(err))
		return nil, err
	}

	c.setPhase(PhaseResuming)
	if loop != nil {
		loop.SetPaused(wasPaused)
	}
	c.setPhase(PhaseComplete)

	if res != nil {
		c.log.Info("hot reload complete",
			zap.Int("updatedInstances", res.UpdatedInstances),
			zap.Int("updatedSystems", res.UpdatedSystems))
	} else {
		c.log.Info("hot reload complete")
	}
	return res, nil
}

// ReportLoading advances the attempt to the loading phase. Informational;
// called by the task between compile and instance updates. ctx must be the
// context the task received; reports from a settled attempt are dropped.
func (c *Coordinator) ReportLoading(ctx context.Context) {
	c.mu.Lock()
	if !c.reportAllowed(ctx) {
		c.mu.Unlock()
		return
	}
	c.status.Phase = PhaseLoading
	snapshot := c.status
	observer := c.observer
	c.mu.Unlock()
	c.notify(observer, snapshot)
}

// ReportInstanceUpdate records how many script instances the task has
// updated and advances the phase. Does not affect pause state.
func (c *Coordinator) ReportInstanceUpdate(ctx context.Context, n int) {
	c.mu.Lock()
	if !c.reportAllowed(ctx) {
		c.mu.Unlock()
		return
	}
	c.status.UpdatedInstances = n
	c.status.Phase = PhaseUpdatingInstances
	snapshot := c.status
	observer := c.observer
	c.mu.Unlock()
	c.notify(observer, snapshot)
}

// ReportSystemUpdate records how many systems the task has updated and
// advances the phase.
func (c *Coordinator) ReportSystemUpdate(ctx context.Context, n int) {
	c.mu.Lock()
	if !c.reportAllowed(ctx) {
		c.mu.Unlock()
		return
	}
	c.status.UpdatedSystems = n
	c.status.Phase = PhaseUpdatingSystems
	snapshot := c.status
	observer := c.observer
	c.mu.Unlock()
	c.notify(observer, snapshot)
}

// reportAllowed checks the context's attempt generation against the live one.
// Called with c.mu held.
func (c *Coordinator) reportAllowed(ctx context.Context) bool {
	gen, ok := ctx.Value(genKey{}).(uint64)
	return ok && gen == c.gen
}

// Reset forces the coordinator back to idle, clearing error, counters and
// the in-flight guard. Best-effort operator hatch for recovering stuck state
// after a crash; not safe while a reload is genuinely running.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	if c.inflight != nil {
		close(c.inflight)
		c.inflight = nil
	}
	c.status = Status{Phase: PhaseIdle}
	c.observer = nil
	c.gen++
	c.mu.Unlock()
}

func (c *Coordinator) setPhase(p Phase) {
	c.mu.Lock()
	c.status.Phase = p
	snapshot := c.status
	observer := c.observer
	c.mu.Unlock()
	c.notify(observer, snapshot)
}

// notify calls the attempt observer synchronously; a panicking observer is
// contained here so it cannot break the reload.
func (c *Coordinator) notify(observer func(Status), s Status) {
	if observer == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("phase observer panicked", zap.Any("panic", r))
		}
	}()
	observer(s)
}
