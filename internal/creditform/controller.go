package creditform

import (
	"context"
	"sync"
)

// Scorer sends one application to the scoring backend.
type Scorer interface {
	ScoreApplication(ctx context.Context, app Application) (*ScoreResult, error)
}

// Result describes one completed submission.
type Result struct {
	Snapshot Application
	Score    *ScoreResult
	Err      error
	Status   Status
}

func (r Result) Succeeded() bool { return r.Err == nil }

// Controller holds the live state of one form: the field values, the status
// banner and the submitting flag. All methods are safe for concurrent use;
// the scoring call runs without holding the lock so the form stays editable
// while a submission is pending.
type Controller struct {
	scorer Scorer

	mu         sync.Mutex
	values     Application
	status     Status
	submitting bool
}

func NewController(scorer Scorer) *Controller {
	return &Controller{scorer: scorer}
}

func (c *Controller) Values() Application {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values
}

func (c *Controller) Value(name FieldName) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values.Get(name)
}

// Change replaces the value of exactly one field.
func (c *Controller) Change(name FieldName, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.values.With(name, value)
	if err != nil {
		return err
	}
	c.values = next
	return nil
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) DismissStatus() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = Status{}
}

// State is a consistent copy of everything the form renders.
type State struct {
	Values     Application
	Status     Status
	Submitting bool
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Values: c.values, Status: c.status, Submitting: c.submitting}
}

// Submitting reports whether a submission is in flight, i.e. whether the
// submit control is disabled.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Check inspects the exact values about to be sent. It runs under the
// controller's lock and must not call back into the controller.
type Check func(Application) error

// Submit sends the current values to the scorer and records the outcome in
// the status banner. On success the form is cleared. A second call while one
// is in flight returns ErrSubmissionInFlight and changes nothing.
func (c *Controller) Submit(ctx context.Context) (Result, error) {
	return c.SubmitChecked(ctx, nil)
}

// SubmitChecked is Submit with a check on the snapshot it dispatches. When
// check fails its error is returned, the scorer is not called and the form is
// left as it was.
func (c *Controller) SubmitChecked(ctx context.Context, check Check) (Result, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return Result{}, ErrSubmissionInFlight
	}
	if check != nil {
		if err := check(c.values); err != nil {
			snapshot := c.values
			c.mu.Unlock()
			return Result{Snapshot: snapshot}, err
		}
	}
	c.submitting = true
	c.status = Status{}
	snapshot := c.values
	c.mu.Unlock()

	settled := false
	defer func() {
		if settled {
			return
		}
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	score, err := c.scorer.ScoreApplication(ctx, snapshot)
	res := c.settle(snapshot, score, err)
	settled = true
	return res, nil
}

func (c *Controller) settle(snapshot Application, score *ScoreResult, err error) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.submitting = false
	res := Result{Snapshot: snapshot, Score: score, Err: err}
	if err != nil {
		c.status = ErrorStatus(err)
	} else {
		c.status = SuccessStatus(score)
		c.values = Application{}
	}
	res.Status = c.status
	return res
}
