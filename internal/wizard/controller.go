package wizard

import (
	"context"
	"sync"

	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/platform/apperr"
)

// TransitionFunc observes navigation attempts.
type TransitionFunc func(from, to int, ok bool)

// Controller owns one wizard instance: the current step, the form and the
// error map of the last validation. All access is serialized.
type Controller[F any] struct {
	mu         sync.Mutex
	steps      []Step[F]
	newForm    func() F
	form       F
	step       int
	errors     Errors
	direction  Direction
	validated  []bool
	submitting bool
	tr         i18n.Translator

	onTransition TransitionFunc
}

// NewController creates a controller at step 1 with a fresh form.
func NewController[F any](steps []Step[F], newForm func() F, tr i18n.Translator) *Controller[F] {
	if len(steps) == 0 {
		panic("wizard: at least one step is required")
	}
	return &Controller[F]{
		steps:     steps,
		newForm:   newForm,
		form:      newForm(),
		step:      1,
		errors:    Errors{},
		validated: make([]bool, len(steps)),
		tr:        tr,
	}
}

// OnTransition registers an observer for Next/Previous.
func (c *Controller[F]) OnTransition(fn TransitionFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTransition = fn
}

// Translator returns the session's translator.
func (c *Controller[F]) Translator() i18n.Translator { return c.tr }

// Total returns the number of steps.
func (c *Controller[F]) Total() int { return len(c.steps) }

// Restore replaces the form, e.g. with a recovered draft or an existing
// document being edited. Navigation restarts at step 1.
func (c *Controller[F]) Restore(form F) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = form
	c.reset()
}

// Next validates the current step and advances on success. At the last step
// a valid Next stays in place. The returned bool reports validity.
func (c *Controller[F]) Next() (State, bool) {
	c.mu.Lock()
	from := c.step
	errs := c.runStep(c.step)
	ok := errs.Valid()
	if ok {
		c.validated[c.step-1] = true
		c.errors = Errors{}
		if c.step < len(c.steps) {
			c.step++
		}
		c.direction = DirectionForward
	} else {
		c.errors = errs
	}
	state, notify := c.stateLocked(), c.onTransition
	c.mu.Unlock()

	if notify != nil {
		notify(from, state.Step, ok)
	}
	return state, ok
}

// Previous moves one step back without validating and clears errors.
func (c *Controller[F]) Previous() State {
	c.mu.Lock()
	from := c.step
	if c.step > 1 {
		c.step--
	}
	c.errors = Errors{}
	c.direction = DirectionBackward
	state, notify := c.stateLocked(), c.onTransition
	c.mu.Unlock()

	if notify != nil {
		notify(from, state.Step, true)
	}
	return state
}

// Edit applies fn to the form. Edits are refused while a submission runs.
func (c *Controller[F]) Edit(fn func(form *F) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return apperr.Conflict(c.tr.T(i18n.MsgSubmitInProgress))
	}
	return fn(&c.form)
}

// View runs fn with the current form under the lock.
func (c *Controller[F]) View(fn func(form F, state State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.form, c.stateLocked())
}

// Form returns a copy of the form value.
func (c *Controller[F]) Form() F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// State returns a snapshot of the navigation state.
func (c *Controller[F]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// SubmitFunc persists a validated form.
type SubmitFunc[F any] func(ctx context.Context, form F) error

// Submit validates every step and hands the form to fn. Only one submission
// may run at a time. On success the wizard resets to a fresh form at step 1;
// on failure the form is kept so the user can retry.
func (c *Controller[F]) Submit(ctx context.Context, fn SubmitFunc[F]) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return apperr.Conflict(c.tr.T(i18n.MsgSubmitInProgress))
	}
	if c.step != len(c.steps) {
		c.mu.Unlock()
		return apperr.BadRequest(c.tr.T(i18n.MsgNotOnReviewStep))
	}
	for i := 1; i <= len(c.steps); i++ {
		if errs := c.runStep(i); !errs.Valid() {
			c.errors = errs
			c.mu.Unlock()
			return apperr.StepValidation(c.tr.T(i18n.MsgStepInvalid), i, errs)
		}
	}
	c.errors = Errors{}
	c.submitting = true
	form := c.form
	c.mu.Unlock()

	err := fn(ctx, form)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		return err
	}
	c.form = c.newForm()
	c.reset()
	return nil
}

func (c *Controller[F]) runStep(step int) Errors {
	errs := c.steps[step-1].Validate(c.form, c.tr)
	if errs == nil {
		errs = Errors{}
	}
	return errs
}

func (c *Controller[F]) reset() {
	c.step = 1
	c.errors = Errors{}
	c.direction = DirectionNone
	c.validated = make([]bool, len(c.steps))
}

func (c *Controller[F]) stateLocked() State {
	validated := make([]int, 0, len(c.validated))
	for i, ok := range c.validated {
		if ok {
			validated = append(validated, i+1)
		}
	}
	errs := make(Errors, len(c.errors))
	for k, v := range c.errors {
		errs[k] = v
	}
	return State{
		Step:       c.step,
		Total:      len(c.steps),
		StepName:   c.steps[c.step-1].Name,
		Errors:     errs,
		Direction:  c.direction,
		Validated:  validated,
		Submitting: c.submitting,
	}
}
