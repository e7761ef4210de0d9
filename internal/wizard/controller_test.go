package wizard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/platform/apperr"
)

type testForm struct {
	A string `json:"a"`
	B string `json:"b"`
	C string `json:"c"`
}

func requireField(field string, get func(testForm) string) Validator[testForm] {
	return func(f testForm, tr i18n.Translator) Errors {
		errs := Errors{}
		if strings.TrimSpace(get(f)) == "" {
			errs.Add(field, tr.T(i18n.MsgRequired))
		}
		return errs
	}
}

func newTestController() *Controller[testForm] {
	steps := []Step[testForm]{
		{Name: "a", Validate: requireField("a", func(f testForm) string { return f.A })},
		{Name: "b", Validate: requireField("b", func(f testForm) string { return f.B })},
		{Name: "c", Validate: requireField("c", func(f testForm) string { return f.C })},
	}
	return NewController(steps, func() testForm { return testForm{} }, i18n.New(i18n.English))
}

func set(t *testing.T, c *Controller[testForm], fn func(f *testForm)) {
	t.Helper()
	require.NoError(t, c.Edit(func(f *testForm) error { fn(f); return nil }))
}

func TestNextBlocksOnInvalidStep(t *testing.T) {
	c := newTestController()

	state, ok := c.Next()
	assert.False(t, ok)
	assert.Equal(t, 1, state.Step)
	assert.NotEmpty(t, state.Errors["a"])
	assert.Empty(t, state.Validated)

	set(t, c, func(f *testForm) { f.A = "x" })
	state, ok = c.Next()
	assert.True(t, ok)
	assert.Equal(t, 2, state.Step)
	assert.Empty(t, state.Errors)
	assert.Equal(t, DirectionForward, state.Direction)
	assert.Equal(t, []int{1}, state.Validated)
}

func TestNextDoesNotCheckLaterSteps(t *testing.T) {
	c := newTestController()
	set(t, c, func(f *testForm) { f.A = "x" })
	state, _ := c.Next()
	_, hasB := state.Errors["b"]
	assert.False(t, hasB)
}

func TestReachingStepImpliesEarlierStepsValidated(t *testing.T) {
	c := newTestController()
	set(t, c, func(f *testForm) { f.A, f.B, f.C = "a", "b", "c" })
	for i := 0; i < 5; i++ {
		state, ok := c.Next()
		require.True(t, ok)
		for k := 1; k < state.Step; k++ {
			assert.Contains(t, state.Validated, k)
		}
	}
	assert.Equal(t, 3, c.State().Step)
}

func TestPreviousIsUnconstrained(t *testing.T) {
	c := newTestController()
	set(t, c, func(f *testForm) { f.A, f.B = "a", "b" })
	c.Next()
	c.Next()
	set(t, c, func(f *testForm) { f.A, f.B = "", "" })
	c.Next()
	require.NotEmpty(t, c.State().Errors)

	state := c.Previous()
	assert.Equal(t, 2, state.Step)
	assert.Empty(t, state.Errors)
	assert.Equal(t, DirectionBackward, state.Direction)

	state = c.Previous()
	assert.Equal(t, 1, state.Step)
	state = c.Previous()
	assert.Equal(t, 1, state.Step)
}

func TestSubmitOnlyFromLastStep(t *testing.T) {
	c := newTestController()
	err := c.Submit(context.Background(), func(context.Context, testForm) error { return nil })
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
}

func TestSubmitRevalidatesAllSteps(t *testing.T) {
	c := newTestController()
	set(t, c, func(f *testForm) { f.A, f.B, f.C = "a", "b", "c" })
	c.Next()
	c.Next()
	set(t, c, func(f *testForm) { f.A = " " })

	called := false
	err := c.Submit(context.Background(), func(context.Context, testForm) error { called = true; return nil })
	require.Error(t, err)
	assert.False(t, called)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	details, ok := appErr.Details.(apperr.StepErrors)
	require.True(t, ok)
	assert.Equal(t, 1, details.Step)
	assert.Contains(t, details.Errors, "a")
}

func TestSubmitSuccessResetsAndFailureKeepsForm(t *testing.T) {
	c := newTestController()
	set(t, c, func(f *testForm) { f.A, f.B, f.C = "a", "b", "c" })
	c.Next()
	c.Next()

	err := c.Submit(context.Background(), func(context.Context, testForm) error { return errors.New("backend down") })
	require.Error(t, err)
	assert.Equal(t, "a", c.Form().A)
	assert.Equal(t, 3, c.State().Step)
	assert.False(t, c.State().Submitting)

	var got testForm
	require.NoError(t, c.Submit(context.Background(), func(_ context.Context, f testForm) error { got = f; return nil }))
	assert.Equal(t, "c", got.C)
	assert.Equal(t, testForm{}, c.Form())
	assert.Equal(t, 1, c.State().Step)
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	c := newTestController()
	set(t, c, func(f *testForm) { f.A, f.B, f.C = "a", "b", "c" })
	c.Next()
	c.Next()

	started := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = c.Submit(context.Background(), func(context.Context, testForm) error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	assert.True(t, c.State().Submitting)
	err := c.Submit(context.Background(), func(context.Context, testForm) error { return nil })
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.True(t, apperr.Is(c.Edit(func(*testForm) error { return nil }), apperr.KindConflict))

	close(release)
	wg.Wait()
	assert.False(t, c.State().Submitting)
}

func TestValidationIsIdempotent(t *testing.T) {
	c := newTestController()
	first, _ := c.Next()
	second, _ := c.Next()
	assert.Equal(t, first.Errors, second.Errors)
}

func TestOnTransitionObservesNavigation(t *testing.T) {
	c := newTestController()
	var calls []string
	c.OnTransition(func(from, to int, ok bool) {
		calls = append(calls, map[bool]string{true: "ok", false: "blocked"}[ok])
	})
	c.Next()
	set(t, c, func(f *testForm) { f.A = "a" })
	c.Next()
	c.Previous()
	assert.Equal(t, []string{"blocked", "ok", "ok"}, calls)
}

func TestAutosaverWritesNonEmptySnapshots(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	c := newTestController()
	store := NewMemoryDraftStore()
	saver := NewAutosaver(store, "k", 10*time.Millisecond, time.Hour,
		ControllerSnapshot(c, func(f testForm) bool { return f != testForm{} }), nil)

	require.NoError(t, saver.SaveNow(context.Background()))
	assert.Equal(t, 0, store.Saves())

	set(t, c, func(f *testForm) { f.B = "draft" })
	saver.Start(context.Background())
	assert.Eventually(t, func() bool { return store.Saves() > 0 }, time.Second, 5*time.Millisecond)
	saver.Stop()
	saver.Stop()

	restored, ok, err := LoadDraft[testForm](context.Background(), store, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "draft", restored.B)

	after := store.Saves()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, store.Saves())
}

func TestAutosaverSkipsFormBeingSubmitted(t *testing.T) {
	c := newTestController()
	store := NewMemoryDraftStore()
	saver := NewAutosaver(store, "k", time.Hour, time.Hour,
		ControllerSnapshot(c, func(f testForm) bool { return f != testForm{} }), nil)

	set(t, c, func(f *testForm) { f.A, f.B, f.C = "a", "b", "c" })
	c.Next()
	c.Next()
	require.NoError(t, saver.SaveNow(context.Background()))
	require.Equal(t, 1, store.Saves())

	err := c.Submit(context.Background(), func(ctx context.Context, _ testForm) error {
		if err := store.Delete(ctx, "k"); err != nil {
			return err
		}
		return saver.SaveNow(ctx)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.Saves())

	_, ok, err := store.Load(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
