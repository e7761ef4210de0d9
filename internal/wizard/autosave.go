package wizard

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"horse_portal_backend/platform/logger"
)

// SnapshotFunc encodes the current form. ok is false when the form is empty
// and nothing should be saved.
type SnapshotFunc func() (data []byte, ok bool, err error)

// Autosaver periodically writes a form snapshot to a DraftStore while a
// wizard session is open. Saves are best effort and overwrite the previous draft.
type Autosaver struct {
	store    DraftStore
	key      string
	interval time.Duration
	ttl      time.Duration
	snapshot SnapshotFunc
	log      *logger.Logger

	stopOnce sync.Once
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewAutosaver creates a stopped autosaver.
func NewAutosaver(store DraftStore, key string, interval, ttl time.Duration, snapshot SnapshotFunc, log *logger.Logger) *Autosaver {
	return &Autosaver{
		store:    store,
		key:      key,
		interval: interval,
		ttl:      ttl,
		snapshot: snapshot,
		log:      log,
		done:     make(chan struct{}),
	}
}

// Start launches the ticker. The loop is detached from ctx cancellation so
// the request that opened the session does not end it; Stop does.
func (a *Autosaver) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	a.cancel = cancel
	go a.loop(loopCtx)
}

func (a *Autosaver) loop(ctx context.Context) {
	defer close(a.done)
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.SaveNow(ctx); err != nil && a.log != nil {
				a.log.BackendError("wizard.autosave", err)
			}
		}
	}
}

// SaveNow writes one snapshot if the form is not empty.
func (a *Autosaver) SaveNow(ctx context.Context) error {
	data, ok, err := a.snapshot()
	if err != nil || !ok {
		return err
	}
	return a.store.Save(ctx, a.key, data, a.ttl)
}

// Stop cancels the ticker and waits for the loop to exit. Safe to call
// more than once and before Start.
func (a *Autosaver) Stop() {
	a.stopOnce.Do(func() {
		if a.cancel == nil {
			return
		}
		a.cancel()
		<-a.done
	})
}

// ControllerSnapshot encodes the controller's form as JSON when hasContent
// reports that at least one field was filled. Nothing is saved while a
// submission is in flight.
func ControllerSnapshot[F any](c *Controller[F], hasContent func(F) bool) SnapshotFunc {
	return func() ([]byte, bool, error) {
		var (
			data []byte
			ok   bool
			err  error
		)
		c.View(func(form F, state State) {
			if state.Submitting || !hasContent(form) {
				return
			}
			data, err = json.Marshal(form)
			ok = err == nil
		})
		return data, ok, err
	}
}
