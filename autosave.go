package main

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// quizSaver is the single gateway call the autosaver needs.
type quizSaver interface {
	SaveQuiz(ctx context.Context, q Quiz) (Quiz, error)
}

// afterFunc starts a timer that runs f after d and returns its stop function.
type afterFunc func(d time.Duration, f func()) (stop func() bool)

func realAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Autosaver debounces writes of the open quiz. At most one timer is pending;
// scheduling again replaces it, so only the last payload inside a delay
// window reaches the store.
type Autosaver struct {
	store       quizSaver
	enabled     bool
	delay       time.Duration
	saveTimeout time.Duration
	onSaved     func(Quiz)
	after       afterFunc
	now         func() time.Time

	mu      sync.Mutex
	stop    func() bool
	pending Quiz
	gen     uint64 // bumped on every schedule/cancel; a fired timer with a stale gen is dropped

	inflight sync.WaitGroup
}

func NewAutosaver(store quizSaver, cfg AutosaveConfig, onSaved func(Quiz)) *Autosaver {
	if cfg.SaveTimeout <= 0 {
		cfg.SaveTimeout = 10 * time.Second
	}
	return &Autosaver{
		store:       store,
		enabled:     cfg.Enabled,
		delay:       cfg.Delay,
		saveTimeout: cfg.SaveTimeout,
		onSaved:     onSaved,
		after:       realAfterFunc,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (a *Autosaver) Enabled() bool { return a.enabled }

// Schedule (re)starts the debounce timer for q. Callers pass a snapshot they
// will not mutate afterwards.
func (a *Autosaver) Schedule(q Quiz) {
	if !a.enabled {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cancelLocked()
	gen := a.gen
	a.pending = q
	a.stop = a.after(a.delay, func() { a.fire(gen, q) })
}

// Cancel drops a timer that has not fired yet. A write already in flight is
// left alone. It reports whether a pending timer was dropped.
func (a *Autosaver) Cancel() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancelLocked()
}

func (a *Autosaver) cancelLocked() bool {
	a.gen++
	if a.stop == nil {
		return false
	}
	stopped := a.stop()
	a.stop = nil
	a.pending = Quiz{}
	return stopped
}

func (a *Autosaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stop != nil
}

// Wait blocks until every write started by a fired timer has finished.
func (a *Autosaver) Wait() {
	a.inflight.Wait()
}

func (a *Autosaver) fire(gen uint64, q Quiz) {
	a.mu.Lock()
	if gen != a.gen {
		a.mu.Unlock()
		return
	}
	a.stop = nil
	a.pending = Quiz{}
	a.inflight.Add(1)
	a.mu.Unlock()
	defer a.inflight.Done()

	a.flush(q)
}

// Flush writes the pending payload now instead of waiting for its timer.
// It reports whether there was anything to write.
func (a *Autosaver) Flush() bool {
	a.mu.Lock()
	if a.stop == nil {
		a.mu.Unlock()
		return false
	}
	q := a.pending
	a.cancelLocked()
	a.inflight.Add(1)
	a.mu.Unlock()
	defer a.inflight.Done()

	a.flush(q)
	return true
}

func (a *Autosaver) flush(q Quiz) {
	ctx, cancel := context.WithTimeout(context.Background(), a.saveTimeout)
	defer cancel()

	q.LastModified = a.now()
	saved, err := a.store.SaveQuiz(ctx, q)
	if err != nil {
		// no retry: the next edit or a manual save writes again
		slog.Error("autosave failed", "quiz_id", q.ID, "err", err)
		return
	}
	slog.Debug("autosaved", "quiz_id", saved.ID, "last_modified", saved.LastModified)
	if a.onSaved != nil {
		a.onSaved(saved)
	}
}
