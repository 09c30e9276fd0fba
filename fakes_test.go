package main

import (
	"context"
	"sort"
	"sync"
	"time"
)

type fakeStore struct {
	mu sync.Mutex

	quizzes     map[string]Quiz
	saves       []Quiz
	deletes     []string
	saveErr     error
	categories  []string
	userNames   []string
	settingsErr error
	listWrites  int

	// afterDelete runs once a delete has landed, outside the lock.
	afterDelete func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{quizzes: make(map[string]Quiz)}
}

func (f *fakeStore) GetQuizzes(_ context.Context) ([]Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Quiz, 0, len(f.quizzes))
	for _, q := range f.quizzes {
		out = append(out, q.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastModified.After(out[j].LastModified) })
	return out, nil
}

func (f *fakeStore) GetQuiz(_ context.Context, id string) (Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quizzes[id]
	if !ok {
		return Quiz{}, ErrQuizNotFound
	}
	return q.Clone(), nil
}

func (f *fakeStore) SaveQuiz(_ context.Context, q Quiz) (Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves = append(f.saves, q.Clone())
	if f.saveErr != nil {
		return q, f.saveErr
	}
	f.quizzes[q.ID] = q.Clone()
	return q.Clone(), nil
}

func (f *fakeStore) DeleteQuiz(_ context.Context, id string) error {
	f.mu.Lock()
	f.deletes = append(f.deletes, id)
	delete(f.quizzes, id)
	hook := f.afterDelete
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return nil
}

func (f *fakeStore) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.quizzes[id]
	return ok
}

func (f *fakeStore) GetCategories(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.categories...), nil
}

func (f *fakeStore) SaveCategories(_ context.Context, list []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listWrites++
	if f.settingsErr != nil {
		return list, f.settingsErr
	}
	f.categories = append([]string(nil), list...)
	return list, nil
}

func (f *fakeStore) GetUserNames(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.userNames) == 0 {
		return append([]string(nil), defaultUserNames...), nil
	}
	return append([]string(nil), f.userNames...), nil
}

func (f *fakeStore) SaveUserNames(_ context.Context, list []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listWrites++
	if f.settingsErr != nil {
		return list, f.settingsErr
	}
	f.userNames = append([]string(nil), list...)
	return list, nil
}

func (f *fakeStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeStore) lastSave() Quiz {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves[len(f.saves)-1].Clone()
}

func (f *fakeStore) setSaveErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveErr = err
}

// fakeTimers replaces time.AfterFunc; timers only run when the test fires
// them.
type fakeTimers struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (ft *fakeTimers) AfterFunc(d time.Duration, f func()) func() bool {
	t := &fakeTimer{d: d, f: f}
	ft.mu.Lock()
	ft.timers = append(ft.timers, t)
	ft.mu.Unlock()
	return func() bool {
		ft.mu.Lock()
		defer ft.mu.Unlock()
		if t.stopped || t.fired {
			return false
		}
		t.stopped = true
		return true
	}
}

// FireAll runs every live timer on the calling goroutine and returns how
// many ran.
func (ft *fakeTimers) FireAll() int {
	ft.mu.Lock()
	var live []*fakeTimer
	for _, t := range ft.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			live = append(live, t)
		}
	}
	ft.mu.Unlock()
	for _, t := range live {
		t.f()
	}
	return len(live)
}

func (ft *fakeTimers) Live() int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	n := 0
	for _, t := range ft.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// fireRaw runs timer i even if it was stopped, like a timer whose Stop lost
// the race against expiry.
func (ft *fakeTimers) fireRaw(i int) {
	ft.mu.Lock()
	t := ft.timers[i]
	ft.mu.Unlock()
	t.f()
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func statusPtr(s Status) *Status { return &s }
