package testutil

import (
	"context"
	"net/http"
	"sync"
)

// Shutdown events recorded by ShutdownLog.
const (
	EventHTTPShutdown    = "http shutdown"
	EventProviderRelease = "provider released"
)

// ShutdownLog records the order in which server components stop, so tests can assert that
// the provider is released only after the listener has drained.
type ShutdownLog struct {
	mu     sync.Mutex
	events []string
}

func (l *ShutdownLog) record(event string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

// ReleaseProvider is a provider release hook that records EventProviderRelease.
func (l *ShutdownLog) ReleaseProvider() {
	l.record(EventProviderRelease)
}

// Events returns a copy of the recorded events.
func (l *ShutdownLog) Events() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

// Count reports how often event was recorded.
func (l *ShutdownLog) Count(event string) int {
	n := 0
	for _, e := range l.Events() {
		if e == event {
			n++
		}
	}
	return n
}

// FakeHTTPServer stands in for the API listener. ListenAndServe returns ListenErr, or blocks
// until Shutdown when ListenErr is nil. Shutdown waits on Hold when it is set.
type FakeHTTPServer struct {
	ListenErr   error
	ShutdownErr error
	Hold        chan struct{}
	Log         *ShutdownLog
	HandlerVal  http.Handler

	mu            sync.Mutex
	shutdownCalls int
	stopped       chan struct{}
	once          sync.Once
}

func (f *FakeHTTPServer) stoppedCh() chan struct{} {
	f.once.Do(func() { f.stopped = make(chan struct{}) })
	return f.stopped
}

func (f *FakeHTTPServer) ListenAndServe() error {
	if f.ListenErr != nil {
		return f.ListenErr
	}
	<-f.stoppedCh()
	return http.ErrServerClosed
}

func (f *FakeHTTPServer) Shutdown(ctx context.Context) error {
	f.mu.Lock()
	f.shutdownCalls++
	first := f.shutdownCalls == 1
	f.mu.Unlock()
	if first {
		close(f.stoppedCh())
	}
	f.Log.record(EventHTTPShutdown)

	if f.Hold != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-f.Hold:
		}
	}
	return f.ShutdownErr
}

// ShutdownCalls reports how often Shutdown ran.
func (f *FakeHTTPServer) ShutdownCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shutdownCalls
}

func (f *FakeHTTPServer) Addr() string { return ":0" }

func (f *FakeHTTPServer) Handler() http.Handler {
	if f.HandlerVal == nil {
		return http.NotFoundHandler()
	}
	return f.HandlerVal
}
