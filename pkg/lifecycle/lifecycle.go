// Package lifecycle coordinates startup and shutdown hooks across subsystems.
//
// Startup hooks run concurrently and WaitForStartup blocks until all of them
// return, after which the coordinator reports ready. Shutdown hooks are started
// immediately on registration and are expected to block on Context().Done();
// Shutdown cancels the context and waits for them to finish.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ReadinessChecker reports whether the service can accept traffic.
type ReadinessChecker interface {
	Ready() bool
}

// Coordinator tracks startup and shutdown hooks for a process.
type Coordinator struct {
	ctx        context.Context
	cancel     context.CancelFunc
	startupWg  sync.WaitGroup
	shutdownWg sync.WaitGroup
	ready      atomic.Bool
}

// New creates a Coordinator with a fresh cancellable context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context is cancelled when Shutdown begins.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup runs fn in its own goroutine and tracks it until WaitForStartup returns.
func (c *Coordinator) OnStartup(fn func()) {
	c.startupWg.Add(1)
	go func() {
		defer c.startupWg.Done()
		fn()
	}()
}

// OnShutdown runs fn in its own goroutine and tracks it until Shutdown returns.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdownWg.Add(1)
	go func() {
		defer c.shutdownWg.Done()
		fn()
	}()
}

// WaitForStartup blocks until every startup hook has returned, then marks the coordinator ready.
func (c *Coordinator) WaitForStartup() {
	c.startupWg.Wait()
	c.ready.Store(true)
}

// Ready reports whether startup has completed and shutdown has not begun.
func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// Shutdown cancels the context and waits up to timeout for shutdown hooks.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.ready.Store(false)
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdownWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout after %s", timeout)
	}
}
