package main

import (
	"errors"
	"os"
	osSignal "os/signal"
	"syscall"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestWaitReturnsCommandResult(t *testing.T) {
	done := make(chan error, 1)
	want := errors.New("boom")
	done <- want

	closed := false
	err := wait(done, closerFunc(func() error {
		closed = true
		return nil
	}), zaptest.NewLogger(t))

	if !errors.Is(err, want) {
		t.Fatalf("expected command error, got %v", err)
	}
	if !closed {
		t.Fatalf("expected strategy to be closed after the command")
	}
}

func TestShutdownSignals(t *testing.T) {
	t.Cleanup(func() {
		signalNotify = osSignal.Notify
	})

	signalNotify = func(ch chan<- os.Signal, sig ...os.Signal) {
		go func() {
			ch <- syscall.SIGTERM
		}()
	}

	done := make(chan error, 1)
	called := make(chan struct{}, 1)
	closer := closerFunc(func() error {
		called <- struct{}{}
		done <- errors.New("pool closed")
		return nil
	})

	result := make(chan error, 1)
	go func() {
		result <- wait(done, closer, zaptest.NewLogger(t))
	}()

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatalf("expected close callback to execute")
	}

	select {
	case err := <-result:
		if err == nil {
			t.Fatalf("expected interrupted command to report an error")
		}
	case <-time.After(time.Second):
		t.Fatalf("expected wait to return after draining")
	}
}
