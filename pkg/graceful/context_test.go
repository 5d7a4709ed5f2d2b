package graceful

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestGracefulContext(t *testing.T) {
	got := make(chan os.Signal, 1)
	ctx, cancel := Context(context.Background(), func(s os.Signal) { got <- s })
	defer cancel()

	go func() {
		time.Sleep(100 * time.Millisecond) // Give the signal handler time to get ready
		if err := syscall.Kill(syscall.Getpid(), syscall.SIGINT); err != nil {
			t.Errorf("Failed to send SIGINT: %v", err)
		}
	}()

	select {
	case <-ctx.Done():
		if !errors.Is(ctx.Err(), context.Canceled) {
			t.Errorf("Expected context.Canceled error, got %v", ctx.Err())
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Test timed out waiting for context to be canceled.")
	}

	select {
	case s := <-got:
		if s != syscall.SIGINT {
			t.Errorf("Expected SIGINT, got %v", s)
		}
	case <-time.After(time.Second):
		t.Error("notify was not called")
	}
}

func TestGracefulContext_ParentCancel(t *testing.T) {
	parent, parentCancel := context.WithCancel(context.Background())
	ctx, cancel := Context(parent, nil)
	defer cancel()

	parentCancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("Context not canceled with its parent")
	}
}
