package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Context creates a context that is canceled when SIGINT or SIGTERM is
// received. notify, when non-nil, is called with the signal first.
func Context(ctx context.Context, notify func(os.Signal)) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			if notify != nil {
				notify(sig)
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
