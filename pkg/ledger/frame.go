package ledger

import (
	"context"
	"sync"
)

type frameKey struct{}

// frame marks calls made by a transferer while a withdrawal holds the ledger lock.
// Such calls are serialized on the frame mutex instead of the ledger mutex.
type frame struct {
	owner  *Ledger
	mu     sync.Mutex
	active bool
}

func withFrame(ctx context.Context, f *frame) context.Context {
	return context.WithValue(ctx, frameKey{}, f)
}

// deactivate waits for running reentrant calls and rejects new ones.
func (f *frame) deactivate() {
	f.mu.Lock()
	f.active = false
	f.mu.Unlock()
}

// enter acquires the critical section for the call and returns the release function.
func (l *Ledger) enter(ctx context.Context) func() {
	if f, ok := ctx.Value(frameKey{}).(*frame); ok && f.owner == l {
		f.mu.Lock()
		if f.active {
			return f.mu.Unlock
		}
		f.mu.Unlock()
	}
	l.mu.Lock()
	return l.mu.Unlock
}
