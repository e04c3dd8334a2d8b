// Package service holds the reservation engine, the payment reconciler and
// the admin layer. Services classify every error into a typed apperror and
// never swallow one; the transport only translates.
package service

import (
	"context"
	"sync"
)

// Publisher is the slice of pkg/mq the services need. Events are
// fire-and-forget: a dead broker never fails a booking.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// spaceLocks hands out one mutex per space id so booking creation for a
// space is serialized in-process while everything else runs free.
type spaceLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func newSpaceLocks() *spaceLocks {
	return &spaceLocks{m: make(map[string]*sync.Mutex)}
}

func (l *spaceLocks) forSpace(id string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	sl, ok := l.m[id]
	if !ok {
		sl = &sync.Mutex{}
		l.m[id] = sl
	}
	return sl
}
