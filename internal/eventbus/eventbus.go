// Package eventbus is an in-process, typed event dispatcher.
package eventbus

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
)

// Handler processes events of type T.
type Handler[T any] func(context.Context, T)

type entry struct {
	id uint64
	fn func(context.Context, any)
}

// Bus routes events to the handlers subscribed to their dynamic type.
type Bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[reflect.Type][]entry
}

// New creates a Bus.
func New() *Bus { return &Bus{handlers: make(map[reflect.Type][]entry)} }

func (b *Bus) subscribe(t reflect.Type, fn func(context.Context, any)) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[t] = append(b.handlers[t], entry{id: id, fn: fn})
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		hs := b.handlers[t]
		for i, e := range hs {
			if e.id == id {
				hs = append(hs[:i:i], hs[i+1:]...)
				break
			}
		}
		if len(hs) == 0 {
			delete(b.handlers, t)
		} else {
			b.handlers[t] = hs
		}
	}
}

func (b *Bus) emit(ctx context.Context, e any) {
	if b == nil {
		return
	}
	b.mu.RLock()
	hs := append([]entry(nil), b.handlers[reflect.TypeOf(e)]...)
	b.mu.RUnlock()
	for _, h := range hs {
		h.fn(ctx, e)
	}
}

// On registers h on b.
func On[T any](b *Bus, h Handler[T]) (unsubscribe func()) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return b.subscribe(t, func(ctx context.Context, v any) { h(ctx, v.(T)) })
}

// Emit dispatches e to the handlers of b.
func Emit[T any](ctx context.Context, b *Bus, e T) {
	b.emit(ctx, e)
}

var global atomic.Pointer[Bus]

// Use sets the global bus. Passing nil disables event publishing.
func Use(b *Bus) { global.Store(b) }

// Subscribe registers h with the global bus.
func Subscribe[T any](h Handler[T]) (unsubscribe func()) {
	if b := global.Load(); b != nil {
		return On(b, h)
	}
	return func() {}
}

// Publish sends e through the global bus.
func Publish[T any](ctx context.Context, e T) {
	if b := global.Load(); b != nil {
		b.emit(ctx, e)
	}
}
