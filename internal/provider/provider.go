// Package provider serves a lazily built, cached schema.
package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/hanpama/resourcegraph/internal/schema"
)

// Builder builds a schema.
type Builder interface {
	Build(ctx context.Context) (*schema.Schema, error)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(ctx context.Context) (*schema.Schema, error)

func (f BuilderFunc) Build(ctx context.Context) (*schema.Schema, error) { return f(ctx) }

// Provider builds its schema on first use and returns the same schema
// afterwards. Concurrent callers wait for the build in progress and share
// its outcome. A failed build is not cached.
type Provider struct {
	builder Builder

	mu     sync.Mutex
	schema *schema.Schema
	call   *call
}

// call is a build in progress.
type call struct {
	done chan struct{}
	dups int

	schema *schema.Schema
	err    error
}

// New creates a Provider over b.
func New(b Builder) *Provider {
	return &Provider{builder: b}
}

// Schema returns the cached schema, building it if needed. A caller that
// finds a build in progress waits for it until ctx is done.
func (p *Provider) Schema(ctx context.Context) (*schema.Schema, error) {
	p.mu.Lock()
	if p.schema != nil {
		s := p.schema
		p.mu.Unlock()
		return s, nil
	}
	if c := p.call; c != nil {
		c.dups++
		p.mu.Unlock()
		select {
		case <-c.done:
			return c.schema, c.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	c := &call{done: make(chan struct{})}
	p.call = c
	p.mu.Unlock()

	s, err := p.builder.Build(ctx)
	if err != nil {
		c.err = fmt.Errorf("build schema: %w", err)
	} else {
		c.schema = s
	}

	p.mu.Lock()
	if p.call == c {
		p.call = nil
		if err == nil {
			p.schema = s
		}
	}
	p.mu.Unlock()
	close(c.done)
	return c.schema, c.err
}

// Reset drops the cached schema. The next Schema call rebuilds it. A build
// in progress still answers its waiters but is not cached.
func (p *Provider) Reset() {
	p.mu.Lock()
	p.schema = nil
	p.call = nil
	p.mu.Unlock()
}
