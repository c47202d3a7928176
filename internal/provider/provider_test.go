package provider

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanpama/resourcegraph/internal/metadata"
	"github.com/hanpama/resourcegraph/internal/schema"
)

func catalog() *metadata.Catalog {
	c := metadata.NewCatalog()
	c.AddResource(&metadata.Resource{Class: `App\Entity\Book`})
	c.AddProperties(`App\Entity\Book`, &metadata.Property{
		Name:     "title",
		Types:    []*metadata.Type{metadata.Scalar(metadata.BuiltinString, false)},
		Readable: true,
		Writable: true,
	})
	return c
}

func TestSchemaIsBuiltOnce(t *testing.T) {
	var builds atomic.Int32
	b := schema.NewBuilder(schema.Options{Metadata: catalog()})
	p := New(BuilderFunc(func(ctx context.Context) (*schema.Schema, error) {
		builds.Add(1)
		return b.Build(ctx)
	}))

	var wg sync.WaitGroup
	results := make([]*schema.Schema, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := p.Schema(context.Background())
			assert.NoError(t, err)
			results[i] = s
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), builds.Load())
	for _, s := range results {
		assert.Same(t, results[0], s)
	}
	book, err := results[0].Object("Book")
	require.NoError(t, err)
	assert.Equal(t, "String!", book.Fields()["title"].Type.String())

	p.Reset()
	s, err := p.Schema(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, results[0], s)
	assert.Equal(t, int32(2), builds.Load())
}

func TestFailedBuildIsRetried(t *testing.T) {
	var builds int
	p := New(BuilderFunc(func(ctx context.Context) (*schema.Schema, error) {
		builds++
		if builds == 1 {
			return nil, errors.New("metadata unavailable")
		}
		return schema.NewBuilder(schema.Options{Metadata: catalog()}).Build(ctx)
	}))

	_, err := p.Schema(context.Background())
	require.EqualError(t, err, "build schema: metadata unavailable")

	s, err := p.Schema(context.Background())
	require.NoError(t, err)
	assert.True(t, s.HasType("Book"))
	assert.Equal(t, 2, builds)
}

func TestConcurrentCallersShareFailedBuild(t *testing.T) {
	var builds atomic.Int32
	release := make(chan struct{})
	p := New(BuilderFunc(func(ctx context.Context) (*schema.Schema, error) {
		builds.Add(1)
		<-release
		return nil, errors.New("metadata unavailable")
	}))

	const callers = 5
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = p.Schema(context.Background())
		}()
	}
	require.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.call != nil && p.call.dups == callers-1
	}, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	for _, err := range errs {
		assert.EqualError(t, err, "build schema: metadata unavailable")
	}

	_, err := p.Schema(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(2), builds.Load())
}

func TestWaiterHonorsContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	p := New(BuilderFunc(func(ctx context.Context) (*schema.Schema, error) {
		<-release
		return nil, errors.New("metadata unavailable")
	}))
	go p.Schema(context.Background())
	require.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.call != nil
	}, time.Second, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Schema(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
