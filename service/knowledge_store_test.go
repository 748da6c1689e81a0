package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/medicare-vn/medicare-be/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKnowledgeRepo struct {
	mu           sync.Mutex
	articles     []types.Article
	conditions   []types.Condition
	catalog      []types.CatalogItem
	err          error
	articleCalls int32
	block        chan struct{}
	started      chan struct{}
}

func (r *fakeKnowledgeRepo) LoadArticles(ctx context.Context, limit int64) ([]types.Article, error) {
	atomic.AddInt32(&r.articleCalls, 1)
	r.mu.Lock()
	block, started := r.block, r.started
	err, articles := r.err, r.articles
	r.mu.Unlock()
	if started != nil {
		close(started)
		r.mu.Lock()
		r.started = nil
		r.mu.Unlock()
	}
	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *fakeKnowledgeRepo) LoadConditions(ctx context.Context, limit int64) ([]types.Condition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.conditions, nil
}

func (r *fakeKnowledgeRepo) LoadCatalogSample(ctx context.Context, limit int64) ([]types.CatalogItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.catalog, nil
}

func (r *fakeKnowledgeRepo) setError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestKnowledgeStore_CachesWithinTTL(t *testing.T) {
	repo := &fakeKnowledgeRepo{articles: []types.Article{{Title: "Một"}}}
	store := NewKnowledgeStore(repo, time.Hour, time.Second, testLogger())

	first := store.GetSnapshot(context.Background())
	second := store.GetSnapshot(context.Background())

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&repo.articleCalls))
}

func TestKnowledgeStore_RefreshesAfterTTL(t *testing.T) {
	repo := &fakeKnowledgeRepo{articles: []types.Article{{Title: "Một"}}}
	store := NewKnowledgeStore(repo, 10*time.Millisecond, time.Second, testLogger())

	first := store.GetSnapshot(context.Background())
	time.Sleep(20 * time.Millisecond)
	second := store.GetSnapshot(context.Background())

	assert.NotSame(t, first, second)
	assert.Equal(t, int32(2), atomic.LoadInt32(&repo.articleCalls))
}

func TestKnowledgeStore_KeepsStaleSnapshotOnFailure(t *testing.T) {
	repo := &fakeKnowledgeRepo{articles: []types.Article{{Title: "Một"}}}
	store := NewKnowledgeStore(repo, 10*time.Millisecond, time.Second, testLogger())

	first := store.GetSnapshot(context.Background())
	require.False(t, first.Empty())

	time.Sleep(20 * time.Millisecond)
	repo.setError(errors.New("connection refused"))
	second := store.GetSnapshot(context.Background())

	assert.Same(t, first, second)
	assert.False(t, second.Empty())
}

func TestKnowledgeStore_EmptyWhenNeverLoaded(t *testing.T) {
	repo := &fakeKnowledgeRepo{err: errors.New("connection refused")}
	store := NewKnowledgeStore(repo, time.Hour, time.Second, testLogger())

	snap := store.GetSnapshot(context.Background())
	require.NotNil(t, snap)
	assert.True(t, snap.Empty())
}

func TestKnowledgeStore_SingleFlightRefresh(t *testing.T) {
	repo := &fakeKnowledgeRepo{articles: []types.Article{{Title: "Một"}}}
	store := NewKnowledgeStore(repo, 10*time.Millisecond, time.Minute, testLogger())

	first := store.GetSnapshot(context.Background())
	time.Sleep(20 * time.Millisecond)

	// Block the refresh so concurrent callers hit the in-flight window.
	block := make(chan struct{})
	started := make(chan struct{})
	repo.mu.Lock()
	repo.block = block
	repo.started = started
	repo.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		store.GetSnapshot(context.Background())
	}()
	<-started

	// Callers during the refresh get the previous snapshot without
	// triggering another round trip.
	for i := 0; i < 5; i++ {
		assert.Same(t, first, store.GetSnapshot(context.Background()))
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&repo.articleCalls))

	close(block)
	wg.Wait()
}
