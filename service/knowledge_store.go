package service

import (
	"context"
	"sync"
	"time"

	"github.com/medicare-vn/medicare-be/repository"
	"github.com/medicare-vn/medicare-be/types"
	"github.com/sirupsen/logrus"
)

const (
	maxArticles      = 1000
	maxConditions    = 500
	maxCatalogSample = 2000
)

// KnowledgeStore caches an immutable snapshot of the knowledge base.
// A snapshot older than the TTL is rebuilt; while a rebuild is in flight
// every other caller keeps reading the previous snapshot. A failed rebuild
// keeps the stale snapshot rather than publishing an empty one.
type KnowledgeStore struct {
	repo    repository.KnowledgeRepo
	log     *logrus.Logger
	ttl     time.Duration
	timeout time.Duration

	mu         sync.Mutex
	snapshot   *types.KnowledgeSnapshot
	refreshing bool
}

func NewKnowledgeStore(repo repository.KnowledgeRepo, ttl, timeout time.Duration, log *logrus.Logger) *KnowledgeStore {
	return &KnowledgeStore{
		repo:    repo,
		log:     log,
		ttl:     ttl,
		timeout: timeout,
	}
}

// GetSnapshot returns the current snapshot, refreshing it first when it is
// missing or older than the TTL. Only one refresh runs at a time; callers
// that lose the race are served the previous snapshot immediately.
func (s *KnowledgeStore) GetSnapshot(ctx context.Context) *types.KnowledgeSnapshot {
	s.mu.Lock()
	snap := s.snapshot
	if snap != nil && snap.Age(time.Now()) < s.ttl {
		s.mu.Unlock()
		return snap
	}
	if s.refreshing {
		s.mu.Unlock()
		if snap != nil {
			return snap
		}
		return &types.KnowledgeSnapshot{}
	}
	s.refreshing = true
	s.mu.Unlock()

	fresh, err := s.load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshing = false
	if err != nil {
		s.log.WithError(err).Error("knowledge base refresh failed, keeping previous snapshot")
		if s.snapshot != nil {
			return s.snapshot
		}
		return &types.KnowledgeSnapshot{}
	}
	s.snapshot = fresh
	return fresh
}

func (s *KnowledgeStore) load(ctx context.Context) (*types.KnowledgeSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	articles, err := s.repo.LoadArticles(ctx, maxArticles)
	if err != nil {
		return nil, err
	}
	conditions, err := s.repo.LoadConditions(ctx, maxConditions)
	if err != nil {
		return nil, err
	}
	sample, err := s.repo.LoadCatalogSample(ctx, maxCatalogSample)
	if err != nil {
		return nil, err
	}

	snap := &types.KnowledgeSnapshot{
		Articles:      articles,
		Conditions:    conditions,
		CatalogSample: sample,
		LoadedAt:      time.Now(),
	}
	s.log.WithFields(logrus.Fields{
		"articles":   len(articles),
		"conditions": len(conditions),
		"catalog":    len(sample),
	}).Info("knowledge base loaded")
	return snap, nil
}
