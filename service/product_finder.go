package service

import (
	"context"
	"sort"
	"strings"

	"github.com/medicare-vn/medicare-be/repository"
	"github.com/medicare-vn/medicare-be/types"
	"github.com/sirupsen/logrus"
)

const defaultProductLimit = 5

// productSearcher is the product lookup surface the response providers
// depend on.
type productSearcher interface {
	FindProducts(ctx context.Context, term string, limit int) []types.CatalogItem
}

// ProductFinder queries the live catalog for product suggestions. A store
// failure yields an empty result, never an error: the chat response must
// still be produced when product lookup is down.
type ProductFinder struct {
	repo repository.ProductRepo
	log  *logrus.Logger
}

func NewProductFinder(repo repository.ProductRepo, log *logrus.Logger) *ProductFinder {
	return &ProductFinder{repo: repo, log: log}
}

// FindProducts over-fetches twice the limit, then re-ranks so items whose
// name contains the exact term come first. Ties keep store order.
func (f *ProductFinder) FindProducts(ctx context.Context, term string, limit int) []types.CatalogItem {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	if limit <= 0 {
		limit = defaultProductLimit
	}

	items, err := f.repo.SearchProducts(ctx, term, int64(limit*2))
	if err != nil {
		f.log.WithError(err).WithField("term", term).Error("product search failed")
		return []types.CatalogItem{}
	}

	lowerTerm := strings.ToLower(term)
	sort.SliceStable(items, func(i, j int) bool {
		return nameContains(items[i], lowerTerm) && !nameContains(items[j], lowerTerm)
	})

	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

func nameContains(item types.CatalogItem, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(item.Name), lowerTerm)
}
