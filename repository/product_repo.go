package repository

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/medicare-vn/medicare-be/database"
	"github.com/medicare-vn/medicare-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ProductRepo queries the live product catalog. Only active items are
// eligible; matching is a case-insensitive substring search over name,
// description and brand, in that order of priority.
type ProductRepo interface {
	SearchProducts(ctx context.Context, term string, limit int64) ([]types.CatalogItem, error)
}

type productRepo struct {
	collection *mongo.Collection
}

func NewProductRepo(db *mongo.Database) ProductRepo {
	return &productRepo{
		collection: db.Collection(database.CollectionProducts),
	}
}

func (r *productRepo) SearchProducts(ctx context.Context, term string, limit int64) ([]types.CatalogItem, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, nil
	}

	// Full term first, then each sub-token, keeping name matches ahead of
	// description and brand matches.
	or := []bson.M{{"name": caseInsensitive(term)}}
	for _, tok := range subTokens(term) {
		or = append(or, bson.M{"name": caseInsensitive(tok)})
	}
	or = append(or, bson.M{"description": caseInsensitive(term)})
	for _, tok := range subTokens(term) {
		or = append(or, bson.M{"description": caseInsensitive(tok)})
	}
	or = append(or, bson.M{"brand": caseInsensitive(term)})

	filter := bson.M{
		"$and": []bson.M{
			{"is_active": bson.M{"$ne": false}},
			{"$or": or},
		},
	}
	projection := bson.M{
		"name":        1,
		"price":       1,
		"discount":    1,
		"image":       1,
		"description": 1,
		"brand":       1,
		"usage":       1,
		"slug":        1,
		"category":    1,
		"unit":        1,
	}

	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetProjection(projection).SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer cursor.Close(ctx)

	var items []types.CatalogItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return items, nil
}

func caseInsensitive(term string) bson.Regex {
	return bson.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

func subTokens(term string) []string {
	var tokens []string
	for _, tok := range strings.Fields(term) {
		if utf8.RuneCountInString(tok) > 1 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
