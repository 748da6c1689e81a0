package repository

import (
	"context"
	"fmt"

	"github.com/medicare-vn/medicare-be/database"
	"github.com/medicare-vn/medicare-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// KnowledgeRepo reads the three knowledge-base collections. Every load is
// projected to the fields used for relevance scoring only.
type KnowledgeRepo interface {
	LoadArticles(ctx context.Context, limit int64) ([]types.Article, error)
	LoadConditions(ctx context.Context, limit int64) ([]types.Condition, error)
	LoadCatalogSample(ctx context.Context, limit int64) ([]types.CatalogItem, error)
}

type knowledgeRepo struct {
	blogs    *mongo.Collection
	diseases *mongo.Collection
	products *mongo.Collection
}

func NewKnowledgeRepo(db *mongo.Database) KnowledgeRepo {
	return &knowledgeRepo{
		blogs:    db.Collection(database.CollectionBlogs),
		diseases: db.Collection(database.CollectionDiseases),
		products: db.Collection(database.CollectionProducts),
	}
}

func (r *knowledgeRepo) LoadArticles(ctx context.Context, limit int64) ([]types.Article, error) {
	filter := bson.M{
		"isApproved": bson.M{"$ne": false},
		"status":     bson.M{"$ne": "draft"},
	}
	projection := bson.M{
		"title":           1,
		"slug":            1,
		"summary":         1,
		"contentText":     1,
		"category":        1,
		"tags":            1,
		"metaDescription": 1,
	}
	cursor, err := r.blogs.Find(ctx, filter,
		options.Find().SetProjection(projection).SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to load articles: %w", err)
	}
	defer cursor.Close(ctx)

	var articles []types.Article
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("failed to decode articles: %w", err)
	}
	return articles, nil
}

func (r *knowledgeRepo) LoadConditions(ctx context.Context, limit int64) ([]types.Condition, error) {
	projection := bson.M{
		"name":        1,
		"slug":        1,
		"description": 1,
		"symptoms":    1,
		"causes":      1,
		"treatment":   1,
		"prevention":  1,
	}
	cursor, err := r.diseases.Find(ctx, bson.M{},
		options.Find().SetProjection(projection).SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to load conditions: %w", err)
	}
	defer cursor.Close(ctx)

	var conditions []types.Condition
	if err := cursor.All(ctx, &conditions); err != nil {
		return nil, fmt.Errorf("failed to decode conditions: %w", err)
	}
	return conditions, nil
}

func (r *knowledgeRepo) LoadCatalogSample(ctx context.Context, limit int64) ([]types.CatalogItem, error) {
	filter := bson.M{"is_active": bson.M{"$ne": false}}
	projection := bson.M{
		"name":        1,
		"description": 1,
		"brand":       1,
		"usage":       1,
		"ingredients": 1,
		"category":    1,
	}
	cursor, err := r.products.Find(ctx, filter,
		options.Find().SetProjection(projection).SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog sample: %w", err)
	}
	defer cursor.Close(ctx)

	var items []types.CatalogItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode catalog sample: %w", err)
	}
	return items, nil
}
