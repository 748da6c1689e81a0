package types

import "time"

// Article is a published health blog post, projected down to the fields
// used for relevance scoring.
type Article struct {
	ID              string   `json:"id" bson:"_id,omitempty"`
	Title           string   `json:"title" bson:"title"`
	Slug            string   `json:"slug" bson:"slug"`
	Summary         string   `json:"summary" bson:"summary"`
	BodyText        string   `json:"body_text" bson:"contentText"`
	Category        string   `json:"category" bson:"category"`
	Tags            []string `json:"tags" bson:"tags"`
	MetaDescription string   `json:"meta_description" bson:"metaDescription"`
}

// Condition is a disease record from the medical reference collection.
type Condition struct {
	Name        string   `json:"name" bson:"name"`
	Slug        string   `json:"slug" bson:"slug"`
	Description string   `json:"description" bson:"description"`
	Symptoms    []string `json:"symptoms" bson:"symptoms"`
	Causes      []string `json:"causes" bson:"causes"`
	Treatment   string   `json:"treatment" bson:"treatment"`
	Prevention  string   `json:"prevention" bson:"prevention"`
}

// CatalogItem is a projection of a product record. The knowledge snapshot
// carries only the descriptive fields; product search additionally fills
// the pricing fields so suggestions can be rendered to the user.
type CatalogItem struct {
	ID            string   `json:"id" bson:"_id,omitempty"`
	Name          string   `json:"name" bson:"name"`
	Description   string   `json:"description" bson:"description"`
	Brand         string   `json:"brand" bson:"brand"`
	Usage         string   `json:"usage" bson:"usage"`
	Ingredients   []string `json:"ingredients" bson:"ingredients"`
	Category      string   `json:"category" bson:"category"`
	Slug          string   `json:"slug,omitempty" bson:"slug,omitempty"`
	Image         string   `json:"image,omitempty" bson:"image,omitempty"`
	Price         int64    `json:"price,omitempty" bson:"price,omitempty"`
	OriginalPrice int64    `json:"original_price,omitempty" bson:"original_price,omitempty"`
	Discount      int      `json:"discount,omitempty" bson:"discount,omitempty"`
	Unit          string   `json:"unit,omitempty" bson:"unit,omitempty"`
	Manufacturer  string   `json:"manufacturer,omitempty" bson:"manufacturer,omitempty"`
	Country       string   `json:"country,omitempty" bson:"country,omitempty"`
	DosageForm    string   `json:"dosage_form,omitempty" bson:"dosage_form,omitempty"`
	Stock         *int     `json:"stock,omitempty" bson:"stock,omitempty"`
}

// KnowledgeSnapshot is an immutable copy of the cached knowledge base.
// It is never mutated after publication; a refresh builds a new one.
type KnowledgeSnapshot struct {
	Articles      []Article
	Conditions    []Condition
	CatalogSample []CatalogItem
	LoadedAt      time.Time
}

// Age reports how long ago the snapshot was loaded.
func (s *KnowledgeSnapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.LoadedAt)
}

// Empty reports whether the snapshot holds no documents at all.
func (s *KnowledgeSnapshot) Empty() bool {
	return len(s.Articles) == 0 && len(s.Conditions) == 0 && len(s.CatalogSample) == 0
}

// RankedResult pairs a document with its lexical relevance score.
// Scores are non-negative; result sets are sorted descending with ties
// keeping snapshot order.
type RankedResult[T any] struct {
	Item           T   `json:"item"`
	RelevanceScore int `json:"relevance_score"`
}

// KnowledgeSearchResult holds the top ranked documents for one query.
type KnowledgeSearchResult struct {
	Articles   []RankedResult[Article]     `json:"articles"`
	Conditions []RankedResult[Condition]   `json:"conditions"`
	Products   []RankedResult[CatalogItem] `json:"products"`
}
