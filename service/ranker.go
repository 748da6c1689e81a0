package service

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/medicare-vn/medicare-be/types"
)

const (
	topArticles   = 3
	topConditions = 3
	topProducts   = 5

	titleHitScore = 3
	nameHitScore  = 2
	blobHitScore  = 1
)

// Ranker scores cached documents against a free-text query. Matching is
// purely lexical: a token hitting the title/name field counts more than a
// hit anywhere else in the document text.
type Ranker struct{}

func NewRanker() *Ranker {
	return &Ranker{}
}

// Search ranks the snapshot against the query and returns the top results
// per category. For equal scores the snapshot order is preserved.
func (r *Ranker) Search(query string, snap *types.KnowledgeSnapshot) types.KnowledgeSearchResult {
	tokens := queryTokens(query)
	result := types.KnowledgeSearchResult{}
	if len(tokens) == 0 || snap == nil {
		return result
	}

	for _, article := range snap.Articles {
		blob := buildBlob(
			article.Title,
			article.Summary,
			article.BodyText,
			article.MetaDescription,
			strings.Join(article.Tags, " "),
		)
		score := scoreDocument(tokens, strings.ToLower(article.Title), blob, titleHitScore)
		if score > 0 {
			result.Articles = append(result.Articles, types.RankedResult[types.Article]{
				Item:           article,
				RelevanceScore: score,
			})
		}
	}

	for _, condition := range snap.Conditions {
		blob := buildBlob(
			condition.Name,
			condition.Description,
			strings.Join(condition.Symptoms, " "),
			strings.Join(condition.Causes, " "),
			condition.Treatment,
			condition.Prevention,
		)
		score := scoreDocument(tokens, strings.ToLower(condition.Name), blob, titleHitScore)
		if score > 0 {
			result.Conditions = append(result.Conditions, types.RankedResult[types.Condition]{
				Item:           condition,
				RelevanceScore: score,
			})
		}
	}

	for _, item := range snap.CatalogSample {
		blob := buildBlob(
			item.Name,
			item.Description,
			item.Brand,
			item.Usage,
			strings.Join(item.Ingredients, " "),
		)
		score := scoreDocument(tokens, strings.ToLower(item.Name), blob, nameHitScore)
		if score > 0 {
			result.Products = append(result.Products, types.RankedResult[types.CatalogItem]{
				Item:           item,
				RelevanceScore: score,
			})
		}
	}

	sortRanked(result.Articles)
	sortRanked(result.Conditions)
	sortRanked(result.Products)

	result.Articles = topN(result.Articles, topArticles)
	result.Conditions = topN(result.Conditions, topConditions)
	result.Products = topN(result.Products, topProducts)
	return result
}

// queryTokens lowercases and splits the query, dropping tokens of two
// runes or fewer.
func queryTokens(query string) []string {
	var tokens []string
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(tok) > 2 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func buildBlob(fields ...string) string {
	var parts []string
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func scoreDocument(tokens []string, titleLower, blob string, titleWeight int) int {
	score := 0
	for _, tok := range tokens {
		if !strings.Contains(blob, tok) {
			continue
		}
		if strings.Contains(titleLower, tok) {
			score += titleWeight
		} else {
			score += blobHitScore
		}
	}
	return score
}

// sortRanked orders by descending score; the stable sort keeps snapshot
// order for ties.
func sortRanked[T any](results []types.RankedResult[T]) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
}

func topN[T any](results []types.RankedResult[T], n int) []types.RankedResult[T] {
	if len(results) > n {
		return results[:n]
	}
	return results
}
