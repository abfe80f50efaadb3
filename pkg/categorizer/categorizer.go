package categorizer

import (
	"context"
	"fmt"
	"strings"

	"pitstop/internal/config"
)

// Category is one of the fixed topics a customer query can be about.
type Category string

const (
	CategoryShirts      Category = "shirts"
	CategoryHelmets     Category = "helmets"
	CategoryAccessories Category = "accessories"
	CategoryPrices      Category = "prices"
	CategoryPolicies    Category = "policies"
	// CategoryGeneral is the fallback when nothing else matches. It never has keywords.
	CategoryGeneral Category = "general"
)

// Canonical is the order in which matched categories are reported.
var Canonical = []Category{
	CategoryShirts,
	CategoryHelmets,
	CategoryAccessories,
	CategoryPrices,
	CategoryPolicies,
}

// ParseCategory validates a category name against the closed set.
func ParseCategory(name string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(name)))
	if c == CategoryGeneral {
		return c, nil
	}
	for _, known := range Canonical {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", name)
}

// KeywordTable maps a category to its ordered keyword substrings.
type KeywordTable map[Category][]string

// DefaultQueryKeywords are the store's built-in query keyword tables.
func DefaultQueryKeywords() KeywordTable {
	table, _ := QueryTable(config.DefaultCategories())
	return table
}

// QueryTable builds a keyword table from configured categories. Category
// names outside the closed set are rejected.
func QueryTable(categories map[string]config.CategoryConfig) (KeywordTable, error) {
	table := make(KeywordTable, len(categories))
	for name, cc := range categories {
		cat, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		if cat == CategoryGeneral {
			continue
		}
		table[cat] = append([]string(nil), cc.QueryKeywords...)
	}
	return table, nil
}

// QueryCategorizer maps a normalised query to the categories it is about.
// An empty result means the caller should fall back to general context.
type QueryCategorizer interface {
	Categorize(ctx context.Context, query string) ([]Category, error)
}

// NormalizeQuery lower-cases and trims a raw user message.
func NormalizeQuery(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// KeywordCategorizer matches categories by plain substring containment.
type KeywordCategorizer struct {
	table KeywordTable
}

// NewKeywordCategorizer copies table, lower-casing every keyword and dropping
// empty ones so a blank keyword can never match every query.
func NewKeywordCategorizer(table KeywordTable) *KeywordCategorizer {
	normalized := make(KeywordTable, len(table))
	for cat, words := range table {
		if cat == CategoryGeneral {
			continue
		}
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				normalized[cat] = append(normalized[cat], w)
			}
		}
	}
	return &KeywordCategorizer{table: normalized}
}

// Match returns every category with at least one keyword contained in query,
// in canonical order.
func (k *KeywordCategorizer) Match(query string) []Category {
	query = NormalizeQuery(query)
	if query == "" {
		return nil
	}

	var matched []Category
	for _, cat := range Canonical {
		for _, word := range k.table[cat] {
			if strings.Contains(query, word) {
				matched = append(matched, cat)
				break
			}
		}
	}
	return matched
}

// Categorize implements QueryCategorizer. It never fails.
func (k *KeywordCategorizer) Categorize(_ context.Context, query string) ([]Category, error) {
	return k.Match(query), nil
}

var _ QueryCategorizer = (*KeywordCategorizer)(nil)
