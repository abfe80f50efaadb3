package services

import (
	"fmt"
	"strings"

	"pitstop/internal/config"
	"pitstop/internal/models"
	"pitstop/pkg/categorizer"

	log "github.com/sirupsen/logrus"
)

// Section describes how one matched category is rendered into the context.
type Section struct {
	Label        string
	EmptyMessage string
	// ProductKeywords filter the catalog for product categories. Empty means
	// no filter.
	ProductKeywords []string
	Limit           int
}

// SectionsFromConfig converts configured categories into assembler sections.
func SectionsFromConfig(categories map[string]config.CategoryConfig) (map[categorizer.Category]Section, error) {
	sections := make(map[categorizer.Category]Section, len(categories))
	for name, cc := range categories {
		cat, err := categorizer.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", name, err)
		}
		if cat == categorizer.CategoryGeneral {
			continue
		}
		keywords := make([]string, 0, len(cc.ProductKeywords))
		for _, k := range cc.ProductKeywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				keywords = append(keywords, k)
			}
		}
		limit := cc.Limit
		if limit <= 0 {
			limit = config.DefaultSectionLimit
		}
		sections[cat] = Section{
			Label:           cc.Label,
			EmptyMessage:    cc.EmptyMessage,
			ProductKeywords: keywords,
			Limit:           limit,
		}
	}
	return sections, nil
}

// ContextAssembler builds the catalog context block sent alongside a query.
// It holds only static configuration and is safe for concurrent use.
type ContextAssembler struct {
	sections         map[categorizer.Category]Section
	storeDescription string
}

func NewContextAssembler(sections map[categorizer.Category]Section, storeDescription string) *ContextAssembler {
	if strings.TrimSpace(storeDescription) == "" {
		storeDescription = config.DefaultStoreDescription
	}
	return &ContextAssembler{sections: sections, storeDescription: storeDescription}
}

// Assemble renders one section per matched category, in the order given.
// With no categories it renders the general store summary instead.
func (a *ContextAssembler) Assemble(categories []categorizer.Category, products []models.Product, policies []models.Policy) string {
	if len(categories) == 0 {
		return a.generalSummary(products)
	}

	var sb strings.Builder
	for _, cat := range categories {
		sec, ok := a.sections[cat]
		if !ok {
			log.Debugf("No section configured for category %q, skipping", cat)
			continue
		}

		var items []string
		if cat == categorizer.CategoryPolicies {
			items = models.PolicyStrings(policies)
		} else {
			items = models.ProductStrings(filterProducts(products, sec.ProductKeywords))
		}
		sb.WriteString(renderSection(sec, items))
	}
	return sb.String()
}

func (a *ContextAssembler) generalSummary(products []models.Product) string {
	var sb strings.Builder
	sb.WriteString("Información general de la tienda:\n")
	if models.IsPlaceholderCatalog(products) {
		sb.WriteString("- " + products[0].String() + "\n")
	} else {
		fmt.Fprintf(&sb, "- Tenemos %d productos en total.\n", len(products))
	}
	sb.WriteString("- " + a.storeDescription + "\n")
	return sb.String()
}

func renderSection(sec Section, items []string) string {
	if len(items) == 0 {
		return "\n" + sec.EmptyMessage
	}
	if sec.Limit > 0 && len(items) > sec.Limit {
		items = items[:sec.Limit]
	}
	return "\n" + sec.Label + ":\n" + strings.Join(items, "\n")
}

// ProductsFor returns the products a category's section would list, before
// the section limit is applied. Unknown categories yield nil.
func (a *ContextAssembler) ProductsFor(cat categorizer.Category, products []models.Product) []models.Product {
	sec, ok := a.sections[cat]
	if !ok || cat == categorizer.CategoryPolicies {
		return nil
	}
	return filterProducts(products, sec.ProductKeywords)
}

// filterProducts keeps products whose display string contains any keyword.
// Placeholder entries always pass; no keywords means no filter.
func filterProducts(products []models.Product, keywords []string) []models.Product {
	if len(keywords) == 0 {
		return products
	}
	var out []models.Product
	for _, p := range products {
		if p.Placeholder || containsAny(strings.ToLower(p.String()), keywords) {
			out = append(out, p)
		}
	}
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
