package models

import "strings"

// Display defaults for fields the commerce platform may omit.
const (
	DefaultProductTitle = "Producto sin nombre"
	PriceUnavailable    = "Precio no disponible"
	DefaultPolicyLabel  = "Política"
)

// Placeholder messages substituted when a fetch fails or returns nothing.
const (
	ProductsFetchFailed = "Error al obtener productos."
	ProductsEmpty       = "No hay productos disponibles en este momento."
	PoliciesFetchFailed = "Error al obtener políticas."
	PoliciesEmpty       = "No hay políticas disponibles en este momento."
)

// Product is a catalog entry flattened from the platform's product listing.
type Product struct {
	Title string `json:"title"`
	Price string `json:"price,omitempty"`
	// Placeholder marks the sentinel entry returned in place of a real catalog.
	Placeholder bool `json:"placeholder,omitempty"`
}

// String renders the product as "Title - $Price".
func (p Product) String() string {
	if p.Placeholder {
		return p.Title
	}
	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = DefaultProductTitle
	}
	if strings.TrimSpace(p.Price) == "" {
		return title + " - " + PriceUnavailable
	}
	return title + " - $" + p.Price
}

// PlaceholderProducts returns the single-element list used when the catalog
// could not be fetched or was empty.
func PlaceholderProducts(msg string) []Product {
	return []Product{{Title: msg, Placeholder: true}}
}

// IsPlaceholderCatalog reports whether products is a placeholder list.
func IsPlaceholderCatalog(products []Product) bool {
	return len(products) == 1 && products[0].Placeholder
}

// Policy is a store policy flattened to a label/value pair.
type Policy struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// String renders the policy as "Label: Value".
func (p Policy) String() string {
	if p.Placeholder {
		return p.Label
	}
	label := strings.TrimSpace(p.Label)
	if label == "" {
		label = DefaultPolicyLabel
	}
	return label + ": " + p.Value
}

func PlaceholderPolicies(msg string) []Policy {
	return []Policy{{Label: msg, Placeholder: true}}
}

// ProductStrings returns the display strings of products, in order.
func ProductStrings(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.String()
	}
	return out
}

// PolicyStrings returns the display strings of policies, in order.
func PolicyStrings(policies []Policy) []string {
	out := make([]string, len(policies))
	for i, p := range policies {
		out[i] = p.String()
	}
	return out
}
