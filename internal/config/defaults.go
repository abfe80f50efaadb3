package config

// DefaultSectionLimit caps how many entries a context section lists.
const DefaultSectionLimit = 5

const DefaultStoreDescription = "Somos especialistas en equipamiento para motorsports."

const DefaultFallbackReply = "Lo siento, no puedo responder en este momento debido a un problema técnico. Por favor, intenta de nuevo más tarde o contáctanos directamente."

// DefaultCategories returns the store's keyword tables and section texts.
// Keys are category names; "prices" has no product filter and "policies"
// lists policies instead of products.
func DefaultCategories() map[string]CategoryConfig {
	return map[string]CategoryConfig{
		"shirts": {
			QueryKeywords:   []string{"playeras", "camisas", "t-shirt", "remeras", "ropa"},
			ProductKeywords: []string{"playera", "oversized", "t-shirt", "camisa", "remera"},
			Label:           "Playeras disponibles",
			EmptyMessage:    "No hay playeras disponibles en este momento.",
			Limit:           DefaultSectionLimit,
		},
		"helmets": {
			QueryKeywords:   []string{"casco", "cascos", "helmet", "protección"},
			ProductKeywords: []string{"casco", "helmet", "arai", "bell", "schuberth"},
			Label:           "Cascos disponibles",
			EmptyMessage:    "No hay cascos disponibles en este momento.",
			Limit:           DefaultSectionLimit,
		},
		"accessories": {
			QueryKeywords:   []string{"accesorio", "guantes", "gloves", "visor", "intercomunicador"},
			ProductKeywords: []string{"accesorio", "guante", "glove", "visor", "intercom"},
			Label:           "Accesorios disponibles",
			EmptyMessage:    "No hay accesorios disponibles en este momento.",
			Limit:           DefaultSectionLimit,
		},
		"prices": {
			QueryKeywords: []string{"precio", "cuánto cuesta", "coste", "costo", "vale"},
			Label:         "Productos con precios",
			EmptyMessage:  "No hay información de precios disponible.",
			Limit:         DefaultSectionLimit,
		},
		"policies": {
			QueryKeywords: []string{"política", "garantía", "reembolso", "devoluciones", "envíos", "shipping"},
			Label:         "Políticas de la tienda",
			EmptyMessage:  "No encontré información sobre políticas.",
			Limit:         DefaultSectionLimit,
		},
	}
}
