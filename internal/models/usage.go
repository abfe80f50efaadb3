package models

// Operation names recorded on cost events.
const (
	ServiceTypeChat           = "chat"
	ServiceTypeCategorization = "categorization"
)
