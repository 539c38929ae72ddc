package models

// ServiceAreaRule maps a postcode prefix to a named service area. The stored
// prefix is the full leading alphabetic run of a postcode (e.g. "SW", "KT13"),
// so matching is exact equality, not a prefix scan. Prefixes are unique: a
// postcode matches at most one rule.
type ServiceAreaRule struct {
	BaseModel
	PostcodePrefix string `gorm:"uniqueIndex;not null" json:"postcode_prefix"`
	AreaName       string `gorm:"not null" json:"area_name"`
	Active         bool   `gorm:"default:true" json:"active"`
}

// PricingItem is one a-la-carte catalog entry. The catalog is static
// reference data, never mutated by customers.
type PricingItem struct {
	BaseModel
	ItemName    string  `gorm:"uniqueIndex;not null" json:"item_name"`
	Category    string  `gorm:"not null" json:"category"`
	Price       float64 `gorm:"not null" json:"price"`
	Description string  `json:"description"`
}
