package catalog

// Position is a priced reference entry for a specific scope of work,
// used to price generated LV line items.
type Position struct {
	PositionCode     string             `json:"positionCode"`
	Kurztext         string             `json:"kurztext"`
	Langtext         string             `json:"langtext,omitempty"`
	Einheit          string             `json:"einheit"`
	DefaultEP        float64            `json:"defaultEP"`
	MinEP            float64            `json:"minEP"`
	MaxEP            float64            `json:"maxEP"`
	Qualitaetsstufen map[string]float64 `json:"qualitaetsstufen,omitempty"`
	Gewerk           string             `json:"gewerk"`
	Hinweise         string             `json:"hinweise,omitempty"`
}

// Catalog maps a Gewerk code to its ordered position list.
type Catalog map[string][]Position

// PriceInfo is the result of parsing a price expression.
type PriceInfo struct {
	Min     float64
	Max     float64
	Default float64
	Einheit string
}
