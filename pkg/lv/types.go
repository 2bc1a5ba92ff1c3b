package lv

// Core document structures for a Leistungsverzeichnis (LV): one priced,
// itemized specification document per Gewerk (trade).

// StructuredDocument is the result of parsing a narrative draft into
// chapters and line items. It carries no pricing yet.
type StructuredDocument struct {
	Gewerk   string    `json:"gewerk"`
	Chapters []Chapter `json:"chapters"`
}

type Chapter struct {
	Titel      string     `json:"titel"`
	Positionen []Position `json:"positionen"`
}

type Position struct {
	Nummer   string  `json:"nummer"`
	Kurztext string  `json:"kurztext"`
	Langtext string  `json:"langtext"`
	Einheit  string  `json:"einheit"`
	Menge    float64 `json:"menge"`
	Hinweise string  `json:"hinweise,omitempty"`
}

// FlattenPositions returns all positions across chapters in document order.
// A document without chapters yields an empty slice.
func (d *StructuredDocument) FlattenPositions() []Position {
	var out []Position
	for _, ch := range d.Chapters {
		out = append(out, ch.Positionen...)
	}
	return out
}

// PricedDocument is a StructuredDocument after price resolution and rule
// enforcement. Warnings collect non-fatal findings (e.g. unmet required
// positions) instead of failing the pipeline.
type PricedDocument struct {
	Gewerk   string          `json:"gewerk"`
	Chapters []PricedChapter `json:"chapters"`
	Warnings []string        `json:"warnings,omitempty"`
}

type PricedChapter struct {
	Titel      string           `json:"titel"`
	Positionen []PricedPosition `json:"positionen"`
}

// PricedPosition extends a Position with unit pricing. CatalogMatch is false
// when no catalog entry could be resolved; such positions carry an Annahme
// (assumption) note and fallback pricing rather than an error.
type PricedPosition struct {
	Position
	EP           float64 `json:"ep"`
	MinEP        float64 `json:"minEP"`
	MaxEP        float64 `json:"maxEP"`
	GP           float64 `json:"gp"`
	CatalogMatch bool    `json:"catalogMatch"`
	CatalogCode  string  `json:"catalogCode,omitempty"`
	Annahme      string  `json:"annahme,omitempty"`
	// ManualPricingRequired marks positions synthesized from upload data
	// that carry no catalog price yet.
	ManualPricingRequired bool `json:"manualPricingRequired,omitempty"`
}

// Recalculate refreshes the extended price from quantity and unit price.
func (p *PricedPosition) Recalculate() {
	p.GP = p.Menge * p.EP
}

func (d *PricedDocument) FlattenPositions() []*PricedPosition {
	var out []*PricedPosition
	for i := range d.Chapters {
		for j := range d.Chapters[i].Positionen {
			out = append(out, &d.Chapters[i].Positionen[j])
		}
	}
	return out
}

// Annahmen collects the assumption notes of all positions.
func (d *PricedDocument) Annahmen() []string {
	var out []string
	for _, p := range d.FlattenPositions() {
		if p.Annahme != "" {
			out = append(out, p.Annahme)
		}
	}
	return out
}

// Metadata is attached to a persisted document for auditability.
type Metadata struct {
	PositionCount     int      `json:"positionCount"`
	AnsweredQuestions int      `json:"answeredQuestions"`
	Annahmen          []string `json:"annahmen,omitempty"`
	Warnings          []string `json:"warnings,omitempty"`
}
