package summary

import (
	"github.com/byndl-mvp/PoC-sub002/pkg/lv"
)

// Summary aggregates a priced document. It is fully recomputable from the
// positions alone; nothing here carries cumulative state.
type Summary struct {
	TotalPositions  int              `json:"totalPositions"`
	NetSum          float64          `json:"netSum"`
	GrossSum        float64          `json:"grossSum"`
	RiskBuffer      float64          `json:"riskBuffer"`
	CatalogMatches  int              `json:"catalogMatches"`
	AssumptionCount int              `json:"assumptionCount"`
	Chapters        []ChapterSummary `json:"chapters"`
}

type ChapterSummary struct {
	Titel      string  `json:"titel"`
	Positionen int     `json:"positionen"`
	Netto      float64 `json:"netto"`
}

// Calculator applies the risk-buffer bounds. The buffer grows with the
// share of assumption-based positions: more unconfirmed content, more
// markup.
type Calculator struct {
	MinBuffer float64
	MaxBuffer float64
}

func NewCalculator(minBuffer, maxBuffer float64) *Calculator {
	return &Calculator{MinBuffer: minBuffer, MaxBuffer: maxBuffer}
}

func (c *Calculator) Calculate(doc *lv.PricedDocument) Summary {
	s := Summary{}

	for _, ch := range doc.Chapters {
		cs := ChapterSummary{Titel: ch.Titel}
		for _, pos := range ch.Positionen {
			cs.Positionen++
			cs.Netto += pos.GP
			s.TotalPositions++
			s.NetSum += pos.GP
			if pos.CatalogMatch {
				s.CatalogMatches++
			}
			if pos.Annahme != "" {
				s.AssumptionCount++
			}
		}
		s.Chapters = append(s.Chapters, cs)
	}

	s.RiskBuffer = c.riskBuffer(s.AssumptionCount, s.TotalPositions)
	s.GrossSum = s.NetSum * (1 + s.RiskBuffer)
	return s
}

func (c *Calculator) riskBuffer(assumptions, total int) float64 {
	buffer := c.MinBuffer
	if total > 0 {
		buffer += float64(assumptions) / float64(total) * c.MinBuffer
	}
	if buffer < c.MinBuffer {
		buffer = c.MinBuffer
	}
	if buffer > c.MaxBuffer {
		buffer = c.MaxBuffer
	}
	return buffer
}

// Calculate uses the standard 5-10% risk-buffer bounds.
func Calculate(doc *lv.PricedDocument) Summary {
	return NewCalculator(0.05, 0.10).Calculate(doc)
}
