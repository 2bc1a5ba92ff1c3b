package validate

import (
	"fmt"

	"github.com/byndl-mvp/PoC-sub002/pkg/lv"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv/pricing"
)

const missingChapterTitle = "Ergänzend erfasste Leistungen"

// CreateMissingPositions inserts a position for every required rule the
// document does not satisfy. This is deliberately NOT part of the
// enforcement pipeline: callers opt in explicitly (the pipeline itself only
// records warnings for unmet requirements).
func CreateMissingPositions(doc *lv.PricedDocument, vctx *Context, cfg Config, fallback pricing.FallbackPrice) *lv.PricedDocument {
	rules := DeriveRules(vctx.Gewerk, vctx.Answers, cfg)

	var missing []RequiredRule
	for _, rule := range rules.Required {
		if !requirementMet(doc, rule) {
			missing = append(missing, rule)
		}
	}
	if len(missing) == 0 {
		return doc
	}

	chapterIdx := -1
	for i := range doc.Chapters {
		if doc.Chapters[i].Titel == missingChapterTitle {
			chapterIdx = i
			break
		}
	}
	if chapterIdx == -1 {
		doc.Chapters = append(doc.Chapters, lv.PricedChapter{Titel: missingChapterTitle})
		chapterIdx = len(doc.Chapters) - 1
	}

	for _, rule := range missing {
		n := len(doc.Chapters[chapterIdx].Positionen) + 1
		pos := lv.PricedPosition{
			Position: lv.Position{
				Nummer:   fmt.Sprintf("E.%d", n),
				Kurztext: fmt.Sprintf("Leistung gemäß Angabe %q", rule.RawAnswer),
				Einheit:  rule.Einheit,
				Menge:    rule.Menge,
			},
			EP:           fallback.EP,
			MinEP:        fallback.MinEP,
			MaxEP:        fallback.MaxEP,
			CatalogMatch: false,
			Annahme:      fmt.Sprintf("Automatisch aus Antwort %s ergänzt", rule.Key),
		}
		pos.Recalculate()
		doc.Chapters[chapterIdx].Positionen = append(doc.Chapters[chapterIdx].Positionen, pos)
	}

	return doc
}
