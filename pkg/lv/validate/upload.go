package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/byndl-mvp/PoC-sub002/pkg/lv"
	"github.com/byndl-mvp/PoC-sub002/pkg/upload"
)

// uploadChapterTitle collects positions synthesized from upload evidence.
const uploadChapterTitle = "Ergänzungen aus Unterlagen"

// UploadAuthority is pass B: uploaded structured evidence is authoritative.
// Expected entries derived from the upload are matched against the document;
// unmatched entries are synthesized as unpriced positions, and existing
// positions contradicting the evidence are removed. An upload from which
// nothing can be derived leaves the document unchanged.
type UploadAuthority struct{}

func NewUploadAuthority() *UploadAuthority {
	return &UploadAuthority{}
}

func (v *UploadAuthority) Name() string { return "upload-authority" }

func (v *UploadAuthority) Apply(doc *lv.PricedDocument, vctx *Context) *lv.PricedDocument {
	expected := upload.DeriveExpected(vctx.Upload)
	if len(expected) == 0 {
		return doc
	}

	// Match every expected entry first so the contradiction check never
	// touches a position that satisfies some entry.
	matched := map[string]struct{}{}
	var unmatched []upload.ExpectedPosition
	for _, e := range expected {
		hit := false
		for _, pos := range doc.FlattenPositions() {
			if positionSatisfies(pos, e) {
				matched[positionIdentity(pos)] = struct{}{}
				hit = true
			}
		}
		if !hit {
			unmatched = append(unmatched, e)
		}
	}

	removeContradicting(doc, expected, matched, vctx)
	synthesize(doc, unmatched)

	return doc
}

// positionSatisfies: required-quantity text containment OR (dimension-text
// containment AND material-text containment).
func positionSatisfies(pos *lv.PricedPosition, e upload.ExpectedPosition) bool {
	text := strings.ToLower(pos.Kurztext + " " + pos.Langtext)
	menge := upload.FormatMenge(e.Menge)

	qtyVariants := []string{
		menge + " " + strings.ToLower(e.Einheit),
		menge + "x",
	}
	if e.Label != "" {
		qtyVariants = append(qtyVariants, menge+" "+strings.ToLower(e.Label))
	}
	for _, v := range qtyVariants {
		if strings.Contains(text, v) {
			return true
		}
	}

	if e.DimensionText != "" && e.Material != "" {
		if strings.Contains(text, strings.ToLower(e.DimensionText)) &&
			strings.Contains(text, strings.ToLower(e.Material)) {
			return true
		}
	}
	return false
}

var (
	dimTokenRe = regexp.MustCompile(`\d+(?:[.,]\d+)?\s*x\s*\d+(?:[.,]\d+)?`)
	qtyTokenRe = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(stk|stück|stueck|m²|qm|lfm)`)
)

// removeContradicting drops positions that share a material with an expected
// entry but whose quantity or dimension text disagrees with it.
func removeContradicting(doc *lv.PricedDocument, expected []upload.ExpectedPosition, matched map[string]struct{}, vctx *Context) {
	for ci := range doc.Chapters {
		kept := doc.Chapters[ci].Positionen[:0]
		for i := range doc.Chapters[ci].Positionen {
			pos := &doc.Chapters[ci].Positionen[i]
			if _, ok := matched[positionIdentity(pos)]; ok {
				kept = append(kept, *pos)
				continue
			}
			if e, hit := contradicts(pos, expected); hit {
				if vctx.Logger != nil {
					vctx.Logger.Info("validate", "position contradicts upload data, removed", map[string]interface{}{
						"position": pos.Kurztext,
						"expected": e.Titel,
					})
				}
				continue
			}
			kept = append(kept, *pos)
		}
		doc.Chapters[ci].Positionen = kept
	}
}

func contradicts(pos *lv.PricedPosition, expected []upload.ExpectedPosition) (upload.ExpectedPosition, bool) {
	text := strings.ToLower(pos.Kurztext + " " + pos.Langtext)
	for _, e := range expected {
		if e.Material == "" || !strings.Contains(text, strings.ToLower(e.Material)) {
			continue
		}
		if e.DimensionText != "" {
			if dim := dimTokenRe.FindString(text); dim != "" &&
				!strings.Contains(text, strings.ToLower(e.DimensionText)) {
				return e, true
			}
		}
		if m := qtyTokenRe.FindStringSubmatch(text); m != nil {
			v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
			if err == nil && e.Menge > 0 && v != e.Menge {
				return e, true
			}
		}
	}
	return upload.ExpectedPosition{}, false
}

// synthesize appends unmatched expected entries as positions requiring
// manual pricing, with their provenance recorded.
func synthesize(doc *lv.PricedDocument, unmatched []upload.ExpectedPosition) {
	if len(unmatched) == 0 {
		return
	}

	chapterIdx := -1
	for i := range doc.Chapters {
		if doc.Chapters[i].Titel == uploadChapterTitle {
			chapterIdx = i
			break
		}
	}
	if chapterIdx == -1 {
		doc.Chapters = append(doc.Chapters, lv.PricedChapter{Titel: uploadChapterTitle})
		chapterIdx = len(doc.Chapters) - 1
	}

	for _, e := range unmatched {
		n := len(doc.Chapters[chapterIdx].Positionen) + 1
		pos := lv.PricedPosition{
			Position: lv.Position{
				Nummer:   fmt.Sprintf("U.%d", n),
				Kurztext: e.Titel,
				Einheit:  e.Einheit,
				Menge:    e.Menge,
			},
			EP:                    0,
			MinEP:                 0,
			MaxEP:                 0,
			CatalogMatch:          false,
			ManualPricingRequired: true,
			Annahme:               fmt.Sprintf("Aus Upload (%s) übernommen, Preis manuell zu ermitteln", e.Source),
		}
		if len(e.Raeume) > 0 {
			pos.Hinweise = "Räume: " + strings.Join(e.Raeume, ", ")
		}
		pos.Recalculate()
		doc.Chapters[chapterIdx].Positionen = append(doc.Chapters[chapterIdx].Positionen, pos)
	}
}

// positionIdentity keys a position across the match and removal phases.
func positionIdentity(pos *lv.PricedPosition) string {
	return pos.Nummer + "|" + pos.Kurztext
}
