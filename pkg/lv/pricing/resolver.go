package pricing

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/byndl-mvp/PoC-sub002/pkg/catalog"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv"
)

// Scorer computes a similarity score in [0,1] between a generated line item
// text and a catalog entry text. The resolver stays a greedy first-hit
// matcher; swapping the scorer (edit distance, embeddings) does not touch
// the pipeline.
type Scorer interface {
	Score(a, b string) float64
}

// WordOverlapScorer scores by shared words longer than MinWordLength divided
// by the larger of the two word counts.
type WordOverlapScorer struct {
	MinWordLength int
}

func NewWordOverlapScorer() *WordOverlapScorer {
	return &WordOverlapScorer{MinWordLength: 3}
}

var wordSplitRe = regexp.MustCompile(`[^\p{L}\p{N}]+`)

func (s *WordOverlapScorer) Score(a, b string) float64 {
	wordsA := significantWords(a, s.MinWordLength)
	wordsB := significantWords(b, s.MinWordLength)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	setB := make(map[string]struct{}, len(wordsB))
	for _, w := range wordsB {
		setB[w] = struct{}{}
	}
	shared := 0
	for _, w := range wordsA {
		if _, ok := setB[w]; ok {
			shared++
		}
	}

	larger := len(wordsA)
	if len(wordsB) > larger {
		larger = len(wordsB)
	}
	return float64(shared) / float64(larger)
}

func significantWords(text string, minLen int) []string {
	var out []string
	for _, w := range wordSplitRe.Split(strings.ToLower(text), -1) {
		if len([]rune(w)) > minLen {
			out = append(out, w)
		}
	}
	return out
}

// FallbackPrice is applied when no catalog entry matches; such positions are
// flagged as assumptions, never as errors.
type FallbackPrice struct {
	EP    float64
	MinEP float64
	MaxEP float64
}

func DefaultFallbackPrice() FallbackPrice {
	return FallbackPrice{EP: 100, MinEP: 80, MaxEP: 120}
}

// Resolver attaches pricing to every structured position. Matching order,
// first hit wins: exact position-code match (separators normalized), text
// similarity above the threshold, first entry sharing the unit, fallback.
type Resolver struct {
	scorer    Scorer
	threshold float64
	fallback  FallbackPrice
}

func NewResolver(scorer Scorer, threshold float64, fallback FallbackPrice) *Resolver {
	if scorer == nil {
		scorer = NewWordOverlapScorer()
	}
	return &Resolver{
		scorer:    scorer,
		threshold: threshold,
		fallback:  fallback,
	}
}

func (r *Resolver) Resolve(doc *lv.StructuredDocument, entries []catalog.Position) *lv.PricedDocument {
	priced := &lv.PricedDocument{Gewerk: doc.Gewerk}
	for _, ch := range doc.Chapters {
		pch := lv.PricedChapter{Titel: ch.Titel}
		for _, pos := range ch.Positionen {
			pch.Positionen = append(pch.Positionen, r.price(pos, entries))
		}
		priced.Chapters = append(priced.Chapters, pch)
	}
	return priced
}

func (r *Resolver) price(pos lv.Position, entries []catalog.Position) lv.PricedPosition {
	if entry, ok := r.match(pos, entries); ok {
		pp := lv.PricedPosition{
			Position:     pos,
			EP:           entry.DefaultEP,
			MinEP:        entry.MinEP,
			MaxEP:        entry.MaxEP,
			CatalogMatch: true,
			CatalogCode:  entry.PositionCode,
		}
		if pp.Einheit == "" {
			pp.Einheit = entry.Einheit
		}
		pp.Recalculate()
		return pp
	}

	pp := lv.PricedPosition{
		Position:     pos,
		EP:           r.fallback.EP,
		MinEP:        r.fallback.MinEP,
		MaxEP:        r.fallback.MaxEP,
		CatalogMatch: false,
		Annahme:      fmt.Sprintf("Kein Katalogpreis für %q gefunden, Schätzpreis angesetzt", pos.Kurztext),
	}
	pp.Recalculate()
	return pp
}

func (r *Resolver) match(pos lv.Position, entries []catalog.Position) (catalog.Position, bool) {
	// 1. Exact position-code match with normalized separators.
	if code := normalizeCode(pos.Nummer); code != "" {
		for _, entry := range entries {
			if normalizeCode(entry.PositionCode) == code {
				return entry, true
			}
		}
	}

	// 2. Text similarity, best score above the threshold.
	text := strings.TrimSpace(pos.Kurztext + " " + pos.Langtext)
	best := -1
	bestScore := 0.0
	for i, entry := range entries {
		score := r.scorer.Score(text, entry.Kurztext)
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	if best >= 0 && bestScore > r.threshold {
		return entries[best], true
	}

	// 3. First entry sharing the unit.
	if pos.Einheit != "" {
		for _, entry := range entries {
			if strings.EqualFold(entry.Einheit, pos.Einheit) {
				return entry, true
			}
		}
	}

	return catalog.Position{}, false
}

var codeNormalizeRe = regexp.MustCompile(`[^a-z0-9]+`)

func normalizeCode(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	code = codeNormalizeRe.ReplaceAllString(code, "_")
	return strings.Trim(code, "_")
}
