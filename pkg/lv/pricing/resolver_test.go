package pricing

import (
	"strings"
	"testing"

	"github.com/byndl-mvp/PoC-sub002/pkg/catalog"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv"
)

var testEntries = []catalog.Position{
	{PositionCode: "1_1", Kurztext: "Deckenleuchte demontieren", Einheit: "Stk", DefaultEP: 65, MinEP: 50, MaxEP: 80, Gewerk: "elektro"},
	{PositionCode: "1_2", Kurztext: "Steckdose setzen Unterputz", Einheit: "Stk", DefaultEP: 75, MinEP: 60, MaxEP: 90, Gewerk: "elektro"},
	{PositionCode: "wanddurchbruch", Kurztext: "Wanddurchbruch herstellen", Einheit: "m²", DefaultEP: 150, MinEP: 120, MaxEP: 180, Gewerk: "elektro"},
}

func newTestResolver() *Resolver {
	return NewResolver(NewWordOverlapScorer(), 0.6, DefaultFallbackPrice())
}

func docWith(positions ...lv.Position) *lv.StructuredDocument {
	return &lv.StructuredDocument{
		Gewerk:   "elektro",
		Chapters: []lv.Chapter{{Titel: "Test", Positionen: positions}},
	}
}

func TestResolveByCode(t *testing.T) {
	doc := docWith(lv.Position{Nummer: "1.1", Kurztext: "völlig anderer Text", Menge: 4})
	priced := newTestResolver().Resolve(doc, testEntries)

	pos := priced.Chapters[0].Positionen[0]
	if !pos.CatalogMatch || pos.CatalogCode != "1_1" {
		t.Fatalf("expected code match, got %+v", pos)
	}
	if pos.EP != 65 || pos.GP != 260 {
		t.Errorf("EP/GP = %v/%v, want 65/260", pos.EP, pos.GP)
	}
}

func TestResolveBySimilarity(t *testing.T) {
	doc := docWith(lv.Position{Nummer: "9.9", Kurztext: "Deckenleuchte demontieren und entsorgen", Menge: 1})
	priced := newTestResolver().Resolve(doc, testEntries)

	pos := priced.Chapters[0].Positionen[0]
	if !pos.CatalogMatch || pos.CatalogCode != "1_1" {
		t.Fatalf("expected similarity match on 1_1, got %+v", pos)
	}
}

func TestResolveByUnit(t *testing.T) {
	doc := docWith(lv.Position{Nummer: "9.9", Kurztext: "Fläche bearbeiten", Einheit: "m²", Menge: 10})
	priced := newTestResolver().Resolve(doc, testEntries)

	pos := priced.Chapters[0].Positionen[0]
	if !pos.CatalogMatch || pos.CatalogCode != "wanddurchbruch" {
		t.Fatalf("expected unit match, got %+v", pos)
	}
}

func TestResolveFallback(t *testing.T) {
	doc := docWith(lv.Position{Nummer: "9.9", Kurztext: "Exotische Spezialleistung", Einheit: "psch", Menge: 2})
	priced := newTestResolver().Resolve(doc, testEntries)

	pos := priced.Chapters[0].Positionen[0]
	if pos.CatalogMatch {
		t.Fatalf("expected fallback, got catalog match %+v", pos)
	}
	if pos.EP != 100 || pos.MinEP != 80 || pos.MaxEP != 120 {
		t.Errorf("fallback prices = %v/%v/%v", pos.EP, pos.MinEP, pos.MaxEP)
	}
	if pos.Annahme == "" || !strings.Contains(pos.Annahme, "Exotische Spezialleistung") {
		t.Errorf("Annahme = %q", pos.Annahme)
	}
	if pos.GP != 200 {
		t.Errorf("GP = %v, want 200", pos.GP)
	}
}

// Every position gets a price: no input leaves the resolver unpriced.
func TestResolveTotality(t *testing.T) {
	doc := docWith(
		lv.Position{Nummer: "1.1", Kurztext: "a", Menge: 1},
		lv.Position{Kurztext: "", Menge: 1},
		lv.Position{Kurztext: "irgendwas ohne Bezug", Menge: 3},
	)
	priced := newTestResolver().Resolve(doc, nil)

	for _, pos := range priced.FlattenPositions() {
		if pos.EP <= 0 {
			t.Errorf("position %+v left unpriced", pos)
		}
	}
}

func TestResolveKeepsUnitFromCatalog(t *testing.T) {
	doc := docWith(lv.Position{Nummer: "1.1", Kurztext: "x", Menge: 1})
	priced := newTestResolver().Resolve(doc, testEntries)
	if got := priced.Chapters[0].Positionen[0].Einheit; got != "Stk" {
		t.Errorf("Einheit = %q, want Stk from catalog", got)
	}
}

func TestWordOverlapScorer(t *testing.T) {
	s := NewWordOverlapScorer()

	if got := s.Score("Deckenleuchte demontieren", "Deckenleuchte demontieren"); got != 1 {
		t.Errorf("identical texts score = %v, want 1", got)
	}
	if got := s.Score("Deckenleuchte demontieren", "Parkett schleifen"); got != 0 {
		t.Errorf("unrelated texts score = %v, want 0", got)
	}
	// Short words (len <= 3) are ignored.
	if got := s.Score("und der die", "und der die"); got != 0 {
		t.Errorf("stopword-only score = %v, want 0", got)
	}
}
