package generator

import (
	"strings"
	"testing"

	"github.com/byndl-mvp/PoC-sub002/pkg/catalog"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv/structurer"
	"github.com/byndl-mvp/PoC-sub002/pkg/session"
)

var fallbackEntries = []catalog.Position{
	{PositionCode: "1_1", Kurztext: "Steckdose setzen Unterputz", Einheit: "Stk", Gewerk: "elektro"},
	{PositionCode: "1_2", Kurztext: "Deckenleuchte montieren", Einheit: "Stk", Gewerk: "elektro"},
}

func TestDraftFromCatalog(t *testing.T) {
	answers := map[string]session.Answer{
		"elektro_zusaetzliche_steckdosen": {Value: "8 Stück"},
	}

	draft := NewFallback().Draft("elektro", answers, fallbackEntries)

	if !strings.Contains(draft, "## Elektroinstallation – Basisleistungen") {
		t.Errorf("missing chapter header:\n%s", draft)
	}
	if !strings.Contains(draft, "Steckdose setzen Unterputz") {
		t.Errorf("catalog entry missing from draft:\n%s", draft)
	}
	// The quantity of the topically related answer carries over.
	if !strings.Contains(draft, "- Menge: 8") {
		t.Errorf("answer quantity not applied:\n%s", draft)
	}
	// "Deckenleuchte montieren" shares no topic with the answers.
	if strings.Contains(draft, "Deckenleuchte montieren") {
		t.Errorf("topically unrelated entry included:\n%s", draft)
	}
}

func TestDraftSkipsNegativeAnswers(t *testing.T) {
	answers := map[string]session.Answer{
		"elektro_zusaetzliche_steckdosen": {Value: "Nein"},
		"elektro_netzwerk_dosen":          {Value: "4"},
	}

	draft := NewFallback().Draft("elektro", answers, nil)

	if strings.Contains(strings.ToLower(draft), "steckdosen") {
		t.Errorf("negative answer became a position:\n%s", draft)
	}
	if !strings.Contains(draft, "Netzwerk Dosen") {
		t.Errorf("affirmative answer missing:\n%s", draft)
	}
	if !strings.Contains(draft, "- Menge: 4") {
		t.Errorf("numeric answer value not used as quantity:\n%s", draft)
	}
}

// Skipped negative answers must not leave gaps in the numbering: the key
// sorting before the affirmative one here would otherwise push it to 1.2.
func TestDraftNumbersContiguouslyAfterSkips(t *testing.T) {
	answers := map[string]session.Answer{
		"maler_decken_streichen": {Value: "Nein"},
		"maler_flaeche_waende":   {Value: "120"},
	}

	draft := NewFallback().Draft("maler", answers, nil)

	if !strings.Contains(draft, "Position 1.1:") {
		t.Errorf("first position not numbered 1.1:\n%s", draft)
	}
	if strings.Contains(draft, "Position 1.2:") {
		t.Errorf("numbering gap after skipped answer:\n%s", draft)
	}
}

func TestDraftWithoutCatalogUsesAnswers(t *testing.T) {
	answers := map[string]session.Answer{
		"maler_flaeche_waende": {Value: "120"},
	}

	draft := NewFallback().Draft("maler", answers, nil)

	if !strings.Contains(draft, "Gemäß Angabe: 120") {
		t.Errorf("answer provenance missing:\n%s", draft)
	}
}

// The deterministic draft must round-trip through the same parser the
// generated drafts go through.
func TestDraftIsParseable(t *testing.T) {
	answers := map[string]session.Answer{
		"elektro_zusaetzliche_steckdosen": {Value: "8 Stück"},
	}

	draft := NewFallback().Draft("elektro", answers, fallbackEntries)
	doc := structurer.NewParser().Parse(draft, "elektro")

	if len(doc.Chapters) != 1 {
		t.Fatalf("chapters = %d, want 1:\n%s", len(doc.Chapters), draft)
	}
	positions := doc.FlattenPositions()
	if len(positions) == 0 {
		t.Fatalf("no positions parsed from draft:\n%s", draft)
	}
	if positions[0].Menge != 8 {
		t.Errorf("Menge = %v, want 8", positions[0].Menge)
	}
}
