package structurer

import (
	"testing"
)

const sampleDraft = `## Elektroinstallation – Demontage

### Position 1.1: Deckenleuchte demontieren
- Beschreibung: Vorhandene Deckenleuchte fachgerecht demontieren und entsorgen
- Einheit: Stk
- Menge: 4

### Position 1.2: Steckdosen prüfen
- Einheit: Stk
- Menge: 12
- Hinweise: Bestand prüfen, ggf. erneuern

## Neuinstallation

Position 2.1: Steckdose setzen
- Beschreibung: Unterputz-Steckdose inkl. Anschluss
- Einheit: Stk
- Menge: 24
`

func TestParserParse(t *testing.T) {
	doc := NewParser().Parse(sampleDraft, "elektro")

	if doc.Gewerk != "elektro" {
		t.Errorf("Gewerk = %q", doc.Gewerk)
	}
	if len(doc.Chapters) != 2 {
		t.Fatalf("chapters = %d, want 2", len(doc.Chapters))
	}
	if doc.Chapters[0].Titel != "Elektroinstallation – Demontage" {
		t.Errorf("chapter title = %q", doc.Chapters[0].Titel)
	}
	if len(doc.Chapters[0].Positionen) != 2 {
		t.Fatalf("chapter 1 positions = %d, want 2", len(doc.Chapters[0].Positionen))
	}

	first := doc.Chapters[0].Positionen[0]
	if first.Nummer != "1.1" || first.Kurztext != "Deckenleuchte demontieren" {
		t.Errorf("first position = %+v", first)
	}
	if first.Langtext == "" || first.Einheit != "Stk" || first.Menge != 4 {
		t.Errorf("first position details = %+v", first)
	}

	second := doc.Chapters[0].Positionen[1]
	if second.Hinweise != "Bestand prüfen, ggf. erneuern" {
		t.Errorf("Hinweise = %q", second.Hinweise)
	}

	// Position headers work with and without markdown prefix.
	third := doc.Chapters[1].Positionen[0]
	if third.Nummer != "2.1" || third.Menge != 24 {
		t.Errorf("third position = %+v", third)
	}
}

func TestParserDefaultsMengeToOne(t *testing.T) {
	doc := NewParser().Parse("## Kapitel\n### Position 1.1: Ohne Menge\n- Einheit: Stk\n", "elektro")
	if len(doc.Chapters) != 1 || len(doc.Chapters[0].Positionen) != 1 {
		t.Fatalf("unexpected structure: %+v", doc)
	}
	if got := doc.Chapters[0].Positionen[0].Menge; got != 1 {
		t.Errorf("Menge = %v, want 1", got)
	}
}

func TestParserNonNumericMenge(t *testing.T) {
	doc := NewParser().Parse("## K\n### Position 1.1: X\n- Menge: nach Aufmaß\n", "maler")
	if got := doc.Chapters[0].Positionen[0].Menge; got != 1 {
		t.Errorf("Menge = %v, want 1", got)
	}
}

func TestParserGermanDecimalMenge(t *testing.T) {
	doc := NewParser().Parse("## K\n### Position 1.1: X\n- Menge: 12,5\n", "maler")
	if got := doc.Chapters[0].Positionen[0].Menge; got != 12.5 {
		t.Errorf("Menge = %v, want 12.5", got)
	}
}

func TestParserPositionWithoutChapterIsDropped(t *testing.T) {
	doc := NewParser().Parse("### Position 1.1: Verwaist\n- Menge: 3\n", "elektro")
	if len(doc.Chapters) != 0 {
		t.Errorf("expected no chapters, got %+v", doc.Chapters)
	}
}

func TestParserEmptyInput(t *testing.T) {
	doc := NewParser().Parse("", "elektro")
	if len(doc.Chapters) != 0 {
		t.Errorf("expected empty document, got %+v", doc)
	}
	if got := doc.FlattenPositions(); len(got) != 0 {
		t.Errorf("FlattenPositions() = %v", got)
	}
}
