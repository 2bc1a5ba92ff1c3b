package upload

import (
	"strings"
	"testing"
)

func TestDeriveExpectedNilContext(t *testing.T) {
	if got := DeriveExpected(nil); got != nil {
		t.Errorf("DeriveExpected(nil) = %v", got)
	}
}

func TestDeriveExpectedEmptyContext(t *testing.T) {
	if got := DeriveExpected(&Context{FileType: FileExcel}); len(got) != 0 {
		t.Errorf("DeriveExpected(empty) = %v", got)
	}
}

func TestGroupRowsAggregatesIdenticalRows(t *testing.T) {
	rows := make([]Row, 0, 37)
	for i := 0; i < 36; i++ {
		room := "Wohnzimmer"
		if i%2 == 1 {
			room = "Schlafzimmer"
		}
		rows = append(rows, Row{Material: "Kunststoff", Breite: 120, Hoehe: 140, Menge: 1, Raum: room})
	}
	// A differently sized window stays its own entry.
	rows = append(rows, Row{Material: "Kunststoff", Breite: 60, Hoehe: 80, Menge: 1, Raum: "Bad"})

	expected := DeriveExpected(&Context{FileType: FileExcel, Rows: rows})

	if len(expected) != 2 {
		t.Fatalf("expected entries = %d, want 2 groups", len(expected))
	}
	big := expected[0]
	if big.Menge != 36 {
		t.Errorf("grouped Menge = %v, want 36", big.Menge)
	}
	if big.DimensionText != "120x140" {
		t.Errorf("DimensionText = %q", big.DimensionText)
	}
	if len(big.Raeume) != 2 || big.Raeume[0] != "Schlafzimmer" {
		t.Errorf("Raeume = %v, want sorted room list", big.Raeume)
	}
	if !strings.Contains(big.Titel, "36 Stk") || !strings.Contains(big.Titel, "Kunststoff") {
		t.Errorf("Titel = %q", big.Titel)
	}
	if expected[1].Menge != 1 || expected[1].DimensionText != "60x80" {
		t.Errorf("second group = %+v", expected[1])
	}
}

func TestGroupRowsDefaultsMengeToOne(t *testing.T) {
	expected := DeriveExpected(&Context{
		FileType: FileCSV,
		Rows:     []Row{{Material: "Holz", Breite: 90, Hoehe: 210}},
	})
	if len(expected) != 1 || expected[0].Menge != 1 {
		t.Errorf("expected = %+v", expected)
	}
}

func TestMapStructured(t *testing.T) {
	ctx := &Context{
		FileType: FilePDF,
		Structured: &Structured{
			Items: []Item{
				{Label: "Innentür", Material: "Holz", Menge: 5, Raum: "Flur"},
			},
			Positions: []DocumentPosition{
				{Nummer: "3.1", Text: "Estrich ausgleichen", Einheit: "m²", Menge: 42},
			},
			Measurements: []Measurement{
				{Label: "Wandfläche", Breite: 400, Hoehe: 250},
			},
			DetectedObjects: []DetectedObject{
				{Label: "Heizkörper", Count: 3},
			},
		},
	}

	expected := DeriveExpected(ctx)
	if len(expected) != 4 {
		t.Fatalf("expected entries = %d, want 4", len(expected))
	}

	item := expected[0]
	if item.Menge != 5 || item.Material != "Holz" || len(item.Raeume) != 1 {
		t.Errorf("item entry = %+v", item)
	}
	pos := expected[1]
	if pos.Menge != 42 || pos.Einheit != "m²" {
		t.Errorf("position entry = %+v", pos)
	}
	meas := expected[2]
	if meas.Menge != 1 || meas.DimensionText != "400x250" {
		t.Errorf("measurement entry = %+v", meas)
	}
	obj := expected[3]
	if obj.Menge != 3 || obj.Einheit != "Stk" {
		t.Errorf("detected object entry = %+v", obj)
	}
}

func TestScanFreeText(t *testing.T) {
	ctx := &Context{
		FileType: FileText,
		Text:     "Geplant sind 4 Fenster im Erdgeschoss und 120 qm Wandfläche. Dazu 8 Steckdosen.",
	}

	expected := DeriveExpected(ctx)
	if len(expected) != 3 {
		t.Fatalf("expected entries = %d, want 3: %+v", len(expected), expected)
	}

	if expected[0].Menge != 4 || expected[0].Label != "Fenster" || expected[0].Einheit != "Stk" {
		t.Errorf("first = %+v", expected[0])
	}
	if expected[1].Menge != 120 || expected[1].Einheit != "m²" || expected[1].Label != "" {
		t.Errorf("second = %+v", expected[1])
	}
	if expected[2].Menge != 8 || expected[2].Label != "Steckdosen" {
		t.Errorf("third = %+v", expected[2])
	}
}

func TestFormatMenge(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{36, "36"},
		{12.5, "12.5"},
		{1, "1"},
	}
	for _, tt := range tests {
		if got := FormatMenge(tt.in); got != tt.want {
			t.Errorf("FormatMenge(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
