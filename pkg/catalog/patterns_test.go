package catalog

import (
	"testing"
)

func TestTryParseLine(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantOk     bool
		wantNummer string
		wantText   string
		wantPreis  string
	}{
		{
			name:       "numbered position",
			line:       "Position 1.1: Deckenleuchte demontieren -- **50-80 €/Stk**",
			wantOk:     true,
			wantNummer: "1.1",
			wantText:   "Deckenleuchte demontieren",
			wantPreis:  "50-80 €/Stk",
		},
		{
			name:       "dashed numbered position",
			line:       "- Position 2.3: Steckdose setzen -- **60-90 €/Stk**",
			wantOk:     true,
			wantNummer: "2.3",
			wantText:   "Steckdose setzen",
			wantPreis:  "60-90 €/Stk",
		},
		{
			name:      "colon form without number",
			line:      "Wanddurchbruch herstellen: **120-180 €**",
			wantOk:    true,
			wantText:  "Wanddurchbruch herstellen",
			wantPreis: "120-180 €",
		},
		{
			name:      "dashed form without number",
			line:      "- Tapete entfernen -- **3-5 €/m²**",
			wantOk:    true,
			wantText:  "Tapete entfernen",
			wantPreis: "3-5 €/m²",
		},
		{
			name:   "prose line",
			line:   "Die folgenden Preise gelten für Altbauten.",
			wantOk: false,
		},
		{
			name:   "empty line",
			line:   "   ",
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tryParseLine(tt.line)
			if ok != tt.wantOk {
				t.Fatalf("tryParseLine(%q) ok = %v, want %v", tt.line, ok, tt.wantOk)
			}
			if !ok {
				return
			}
			if got.Nummer != tt.wantNummer {
				t.Errorf("Nummer = %q, want %q", got.Nummer, tt.wantNummer)
			}
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
			if got.Preis != tt.wantPreis {
				t.Errorf("Preis = %q, want %q", got.Preis, tt.wantPreis)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantOk  bool
		want    PriceInfo
	}{
		{
			name:   "range with unit",
			expr:   "50-80 €/Stk",
			wantOk: true,
			want:   PriceInfo{Min: 50, Max: 80, Default: 65, Einheit: "Stk"},
		},
		{
			name:   "range without unit",
			expr:   "120-180 €",
			wantOk: true,
			want:   PriceInfo{Min: 120, Max: 180, Default: 150, Einheit: "Stk"},
		},
		{
			name:   "approximate single with unit",
			expr:   "~65 €/Stk",
			wantOk: true,
			want:   PriceInfo{Min: 65, Max: 65, Default: 65, Einheit: "Stk"},
		},
		{
			name:   "single without unit",
			expr:   "65 €",
			wantOk: true,
			want:   PriceInfo{Min: 65, Max: 65, Default: 65, Einheit: "Stk"},
		},
		{
			name:   "thousands separated range",
			expr:   "1.200-1.800 €",
			wantOk: true,
			want:   PriceInfo{Min: 1200, Max: 1800, Default: 1500, Einheit: "Stk"},
		},
		{
			name:   "decimal comma with unit",
			expr:   "12,50 €/m²",
			wantOk: true,
			want:   PriceInfo{Min: 12.5, Max: 12.5, Default: 12.5, Einheit: "m²"},
		},
		{
			name:   "bis range",
			expr:   "40 bis 60 €/m²",
			wantOk: true,
			want:   PriceInfo{Min: 40, Max: 60, Default: 50, Einheit: "m²"},
		},
		{
			name:   "garbage",
			expr:   "auf Anfrage",
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parsePrice(tt.expr)
			if ok != tt.wantOk {
				t.Fatalf("parsePrice(%q) ok = %v, want %v", tt.expr, ok, tt.wantOk)
			}
			if !ok {
				return
			}
			if got != tt.want {
				t.Errorf("parsePrice(%q) = %+v, want %+v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParseGermanNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOk bool
	}{
		{"1.200", 1200, true},
		{"12,50", 12.5, true},
		{"1.234,56", 1234.56, true},
		{"65", 65, true},
		{"1.23", 1.23, true}, // not a thousands form, plain decimal point
		{"", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseGermanNumber(tt.in)
		if ok != tt.wantOk || got != tt.want {
			t.Errorf("parseGermanNumber(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestTryParseQualityTiers(t *testing.T) {
	tiers, ok := tryParseQualityTiers("Budget: 45 € / Standard: 65 € / Premium: 95 €")
	if !ok {
		t.Fatal("expected tier line to parse")
	}
	if tiers["budget"] != 45 || tiers["standard"] != 65 || tiers["premium"] != 95 {
		t.Errorf("tiers = %v", tiers)
	}

	if _, ok := tryParseQualityTiers("Standard only: 65 €"); ok {
		t.Error("partial tier line should not parse")
	}
}
