package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// Pattern cascade for catalog source lines. ORDER MATTERS: patterns are tried
// top to bottom, first match wins per line (same contract as the prompt
// prefix parser in pkg/ai history of this codebase).

// parsedLine is the intermediate result of a matched catalog line.
type parsedLine struct {
	Nummer string // "1.1" when the line carried a position number
	Text   string
	Preis  string // raw price expression, still unparsed
}

// linePattern implements a single try-parse step of the cascade.
type linePattern struct {
	re    *regexp.Regexp
	build func(m []string) parsedLine
}

var linePatterns = []linePattern{
	// Position 1.1: Deckenleuchte demontieren -- **50-80 €/Stk**
	{
		re: regexp.MustCompile(`^Position\s+(\d+(?:\.\d+)+)\s*:\s*(.+?)\s*--\s*\*\*(.+?)\*\*\s*$`),
		build: func(m []string) parsedLine {
			return parsedLine{Nummer: m[1], Text: m[2], Preis: m[3]}
		},
	},
	// - Position 1.1: Deckenleuchte demontieren -- **50-80 €/Stk**
	{
		re: regexp.MustCompile(`^-\s*Position\s+(\d+(?:\.\d+)+)\s*:\s*(.+?)\s*--\s*\*\*(.+?)\*\*\s*$`),
		build: func(m []string) parsedLine {
			return parsedLine{Nummer: m[1], Text: m[2], Preis: m[3]}
		},
	},
	// Wanddurchbruch herstellen: **120-180 €**
	{
		re: regexp.MustCompile(`^([^:]+?)\s*:\s*\*\*(.+?)\*\*\s*$`),
		build: func(m []string) parsedLine {
			return parsedLine{Text: m[1], Preis: m[2]}
		},
	},
	// - Wanddurchbruch herstellen -- **120-180 €**
	{
		re: regexp.MustCompile(`^-\s*(.+?)\s*--\s*\*\*(.+?)\*\*\s*$`),
		build: func(m []string) parsedLine {
			return parsedLine{Text: m[1], Preis: m[2]}
		},
	},
}

// tryParseLine runs the cascade. ok is false when no pattern matched; the
// caller skips such lines without failing the build.
func tryParseLine(line string) (parsedLine, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return parsedLine{}, false
	}
	for _, p := range linePatterns {
		if m := p.re.FindStringSubmatch(trimmed); m != nil {
			return p.build(m), true
		}
	}
	return parsedLine{}, false
}

// Price expression cascade. Recognized shapes, in order:
//
//	50-80 €/Stk          range with unit
//	120-180 €            range without unit (unit defaults to Stk)
//	~65 €/Stk            approximate single value with unit
//	65 €                 bare single value
//
// Thousands-separated numbers (1.200-1.800 €) are handled by the German
// number parser, not by separate patterns.
const defaultEinheit = "Stk"

var (
	numExpr = `([\d.,]+)`

	priceRangeUnit  = regexp.MustCompile(`^~?\s*` + numExpr + `\s*(?:-|–|bis)\s*` + numExpr + `\s*€\s*/\s*(\S+)\s*$`)
	priceRange      = regexp.MustCompile(`^~?\s*` + numExpr + `\s*(?:-|–|bis)\s*` + numExpr + `\s*€\s*$`)
	priceSingleUnit = regexp.MustCompile(`^~?\s*` + numExpr + `\s*€\s*/\s*(\S+)\s*$`)
	priceSingle     = regexp.MustCompile(`^~?\s*` + numExpr + `\s*€?\s*$`)

	thousandsForm = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
)

// parsePrice resolves a raw price expression into min/max/default and unit.
func parsePrice(expr string) (PriceInfo, bool) {
	expr = strings.TrimSpace(expr)

	if m := priceRangeUnit.FindStringSubmatch(expr); m != nil {
		min, ok1 := parseGermanNumber(m[1])
		max, ok2 := parseGermanNumber(m[2])
		if ok1 && ok2 {
			return PriceInfo{Min: min, Max: max, Default: (min + max) / 2, Einheit: m[3]}, true
		}
	}
	if m := priceRange.FindStringSubmatch(expr); m != nil {
		min, ok1 := parseGermanNumber(m[1])
		max, ok2 := parseGermanNumber(m[2])
		if ok1 && ok2 {
			return PriceInfo{Min: min, Max: max, Default: (min + max) / 2, Einheit: defaultEinheit}, true
		}
	}
	if m := priceSingleUnit.FindStringSubmatch(expr); m != nil {
		if v, ok := parseGermanNumber(m[1]); ok {
			return PriceInfo{Min: v, Max: v, Default: v, Einheit: m[2]}, true
		}
	}
	if m := priceSingle.FindStringSubmatch(expr); m != nil {
		if v, ok := parseGermanNumber(m[1]); ok {
			return PriceInfo{Min: v, Max: v, Default: v, Einheit: defaultEinheit}, true
		}
	}
	return PriceInfo{}, false
}

// parseGermanNumber handles "1.200" (thousands) and "12,50" (decimal comma).
func parseGermanNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else if thousandsForm.MatchString(s) {
		s = strings.ReplaceAll(s, ".", "")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Quality tiers are extracted opportunistically from lines like
// "Budget: 45 € / Standard: 65 € / Premium: 95 €".
var qualityTierRe = regexp.MustCompile(`(?i)budget\s*:?\s*([\d.,]+)\s*€?\D*standard\s*:?\s*([\d.,]+)\s*€?\D*premium\s*:?\s*([\d.,]+)`)

func tryParseQualityTiers(line string) (map[string]float64, bool) {
	m := qualityTierRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	budget, ok1 := parseGermanNumber(m[1])
	standard, ok2 := parseGermanNumber(m[2])
	premium, ok3 := parseGermanNumber(m[3])
	if !ok1 || !ok2 || !ok3 {
		return nil, false
	}
	return map[string]float64{
		"budget":   budget,
		"standard": standard,
		"premium":  premium,
	}, true
}
