package upload

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ExpectedPosition is one entry the upload data says the document must
// contain. Entries from spreadsheets are aggregated, everything else maps
// 1:1 to its source record.
type ExpectedPosition struct {
	Titel         string
	Menge         float64
	Einheit       string
	Material      string
	Label         string
	Raeume        []string
	DimensionText string // e.g. "120x140"
	Source        FileType
}

// DeriveExpected turns an upload context into the expected-positions list.
// A context from which nothing can be derived yields nil; the validation
// pass then leaves the document unchanged.
func DeriveExpected(ctx *Context) []ExpectedPosition {
	if ctx == nil {
		return nil
	}

	var out []ExpectedPosition
	out = append(out, groupRows(ctx.Rows, ctx.FileType)...)
	if ctx.Structured != nil {
		out = append(out, mapStructured(ctx.Structured, ctx.FileType)...)
	}
	out = append(out, scanFreeText(ctx.Text, ctx.FileType)...)
	return out
}

// groupRows aggregates spreadsheet rows by (material, width, height, length)
// and sums their quantities: 36 identical window rows become one expected
// entry with quantity 36, annotated with the rooms they came from.
func groupRows(rows []Row, source FileType) []ExpectedPosition {
	type group struct {
		entry ExpectedPosition
		rooms map[string]struct{}
	}

	groups := make(map[string]*group)
	var order []string
	for _, row := range rows {
		key := fmt.Sprintf("%s|%v|%v|%v", strings.ToLower(row.Material), row.Breite, row.Hoehe, row.Laenge)
		g, ok := groups[key]
		if !ok {
			g = &group{
				entry: ExpectedPosition{
					Einheit:       "Stk",
					Material:      row.Material,
					DimensionText: dimensionText(row.Breite, row.Hoehe, row.Laenge),
					Source:        source,
				},
				rooms: make(map[string]struct{}),
			}
			groups[key] = g
			order = append(order, key)
		}
		menge := row.Menge
		if menge <= 0 {
			menge = 1
		}
		g.entry.Menge += menge
		if row.Raum != "" {
			g.rooms[row.Raum] = struct{}{}
		}
	}

	out := make([]ExpectedPosition, 0, len(order))
	for _, key := range order {
		g := groups[key]
		for room := range g.rooms {
			g.entry.Raeume = append(g.entry.Raeume, room)
		}
		sort.Strings(g.entry.Raeume)
		g.entry.Titel = buildTitle(g.entry.Menge, g.entry.Einheit, g.entry.Material, g.entry.Label, g.entry.DimensionText, g.entry.Raeume)
		out = append(out, g.entry)
	}
	return out
}

// mapStructured maps item lists, document positions, measurements and image
// detections 1:1 using the shared title-building rule.
func mapStructured(s *Structured, source FileType) []ExpectedPosition {
	var out []ExpectedPosition

	for _, item := range s.Items {
		menge := item.Menge
		if menge <= 0 {
			menge = 1
		}
		einheit := item.Einheit
		if einheit == "" {
			einheit = "Stk"
		}
		e := ExpectedPosition{
			Menge:         menge,
			Einheit:       einheit,
			Material:      item.Material,
			Label:         item.Label,
			DimensionText: dimensionText(item.Breite, item.Hoehe, 0),
			Source:        source,
		}
		if item.Raum != "" {
			e.Raeume = []string{item.Raum}
		}
		e.Titel = buildTitle(e.Menge, e.Einheit, e.Material, e.Label, e.DimensionText, e.Raeume)
		out = append(out, e)
	}

	for _, pos := range s.Positions {
		menge := pos.Menge
		if menge <= 0 {
			menge = 1
		}
		einheit := pos.Einheit
		if einheit == "" {
			einheit = "Stk"
		}
		e := ExpectedPosition{
			Menge:   menge,
			Einheit: einheit,
			Label:   pos.Text,
			Source:  source,
		}
		e.Titel = buildTitle(e.Menge, e.Einheit, "", pos.Text, "", nil)
		out = append(out, e)
	}

	for _, m := range s.Measurements {
		e := ExpectedPosition{
			Menge:         1,
			Einheit:       firstNonEmpty(m.Einheit, "Stk"),
			Label:         m.Label,
			DimensionText: dimensionText(m.Breite, m.Hoehe, m.Laenge),
			Source:        source,
		}
		e.Titel = buildTitle(e.Menge, e.Einheit, "", m.Label, e.DimensionText, nil)
		out = append(out, e)
	}

	for _, obj := range s.DetectedObjects {
		count := obj.Count
		if count <= 0 {
			count = 1
		}
		e := ExpectedPosition{
			Menge:    float64(count),
			Einheit:  "Stk",
			Material: obj.Material,
			Label:    obj.Label,
			Source:   source,
		}
		e.Titel = buildTitle(e.Menge, e.Einheit, e.Material, e.Label, "", nil)
		out = append(out, e)
	}

	return out
}

var freeTextQtyRe = regexp.MustCompile(`(?i)(\d+(?:,\d+)?)\s*(Stk|Stück|Stueck|Fenster|Türen|Tueren|Innentüren|Steckdosen|Heizkörper|Heizkoerper|m²|qm|lfm)`)

// scanFreeText finds "<number> <unit-word>" occurrences.
func scanFreeText(text string, source FileType) []ExpectedPosition {
	if text == "" {
		return nil
	}
	var out []ExpectedPosition
	for _, m := range freeTextQtyRe.FindAllStringSubmatch(text, -1) {
		menge, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err != nil || menge <= 0 {
			continue
		}
		unit, label := normalizeUnitWord(m[2])
		e := ExpectedPosition{
			Menge:   menge,
			Einheit: unit,
			Label:   label,
			Source:  source,
		}
		e.Titel = buildTitle(e.Menge, e.Einheit, "", e.Label, "", nil)
		out = append(out, e)
	}
	return out
}

// normalizeUnitWord splits unit-words into (unit, optional label): "Fenster"
// counts pieces of windows, "qm" is a bare area unit.
func normalizeUnitWord(word string) (string, string) {
	switch strings.ToLower(word) {
	case "stk", "stück", "stueck":
		return "Stk", ""
	case "m²", "qm":
		return "m²", ""
	case "lfm":
		return "lfm", ""
	default:
		return "Stk", word
	}
}

// buildTitle is the shared title rule: quantity, unit, material, label,
// dimensions, optional room suffix.
func buildTitle(menge float64, einheit, material, label, dims string, raeume []string) string {
	parts := []string{formatMenge(menge), einheit}
	if label != "" {
		parts = append(parts, label)
	}
	if material != "" {
		parts = append(parts, material)
	}
	if dims != "" {
		parts = append(parts, dims+" cm")
	}
	title := strings.Join(parts, " ")
	if len(raeume) > 0 {
		title += " (" + strings.Join(raeume, ", ") + ")"
	}
	return title
}

func dimensionText(breite, hoehe, laenge float64) string {
	if breite > 0 && hoehe > 0 {
		return fmt.Sprintf("%sx%s", formatMenge(breite), formatMenge(hoehe))
	}
	if laenge > 0 {
		return formatMenge(laenge)
	}
	return ""
}

func formatMenge(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// FormatMenge is exported for the validation pass's containment checks so
// quantities render identically on both sides.
func FormatMenge(v float64) string {
	return formatMenge(v)
}
