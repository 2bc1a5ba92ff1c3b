package structurer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/byndl-mvp/PoC-sub002/pkg/lv"
)

// Parser converts narrative draft text into a StructuredDocument. Parsing is
// line-oriented and stateful: a position header flushes the previous position
// into the current chapter, a chapter header flushes the previous chapter
// into the result, end-of-input flushes both. Unrecognized lines while a
// position is open are ignored.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

var (
	chapterRe  = regexp.MustCompile(`^##\s+(.+?)\s*$`)
	positionRe = regexp.MustCompile(`^(?:#+\s*)?Position\s+(\d+(?:\.\d+)*)\s*:\s*(.+?)\s*$`)
	detailRe   = regexp.MustCompile(`^-\s*(Beschreibung|Einheit|Menge|Hinweise)\s*:\s*(.*?)\s*$`)
)

func (p *Parser) Parse(text, gewerk string) *lv.StructuredDocument {
	doc := &lv.StructuredDocument{Gewerk: gewerk}

	var currentChapter *lv.Chapter
	var currentPosition *lv.Position

	flushPosition := func() {
		if currentPosition == nil {
			return
		}
		if currentPosition.Menge <= 0 {
			currentPosition.Menge = 1
		}
		if currentChapter != nil {
			currentChapter.Positionen = append(currentChapter.Positionen, *currentPosition)
		}
		currentPosition = nil
	}
	flushChapter := func() {
		flushPosition()
		if currentChapter != nil {
			doc.Chapters = append(doc.Chapters, *currentChapter)
			currentChapter = nil
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t\r")

		// Position headers first: a "### Position" line must not be
		// mistaken for a chapter header.
		if m := positionRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flushPosition()
			currentPosition = &lv.Position{
				Nummer:   m[1],
				Kurztext: m[2],
			}
			continue
		}

		if m := chapterRe.FindStringSubmatch(line); m != nil {
			flushChapter()
			currentChapter = &lv.Chapter{Titel: m[1]}
			continue
		}

		if currentPosition != nil {
			if m := detailRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
				applyDetail(currentPosition, m[1], m[2])
			}
			// Anything else contributes to no field.
		}
	}
	flushChapter()

	return doc
}

func applyDetail(pos *lv.Position, label, value string) {
	switch label {
	case "Beschreibung":
		pos.Langtext = value
	case "Einheit":
		pos.Einheit = value
	case "Menge":
		pos.Menge = parseMenge(value)
	case "Hinweise":
		pos.Hinweise = value
	}
}

// parseMenge accepts only numeric text (German decimal comma allowed);
// anything else defaults to 1.
func parseMenge(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 1
	}
	return v
}
