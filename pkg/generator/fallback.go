package generator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/byndl-mvp/PoC-sub002/pkg/catalog"
	"github.com/byndl-mvp/PoC-sub002/pkg/session"
)

// Fallback drafts a narrative specification deterministically when the
// content generator is unavailable or fails. It emits the same chapter and
// position format the structurer parses, so the rest of the pipeline is
// unaffected by which path produced the draft.
type Fallback struct{}

func NewFallback() *Fallback {
	return &Fallback{}
}

var negativeAnswerRe = regexp.MustCompile(`(?i)^\s*(nein|no|keine?s?|ohne)\s*$`)
var qtyRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)`)

// Draft builds the narrative text from the trade's answers and catalog.
func (f *Fallback) Draft(gewerk string, answers map[string]session.Answer, entries []catalog.Position) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## %s – Basisleistungen\n\n", session.GewerkName(gewerk)))

	topics := affirmativeTopics(answers)

	num := 0
	for _, entry := range entries {
		if !relevantToTopics(entry, topics) {
			continue
		}
		num++
		menge := quantityForEntry(entry, answers)
		writePosition(&sb, fmt.Sprintf("1.%d", num), entry.Kurztext, entry.Kurztext, entry.Einheit, menge)
	}

	// Without catalog coverage the draft still has to carry the answered
	// scope, so affirmative answers become generic positions.
	if num == 0 {
		for _, key := range sortedKeys(answers) {
			a := answers[key]
			if negativeAnswerRe.MatchString(a.Value) {
				continue
			}
			num++
			title := humanizeKey(gewerk, key)
			menge := 1.0
			if m := qtyRe.FindString(a.Value); m != "" {
				fmt.Sscanf(strings.ReplaceAll(m, ",", "."), "%f", &menge)
			}
			writePosition(&sb, fmt.Sprintf("1.%d", num), title, "Gemäß Angabe: "+a.Value, "Stk", menge)
		}
	}

	return sb.String()
}

func writePosition(sb *strings.Builder, nummer, kurz, lang, einheit string, menge float64) {
	sb.WriteString(fmt.Sprintf("### Position %s: %s\n", nummer, kurz))
	sb.WriteString(fmt.Sprintf("- Beschreibung: %s\n", lang))
	if einheit != "" {
		sb.WriteString(fmt.Sprintf("- Einheit: %s\n", einheit))
	}
	sb.WriteString(fmt.Sprintf("- Menge: %g\n\n", menge))
}

// affirmativeTopics collects the key tokens of non-negative answers.
func affirmativeTopics(answers map[string]session.Answer) map[string]struct{} {
	topics := make(map[string]struct{})
	for key, a := range answers {
		if negativeAnswerRe.MatchString(a.Value) {
			continue
		}
		for _, token := range strings.Split(strings.ToLower(key), "_") {
			if len(token) > 3 {
				topics[token] = struct{}{}
			}
		}
	}
	return topics
}

func relevantToTopics(entry catalog.Position, topics map[string]struct{}) bool {
	if len(topics) == 0 {
		return true
	}
	text := strings.ToLower(entry.Kurztext)
	for topic := range topics {
		if strings.Contains(text, topic) || strings.Contains(text, strings.TrimSuffix(topic, "n")) {
			return true
		}
	}
	return false
}

// quantityForEntry takes the quantity from a topically related answer when
// one carries a number, else 1.
func quantityForEntry(entry catalog.Position, answers map[string]session.Answer) float64 {
	text := strings.ToLower(entry.Kurztext)
	for _, key := range sortedKeys(answers) {
		a := answers[key]
		if negativeAnswerRe.MatchString(a.Value) {
			continue
		}
		related := false
		for _, token := range strings.Split(strings.ToLower(key), "_") {
			if len(token) > 3 && strings.Contains(text, strings.TrimSuffix(token, "n")) {
				related = true
				break
			}
		}
		if !related {
			continue
		}
		if m := qtyRe.FindString(a.Value); m != "" {
			var v float64
			fmt.Sscanf(strings.ReplaceAll(m, ",", "."), "%f", &v)
			if v > 0 {
				return v
			}
		}
	}
	return 1
}

func humanizeKey(gewerk, key string) string {
	trimmed := strings.TrimPrefix(key, gewerk+"_")
	words := strings.Split(trimmed, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func sortedKeys(answers map[string]session.Answer) []string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
