package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/byndl-mvp/PoC-sub002/pkg/lv"
	"github.com/byndl-mvp/PoC-sub002/pkg/session"
)

// AnswerRules is pass A: it derives accept/forbid/require rules from the
// trade's answers and enforces them on the drafted document. NO answers
// remove positions, specification answers rewrite materially wrong
// positions, unmet quantity requirements become warnings (position creation
// is a separate, explicitly invoked step).
type AnswerRules struct {
	cfg Config
}

func NewAnswerRules(cfg Config) *AnswerRules {
	return &AnswerRules{cfg: cfg}
}

func (v *AnswerRules) Name() string { return "answer-rules" }

func (v *AnswerRules) Apply(doc *lv.PricedDocument, vctx *Context) *lv.PricedDocument {
	rules := DeriveRules(vctx.Gewerk, vctx.Answers, v.cfg)

	doc = removeForbidden(doc, rules, vctx)
	rewriteMaterials(doc, rules)
	warnUnmetRequired(doc, rules)

	return doc
}

func removeForbidden(doc *lv.PricedDocument, rules *RuleSet, vctx *Context) *lv.PricedDocument {
	if len(rules.Forbidden) == 0 {
		return doc
	}

	for ci := range doc.Chapters {
		kept := doc.Chapters[ci].Positionen[:0]
		for _, pos := range doc.Chapters[ci].Positionen {
			if rule, hit := firstForbiddenHit(pos, rules.Forbidden); hit {
				if vctx.Logger != nil {
					vctx.Logger.Info("validate", "position removed by answer rule", map[string]interface{}{
						"gewerk":   rule.Gewerk,
						"keyword":  rule.Keyword,
						"source":   rule.SourceKey,
						"position": pos.Kurztext,
					})
				}
				continue
			}
			kept = append(kept, pos)
		}
		doc.Chapters[ci].Positionen = kept
	}
	return doc
}

func firstForbiddenHit(pos lv.PricedPosition, forbidden []ForbiddenRule) (ForbiddenRule, bool) {
	text := strings.ToLower(pos.Kurztext + " " + pos.Langtext)
	for _, rule := range forbidden {
		if strings.Contains(text, rule.Keyword) {
			return rule, true
		}
	}
	return ForbiddenRule{}, false
}

// materialCandidates lists, per trade family, the tokens that denote a
// concrete material/finish choice. A position naming a candidate the user
// did not approve is rewritten to the approved one. Compounds come before
// their prefixes so "holz-alu" is not matched as "holz".
var materialCandidates = map[string][]string{
	session.GewerkBoden:    {"laminat", "parkett", "vinyl", "teppich", "fliesen", "linoleum", "kork"},
	session.GewerkFenster:  {"holz-alu", "kunststoff", "aluminium", "holz"},
	session.GewerkMaler:    {"dispersionsfarbe", "silikatfarbe", "latexfarbe", "kalkfarbe", "leimfarbe"},
	session.GewerkSanitaer: {"keramik", "mineralguss", "acryl", "edelstahl"},
}

// rewriteMaterials replaces materially wrong specification tokens in place
// with the approved override of their trade family.
func rewriteMaterials(doc *lv.PricedDocument, rules *RuleSet) {
	candidates := materialCandidates[doc.Gewerk]
	if len(candidates) == 0 || len(rules.Overrides) == 0 {
		return
	}

	for _, override := range rules.Overrides {
		approved := approvedCandidate(override, candidates)
		if approved == "" {
			continue
		}
		for _, pos := range doc.FlattenPositions() {
			for _, wrong := range candidates {
				if wrong == approved {
					continue
				}
				re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(wrong))
				if re.MatchString(pos.Kurztext) || re.MatchString(pos.Langtext) {
					pos.Kurztext = re.ReplaceAllString(pos.Kurztext, approved)
					pos.Langtext = re.ReplaceAllString(pos.Langtext, approved)
				}
			}
		}
	}
}

// approvedCandidate finds which family token the user's answer names.
func approvedCandidate(override string, candidates []string) string {
	lower := strings.ToLower(override)
	for _, c := range candidates {
		if strings.Contains(lower, c) {
			return c
		}
	}
	return ""
}

// warnUnmetRequired records a non-fatal warning for every quantity
// requirement no position reflects.
func warnUnmetRequired(doc *lv.PricedDocument, rules *RuleSet) {
	for _, rule := range rules.Required {
		if requirementMet(doc, rule) {
			continue
		}
		warning := fmt.Sprintf("Antwort %s (%q) ohne passende Position im Dokument", rule.Key, rule.RawAnswer)
		if !containsString(doc.Warnings, warning) {
			doc.Warnings = append(doc.Warnings, warning)
		}
	}
}

// RequirementMet reports whether any position's quantity or text reflects
// the required quantity. Shared with the explicit missing-position creator.
func requirementMet(doc *lv.PricedDocument, rule RequiredRule) bool {
	menge := strconv.FormatFloat(rule.Menge, 'f', -1, 64)
	for _, pos := range doc.FlattenPositions() {
		if pos.Menge == rule.Menge {
			return true
		}
		text := pos.Kurztext + " " + pos.Langtext
		if strings.Contains(text, menge) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
