package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/byndl-mvp/PoC-sub002/pkg/session"
)

// RuleSet is derived from one trade's answers before the answer-rule pass
// touches the document.
type RuleSet struct {
	Forbidden []ForbiddenRule
	Required  []RequiredRule
	// Overrides: category -> approved material/finish string.
	Overrides map[string]string
}

// ForbiddenRule bans positions whose text mentions the keyword, scoped to
// the trade the originating answer belongs to.
type ForbiddenRule struct {
	Gewerk    string
	Keyword   string
	SourceKey string
}

// RequiredRule demands a position reflecting the answered quantity.
type RequiredRule struct {
	Gewerk    string
	Key       string
	RawAnswer string
	Menge     float64
	Einheit   string
}

// synonymGroups expands a forbidden keyword to its known variants so a
// banned "fensterbank" also bans compounds and plurals.
var synonymGroups = map[string][]string{
	"steckdose":   {"steckdosen"},
	"steckdosen":  {"steckdose"},
	"fensterbank": {"fensterbänke", "fensterbaenke", "fensterbänken"},
	"heizkörper":  {"heizkoerper"},
	"heizkoerper": {"heizkörper"},
	"rollladen":   {"rolladen", "rollläden", "rolllaeden"},
	"tür":         {"türen", "tuer", "tueren"},
	"tuer":        {"tür", "türen", "tueren"},
	"tapete":      {"tapeten", "tapezieren"},
	"sockelleiste": {
		"sockelleisten", "fußleisten", "fussleisten",
	},
	"dachfenster": {"dachflächenfenster", "dachflaechenfenster"},
	"thermostat":  {"thermostate", "thermostaten"},
}

// materialKeyTokens mark answers carrying an approved specification
// (material/type/execution) for their trade.
var materialKeyTokens = []string{
	"material", "typ", "ausfuehrung", "ausführung", "belag", "farbe", "system",
}

// quantityRe finds "<digits> <unit token>" in an answer value.
var quantityRe = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(stk|stück|stueck|m²|qm|m2|lfm|meter|steckdosen|fenster|heizkörper|heizkoerper|türen|tueren|räume|raeume)`)

// bareNumberRe classifies a bare number as an affirmative answer.
var bareNumberRe = regexp.MustCompile(`\d+`)

// DeriveRules classifies every answer of the trade and builds the rule set.
func DeriveRules(gewerk string, answers map[string]session.Answer, cfg Config) *RuleSet {
	rules := &RuleSet{Overrides: map[string]string{}}

	for key, answer := range answers {
		if !strings.HasPrefix(strings.ToLower(key), strings.ToLower(gewerk)+"_") {
			continue
		}
		value := strings.TrimSpace(answer.Value)
		if value == "" {
			continue
		}

		switch classifyAnswer(value, cfg) {
		case answerNo:
			rules.Forbidden = append(rules.Forbidden, forbiddenFromKey(gewerk, key, cfg)...)
		case answerYes:
			if menge, einheit, ok := parseQuantity(value); ok {
				rules.Required = append(rules.Required, RequiredRule{
					Gewerk:    gewerk,
					Key:       key,
					RawAnswer: value,
					Menge:     menge,
					Einheit:   einheit,
				})
			}
			if category, ok := overrideCategory(key); ok {
				rules.Overrides[category] = value
			}
		default:
			// Neutral free-text answers can still carry a
			// specification choice.
			if category, ok := overrideCategory(key); ok {
				rules.Overrides[category] = value
			}
		}
	}

	return rules
}

func classifyAnswer(value string, cfg Config) answerClass {
	lower := strings.ToLower(strings.TrimSpace(value))

	for _, no := range cfg.NoVocabulary {
		if lower == no {
			return answerNo
		}
	}
	for _, phrase := range cfg.NoPhrases {
		if strings.Contains(lower, phrase) {
			return answerNo
		}
	}

	for _, yes := range cfg.YesVocabulary {
		if strings.Contains(lower, yes) {
			return answerYes
		}
	}
	for _, unit := range cfg.UnitTokens {
		if strings.Contains(lower, unit) {
			return answerYes
		}
	}
	if bareNumberRe.MatchString(lower) {
		return answerYes
	}

	return answerNeutral
}

// forbiddenFromKey derives keywords from the answer key: every
// underscore-separated token after the trade prefix that is long enough,
// plus its synonym expansions.
func forbiddenFromKey(gewerk, key string, cfg Config) []ForbiddenRule {
	var rules []ForbiddenRule
	seen := map[string]struct{}{}

	add := func(keyword string) {
		keyword = strings.ToLower(keyword)
		if len([]rune(keyword)) <= cfg.MinKeywordLength {
			return
		}
		if _, ok := seen[keyword]; ok {
			return
		}
		seen[keyword] = struct{}{}
		rules = append(rules, ForbiddenRule{Gewerk: gewerk, Keyword: keyword, SourceKey: key})
	}

	tokens := strings.Split(key, "_")
	for i, token := range tokens {
		if i == 0 {
			// The trade prefix scopes the rule, it is not a keyword.
			continue
		}
		add(token)
		for _, syn := range synonymGroups[strings.ToLower(token)] {
			add(syn)
		}
	}
	return rules
}

func parseQuantity(value string) (float64, string, bool) {
	m := quantityRe.FindStringSubmatch(value)
	if m == nil {
		return 0, "", false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil || v <= 0 {
		return 0, "", false
	}
	return v, normalizeEinheit(m[2]), true
}

func normalizeEinheit(token string) string {
	switch strings.ToLower(token) {
	case "m²", "qm", "m2":
		return "m²"
	case "lfm", "meter":
		return "lfm"
	default:
		return "Stk"
	}
}

func overrideCategory(key string) (string, bool) {
	lower := strings.ToLower(key)
	for _, token := range materialKeyTokens {
		if strings.Contains(lower, token) {
			return token, true
		}
	}
	return "", false
}
