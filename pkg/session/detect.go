package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/byndl-mvp/PoC-sub002/internal/pkg/logger"
	"github.com/byndl-mvp/PoC-sub002/pkg/llm"
)

// gewerkKeywords is the fallback classifier: membership of any keyword in
// the project description selects the trade.
var gewerkKeywords = map[string][]string{
	GewerkElektro:    {"steckdose", "elektro", "leitung", "sicherungskasten", "verteiler", "schalter", "lampe", "beleuchtung"},
	GewerkSanitaer:   {"bad", "sanitär", "sanitaer", "wc", "dusche", "badewanne", "waschbecken", "abwasser", "wasserleitung"},
	GewerkHeizung:    {"heizung", "heizkörper", "heizkoerper", "therme", "wärmepumpe", "waermepumpe", "fußbodenheizung", "fussbodenheizung"},
	GewerkMaler:      {"streichen", "maler", "tapete", "anstrich", "spachteln", "farbe"},
	GewerkBoden:      {"boden", "parkett", "laminat", "vinyl", "teppich", "estrich", "fliesen"},
	GewerkFenster:    {"fenster", "verglasung", "rollladen", "rolladen", "haustür", "haustuer"},
	GewerkDach:       {"dach", "ziegel", "dachstuhl", "gaube", "dachrinne"},
	GewerkTrockenbau: {"trockenbau", "rigips", "gipskarton", "ständerwand", "staenderwand", "trennwand", "abhangdecke"},
}

// detectionOrder keeps results deterministic regardless of map iteration.
var detectionOrder = []string{
	GewerkSanitaer, GewerkElektro, GewerkHeizung, GewerkFenster,
	GewerkDach, GewerkBoden, GewerkMaler, GewerkTrockenbau,
}

// Detector classifies a project description against the fixed Gewerk
// vocabulary. It attempts a content-generation call first and falls back to
// keyword membership; a project matching nothing gets the baseline trade.
type Detector struct {
	provider llm.LLMProvider // nil when no generator is configured
	timeout  time.Duration
	logger   logger.ILogger
}

func NewDetector(provider llm.LLMProvider, timeout time.Duration, log logger.ILogger) *Detector {
	return &Detector{
		provider: provider,
		timeout:  timeout,
		logger:   log,
	}
}

func (d *Detector) Detect(ctx context.Context, data ProjectData) []string {
	if gewerke := d.detectViaProvider(ctx, data); len(gewerke) > 0 {
		return gewerke
	}
	if gewerke := detectViaKeywords(data); len(gewerke) > 0 {
		return gewerke
	}
	return []string{GewerkInnenausbau}
}

// detectViaProvider makes a single classification attempt. Any failure
// (including an unconfigured provider) yields nil; there is no retry.
func (d *Detector) detectViaProvider(ctx context.Context, data ProjectData) []string {
	if d.provider == nil {
		return nil
	}

	prompt := fmt.Sprintf(
		"Ordne folgende Projektbeschreibung den passenden Gewerken zu.\n"+
			"Erlaubte Codes: %s\n"+
			"Antworte NUR mit einer kommagetrennten Liste von Codes.\n\n"+
			"Projekt: %s (Objekttyp: %s, Baujahr: %d)",
		strings.Join(detectionOrder, ", "), data.Beschreibung, data.Objekttyp, data.Baujahr,
	)

	callCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	response, err := d.provider.Generate(callCtx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		d.logger.Warn("session", "trade detection via provider failed, using keyword fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	// Scan the response for known codes instead of trusting its format.
	lower := strings.ToLower(response)
	var gewerke []string
	for _, code := range detectionOrder {
		if strings.Contains(lower, code) {
			gewerke = append(gewerke, code)
		}
	}
	return gewerke
}

func detectViaKeywords(data ProjectData) []string {
	haystack := strings.ToLower(data.Beschreibung + " " + data.Objekttyp)
	var gewerke []string
	for _, code := range detectionOrder {
		for _, kw := range gewerkKeywords[code] {
			if strings.Contains(haystack, kw) {
				gewerke = append(gewerke, code)
				break
			}
		}
	}
	return gewerke
}
