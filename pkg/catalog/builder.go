package catalog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/byndl-mvp/PoC-sub002/internal/pkg/logger"
)

// Builder parses raw per-Gewerk pricing text resources into a structured
// price catalog. A missing resource directory or unreadable file fails the
// build; a line that matches no pattern is skipped and logged, never fatal.
type Builder struct {
	resourceDir string
	logger      logger.ILogger
}

func NewBuilder(resourceDir string, log logger.ILogger) *Builder {
	return &Builder{
		resourceDir: resourceDir,
		logger:      log,
	}
}

// Build scans every text resource in the directory. The Gewerk code is
// derived from the filename ("elektro.txt" -> "elektro").
func (b *Builder) Build() (Catalog, error) {
	entries, err := os.ReadDir(b.resourceDir)
	if err != nil {
		return nil, fmt.Errorf("read catalog resource dir: %w", err)
	}

	result := Catalog{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		gewerk := strings.ToLower(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
		positions, err := b.buildResource(filepath.Join(b.resourceDir, entry.Name()), gewerk)
		if err != nil {
			return nil, err
		}
		result[gewerk] = positions
	}
	return result, nil
}

func (b *Builder) buildResource(path, gewerk string) ([]Position, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog resource %s: %w", path, err)
	}
	defer file.Close()

	var positions []Position
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		parsed, ok := tryParseLine(line)
		if !ok {
			// Tier lines attach to the previous position instead of
			// forming one of their own.
			if tiers, ok := tryParseQualityTiers(line); ok && len(positions) > 0 {
				positions[len(positions)-1].Qualitaetsstufen = tiers
				continue
			}
			if strings.TrimSpace(line) != "" {
				b.logger.Debug("catalog", "line skipped, no pattern matched", map[string]interface{}{
					"file": path,
					"line": lineNo,
				})
			}
			continue
		}

		price, ok := parsePrice(parsed.Preis)
		if !ok {
			b.logger.Debug("catalog", "price expression skipped", map[string]interface{}{
				"file":  path,
				"line":  lineNo,
				"preis": parsed.Preis,
			})
			continue
		}

		pos := Position{
			PositionCode: deriveCode(parsed),
			Kurztext:     parsed.Text,
			Einheit:      price.Einheit,
			DefaultEP:    price.Default,
			MinEP:        price.Min,
			MaxEP:        price.Max,
			Gewerk:       gewerk,
		}
		if tiers, ok := tryParseQualityTiers(line); ok {
			pos.Qualitaetsstufen = tiers
		}
		positions = append(positions, pos)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan catalog resource %s: %w", path, err)
	}
	return positions, nil
}

// deriveCode uses the numbered label when present, else a slug of the
// description. Duplicates are tolerated; the price resolver's multi-stage
// fallback compensates for ambiguous codes.
func deriveCode(parsed parsedLine) string {
	if parsed.Nummer != "" {
		return strings.ReplaceAll(parsed.Nummer, ".", "_")
	}
	return Slugify(parsed.Text)
}

var slugCollapse = regexp.MustCompile(`[^a-z0-9]+`)

var umlautReplacer = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"Ä", "ae", "Ö", "oe", "Ü", "ue",
)

// Slugify lowercases, folds umlauts, collapses non-alphanumerics to single
// underscores and truncates to 20 characters.
func Slugify(s string) string {
	s = umlautReplacer.Replace(s)
	s = strings.ToLower(s)
	s = slugCollapse.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 20 {
		s = s[:20]
		s = strings.TrimRight(s, "_")
	}
	return s
}
