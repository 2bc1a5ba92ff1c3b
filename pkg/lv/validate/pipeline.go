package validate

import (
	"github.com/byndl-mvp/PoC-sub002/internal/pkg/logger"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv"
	"github.com/byndl-mvp/PoC-sub002/pkg/session"
	"github.com/byndl-mvp/PoC-sub002/pkg/upload"
)

// Context is the shared input of all validators.
type Context struct {
	Gewerk  string
	Answers map[string]session.Answer
	Upload  *upload.Context
	Logger  logger.ILogger
}

// Validator is one enforcement pass. Passes share a single contract so the
// pipeline order is declared once, not inferred from call sites.
type Validator interface {
	Name() string
	Apply(doc *lv.PricedDocument, vctx *Context) *lv.PricedDocument
}

// Pipeline applies its validators in declaration order. Pass order matters:
// upload-data authority must observe the output of the answer-rule pass.
// Running the pipeline twice on an already-clean document with the same
// inputs does not change it.
type Pipeline struct {
	validators []Validator
	logger     logger.ILogger
}

func NewPipeline(cfg Config, log logger.ILogger) *Pipeline {
	return &Pipeline{
		validators: []Validator{
			NewAnswerRules(cfg),
			NewUploadAuthority(),
		},
		logger: log,
	}
}

func (p *Pipeline) Enforce(doc *lv.PricedDocument, vctx *Context) *lv.PricedDocument {
	if vctx.Logger == nil {
		vctx.Logger = p.logger
	}
	for _, v := range p.validators {
		before := len(doc.FlattenPositions())
		doc = v.Apply(doc, vctx)
		after := len(doc.FlattenPositions())
		if p.logger != nil && before != after {
			p.logger.Info("validate", "pass changed position count", map[string]interface{}{
				"pass":   v.Name(),
				"gewerk": vctx.Gewerk,
				"before": before,
				"after":  after,
			})
		}
	}
	return doc
}
