package session

// BatchConfig controls adaptive batch sizing. Complex trades get smaller
// batches so follow-up questions can react to earlier answers.
type BatchConfig struct {
	ComplexGewerke []string
	ComplexFirst   int
	ComplexNext    int
	DefaultFirst   int
	DefaultNext    int
}

func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		ComplexGewerke: []string{GewerkSanitaer, GewerkHeizung, GewerkElektro},
		ComplexFirst:   3,
		ComplexNext:    2,
		DefaultFirst:   5,
		DefaultNext:    3,
	}
}

func (c BatchConfig) isComplex(gewerk string) bool {
	for _, g := range c.ComplexGewerke {
		if g == gewerk {
			return true
		}
	}
	return false
}

// NextBatchSize returns how many questions to hand out. The first call per
// trade always returns the larger of its two configured sizes.
func (c BatchConfig) NextBatchSize(gewerk string, firstCall bool) int {
	if c.isComplex(gewerk) {
		if firstCall {
			return c.ComplexFirst
		}
		return c.ComplexNext
	}
	if firstCall {
		return c.DefaultFirst
	}
	return c.DefaultNext
}

// NextBatch slices the next unanswered questions for a trade.
func (p *TradeProgress) NextBatch(cfg BatchConfig) []Question {
	if p.Completed || p.CurrentIndex >= len(p.Questions) {
		return nil
	}
	size := cfg.NextBatchSize(p.Gewerk, p.CurrentIndex == 0)
	end := p.CurrentIndex + size
	if end > len(p.Questions) {
		end = len(p.Questions)
	}
	return p.Questions[p.CurrentIndex:end]
}
