package validate

// Config carries the answer-classification vocabularies. The exact word
// lists are heuristics inherited from field usage, so they live in
// configuration rather than being hard-coded into the classifier.
type Config struct {
	// NoVocabulary matches the whole (trimmed, lowercased) answer.
	NoVocabulary []string
	// NoPhrases match as substrings ("bleibt bestehen" etc. — keep
	// existing, do not renew).
	NoPhrases []string
	// YesVocabulary matches as substrings.
	YesVocabulary []string
	// UnitTokens mark an answer as affirmative-with-quantity.
	UnitTokens []string
	// MinKeywordLength: answer-key tokens must be longer than this to
	// become forbidden keywords.
	MinKeywordLength int
}

func DefaultConfig() Config {
	return Config{
		NoVocabulary: []string{
			"nein", "no", "none", "keine", "kein", "keins", "ohne", "nicht",
		},
		NoPhrases: []string{
			"bleibt bestehen", "bleiben bestehen", "bleibt erhalten",
			"bestand behalten", "behalten", "belassen",
			"nicht erneuern", "nicht notwendig", "nicht nötig", "nicht noetig",
			"wird nicht", "vorhanden lassen", "keine neuen",
		},
		YesVocabulary: []string{
			"ja", "yes", "gewünscht", "gewuenscht", "erneuern", "bitte",
		},
		UnitTokens: []string{
			"stk", "stück", "stueck", "m²", "qm", "m2", "lfm", "meter",
		},
		MinKeywordLength: 2,
	}
}

// answerClass is the result of the NO/YES classifier.
type answerClass int

const (
	answerNeutral answerClass = iota
	answerNo
	answerYes
)
