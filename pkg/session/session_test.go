package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTradeProgress(gewerk string) *TradeProgress {
	return &TradeProgress{
		Gewerk:    gewerk,
		Questions: QuestionsFor(gewerk),
		Answers:   make(map[string]Answer),
	}
}

func TestQuestionsForReturnsCopy(t *testing.T) {
	a := QuestionsFor(GewerkElektro)
	b := QuestionsFor(GewerkElektro)
	if len(a) == 0 {
		t.Fatal("no questions for elektro")
	}
	a[0].Text = "mutiert"
	if b[0].Text == "mutiert" {
		t.Error("QuestionsFor shares backing array with callers")
	}
}

func TestQuestionsForUnknownGewerk(t *testing.T) {
	qs := QuestionsFor("garten")
	if len(qs) == 0 {
		t.Fatal("expected baseline questions for unknown trade")
	}
	for _, q := range qs {
		if q.Gewerk != GewerkInnenausbau {
			t.Errorf("question %q from %q, want baseline", q.Id, q.Gewerk)
		}
	}
}

func TestNextBatchSize(t *testing.T) {
	cfg := DefaultBatchConfig()
	tests := []struct {
		gewerk    string
		firstCall bool
		want      int
	}{
		{GewerkElektro, true, 3},
		{GewerkElektro, false, 2},
		{GewerkSanitaer, true, 3},
		{GewerkMaler, true, 5},
		{GewerkMaler, false, 3},
	}
	for _, tt := range tests {
		if got := cfg.NextBatchSize(tt.gewerk, tt.firstCall); got != tt.want {
			t.Errorf("NextBatchSize(%q, %v) = %d, want %d", tt.gewerk, tt.firstCall, got, tt.want)
		}
	}
}

func TestNextBatchSlicing(t *testing.T) {
	cfg := DefaultBatchConfig()
	p := newTradeProgress(GewerkElektro) // 6 questions, complex: 3 then 2

	first := p.NextBatch(cfg)
	if len(first) != 3 {
		t.Fatalf("first batch = %d, want 3", len(first))
	}

	var answers []Answer
	for _, q := range first {
		answers = append(answers, Answer{QuestionId: q.Id, Value: "Ja", Timestamp: time.Now()})
	}
	p.RecordAnswers(answers)

	second := p.NextBatch(cfg)
	if len(second) != 2 {
		t.Fatalf("second batch = %d, want 2", len(second))
	}
	if second[0].Id == first[0].Id {
		t.Error("second batch repeats answered questions")
	}
}

func TestNextBatchTailShorterThanSize(t *testing.T) {
	cfg := DefaultBatchConfig()
	p := newTradeProgress(GewerkTrockenbau) // 4 questions, default: 5 first

	batch := p.NextBatch(cfg)
	if len(batch) != 4 {
		t.Errorf("batch = %d, want all 4 remaining", len(batch))
	}
}

func TestRecordAnswersCompletes(t *testing.T) {
	p := newTradeProgress(GewerkTrockenbau)

	var answers []Answer
	for _, q := range p.Questions {
		answers = append(answers, Answer{QuestionId: q.Id, Value: "2"})
	}
	p.RecordAnswers(answers)

	if !p.Completed {
		t.Error("progress not completed after answering everything")
	}
	if p.NextBatch(DefaultBatchConfig()) != nil {
		t.Error("completed trade still hands out questions")
	}
}

func TestRecordAnswersSupersedesByKey(t *testing.T) {
	p := newTradeProgress(GewerkTrockenbau)
	id := p.Questions[0].Id

	p.RecordAnswers([]Answer{{QuestionId: id, Value: "2"}})
	p.RecordAnswers([]Answer{{QuestionId: id, Value: "3"}})

	if p.Answers[id].Value != "3" {
		t.Errorf("answer = %q, want superseding value", p.Answers[id].Value)
	}
	if len(p.Answers) != 1 {
		t.Errorf("answers = %d, want 1", len(p.Answers))
	}
}

func TestSessionCompletionHelpers(t *testing.T) {
	s := &Session{
		Id:      uuid.New(),
		Gewerke: []string{GewerkElektro, GewerkMaler},
		Progress: map[string]*TradeProgress{
			GewerkElektro: {Gewerk: GewerkElektro, Completed: true},
			GewerkMaler:   {Gewerk: GewerkMaler},
		},
	}

	if s.AllCompleted() {
		t.Error("AllCompleted with open trade")
	}
	if got := s.FirstIncomplete(); got != GewerkMaler {
		t.Errorf("FirstIncomplete = %q, want maler", got)
	}

	s.Progress[GewerkMaler].Completed = true
	if !s.AllCompleted() {
		t.Error("AllCompleted after finishing all trades")
	}
	if got := s.FirstIncomplete(); got != "" {
		t.Errorf("FirstIncomplete = %q, want empty", got)
	}
}

func TestProgressForRoutesByQuestionId(t *testing.T) {
	s := &Session{
		Gewerke: []string{GewerkElektro, GewerkMaler},
		Progress: map[string]*TradeProgress{
			GewerkElektro: newTradeProgress(GewerkElektro),
			GewerkMaler:   newTradeProgress(GewerkMaler),
		},
	}

	p := s.ProgressFor("maler_flaeche_waende")
	if p == nil || p.Gewerk != GewerkMaler {
		t.Fatalf("ProgressFor routed to %+v", p)
	}
	if s.ProgressFor("unbekannt_frage") != nil {
		t.Error("unknown question id routed to a trade")
	}
}

func TestDetectViaKeywords(t *testing.T) {
	tests := []struct {
		name         string
		beschreibung string
		want         []string
	}{
		{
			name:         "bathroom and electrics",
			beschreibung: "Bad komplett sanieren, neue Steckdosen in allen Räumen",
			want:         []string{GewerkSanitaer, GewerkElektro},
		},
		{
			name:         "painting only",
			beschreibung: "Alle Wände streichen",
			want:         []string{GewerkMaler},
		},
		{
			name:         "nothing matches",
			beschreibung: "Allgemeine Modernisierung",
			want:         nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectViaKeywords(ProjectData{Beschreibung: tt.beschreibung})
			if len(got) != len(tt.want) {
				t.Fatalf("detectViaKeywords() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("detectViaKeywords() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestDetectorBaselineFallback(t *testing.T) {
	d := NewDetector(nil, time.Second, nil)
	got := d.Detect(context.Background(), ProjectData{Beschreibung: "Allgemeine Modernisierung"})
	if len(got) != 1 || got[0] != GewerkInnenausbau {
		t.Errorf("Detect() = %v, want baseline trade", got)
	}
}
