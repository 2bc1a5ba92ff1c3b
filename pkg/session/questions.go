package session

// Gewerk codes form the fixed trade vocabulary used by detection,
// question routing and validation rule scoping.
const (
	GewerkElektro     = "elektro"
	GewerkSanitaer    = "sanitaer"
	GewerkHeizung     = "heizung"
	GewerkMaler       = "maler"
	GewerkBoden       = "boden"
	GewerkFenster     = "fenster"
	GewerkDach        = "dach"
	GewerkTrockenbau  = "trockenbau"
	GewerkInnenausbau = "innenausbau" // baseline when nothing else matches
)

// GewerkNames maps codes to display names.
var GewerkNames = map[string]string{
	GewerkElektro:     "Elektroinstallation",
	GewerkSanitaer:    "Sanitärinstallation",
	GewerkHeizung:     "Heizungsinstallation",
	GewerkMaler:       "Malerarbeiten",
	GewerkBoden:       "Bodenbelagsarbeiten",
	GewerkFenster:     "Fenster und Außentüren",
	GewerkDach:        "Dacharbeiten",
	GewerkTrockenbau:  "Trockenbauarbeiten",
	GewerkInnenausbau: "Innenausbau",
}

// GewerkName resolves a display name, falling back to the code.
func GewerkName(code string) string {
	if n, ok := GewerkNames[code]; ok {
		return n
	}
	return code
}

// questionBank holds the per-trade question lists. Question ids follow the
// "<gewerk>_<topic>" convention the validation pipeline keys its rules on.
var questionBank = map[string][]Question{
	GewerkElektro: {
		{Id: "elektro_zusaetzliche_steckdosen", Gewerk: GewerkElektro, Sektion: "Installation", Text: "Sollen zusätzliche Steckdosen installiert werden? Wenn ja, wie viele?", Erlaeuterung: "Zählen Sie alle Räume zusammen.", Typ: QuestionFreeText, Required: true},
		{Id: "elektro_schalter_material", Gewerk: GewerkElektro, Sektion: "Installation", Text: "Welches Schalterprogramm wünschen Sie?", Typ: QuestionSingleChoice, Optionen: []string{"Standard", "Gehoben", "Premium"}, Required: true},
		{Id: "elektro_verteiler_erneuern", Gewerk: GewerkElektro, Sektion: "Verteilung", Text: "Soll der Sicherungskasten erneuert werden?", Typ: QuestionSingleChoice, Optionen: []string{"Ja", "Nein"}, Required: true},
		{Id: "elektro_leitungen_erneuern", Gewerk: GewerkElektro, Sektion: "Verteilung", Text: "Sollen die Elektroleitungen komplett erneuert werden?", Erlaeuterung: "Bei Baujahr vor 1980 empfohlen.", Typ: QuestionSingleChoice, Optionen: []string{"Ja", "Nein", "Teilweise"}, Required: true},
		{Id: "elektro_beleuchtung", Gewerk: GewerkElektro, Sektion: "Beleuchtung", Text: "Welche Beleuchtung ist geplant?", Typ: QuestionMultiChoice, Optionen: []string{"Deckenspots", "Pendelleuchten", "LED-Panels", "Keine"}},
		{Id: "elektro_netzwerk_dosen", Gewerk: GewerkElektro, Sektion: "Netzwerk", Text: "Wie viele Netzwerkdosen werden benötigt?", Typ: QuestionNumber},
	},
	GewerkSanitaer: {
		{Id: "sanitaer_bad_komplett", Gewerk: GewerkSanitaer, Sektion: "Bad", Text: "Soll das Bad komplett saniert werden?", Typ: QuestionSingleChoice, Optionen: []string{"Ja", "Nein", "Teilsanierung"}, Required: true},
		{Id: "sanitaer_dusche_typ", Gewerk: GewerkSanitaer, Sektion: "Bad", Text: "Welche Art von Dusche wünschen Sie?", Typ: QuestionSingleChoice, Optionen: []string{"Bodengleich", "Duschwanne", "Badewanne mit Duschaufsatz", "Keine"}},
		{Id: "sanitaer_wc_anzahl", Gewerk: GewerkSanitaer, Sektion: "Bad", Text: "Wie viele WCs sollen erneuert werden?", Typ: QuestionNumber, Required: true},
		{Id: "sanitaer_leitungen_erneuern", Gewerk: GewerkSanitaer, Sektion: "Leitungen", Text: "Sollen die Wasserleitungen erneuert werden?", Erlaeuterung: "Bei Bleileitungen gesetzlich vorgeschrieben.", Typ: QuestionSingleChoice, Optionen: []string{"Ja", "Nein", "Nur Trinkwasser"}, Required: true},
		{Id: "sanitaer_waschbecken_material", Gewerk: GewerkSanitaer, Sektion: "Ausstattung", Text: "Welches Material für Waschbecken und Armaturen?", Typ: QuestionFreeText},
		{Id: "sanitaer_abwasser_pruefen", Gewerk: GewerkSanitaer, Sektion: "Leitungen", Text: "Soll die Abwasserleitung geprüft und ggf. saniert werden?", Typ: QuestionSingleChoice, Optionen: []string{"Ja", "Nein"}},
	},
	GewerkHeizung: {
		{Id: "heizung_system_typ", Gewerk: GewerkHeizung, Sektion: "System", Text: "Welches Heizsystem ist geplant?", Typ: QuestionSingleChoice, Optionen: []string{"Gastherme", "Wärmepumpe", "Fernwärme", "Bestand behalten"}, Required: true},
		{Id: "heizung_heizkoerper_anzahl", Gewerk: GewerkHeizung, Sektion: "Verteilung", Text: "Wie viele Heizkörper sollen erneuert werden?", Typ: QuestionNumber, Required: true},
		{Id: "heizung_fussbodenheizung", Gewerk: GewerkHeizung, Sektion: "Verteilung", Text: "Soll eine Fußbodenheizung eingebaut werden?", Typ: QuestionSingleChoice, Optionen: []string{"Ja", "Nein", "Nur teilweise"}},
		{Id: "heizung_thermostate_smart", Gewerk: GewerkHeizung, Sektion: "Regelung", Text: "Wünschen Sie smarte Thermostate?", Typ: QuestionSingleChoice, Optionen: []string{"Ja", "Nein"}},
		{Id: "heizung_warmwasser", Gewerk: GewerkHeizung, Sektion: "System", Text: "Wie soll Warmwasser bereitet werden?", Typ: QuestionSingleChoice, Optionen: []string{"Zentral", "Durchlauferhitzer", "Bestand behalten"}},
	},
	GewerkMaler: {
		{Id: "maler_flaeche_waende", Gewerk: GewerkMaler, Sektion: "Wände", Text: "Wie viele Quadratmeter Wandfläche sollen gestrichen werden?", Typ: QuestionNumber, Required: true},
		{Id: "maler_farbe_material", Gewerk: GewerkMaler, Sektion: "Wände", Text: "Welche Farbe bzw. welches Material ist gewünscht?", Erlaeuterung: "z.B. Dispersionsfarbe, Silikatfarbe, Kalkfarbe", Typ: QuestionFreeText, Required: true},
		{Id: "maler_tapete_entfernen", Gewerk: GewerkMaler, Sektion: "Vorarbeiten", Text: "Müssen alte Tapeten entfernt werden?", Typ: QuestionSingleChoice, Optionen: []string{"Ja", "Nein"}},
		{Id: "maler_spachteln", Gewerk: GewerkMaler, Sektion: "Vorarbeiten", Text: "Sollen die Wände gespachtelt werden (Q2/Q3)?", Typ: QuestionSingleChoice, Optionen: []string{"Ja", "Nein"}},
		{Id: "maler_decken_streichen", Gewerk: GewerkMaler, Sektion: "Decken", Text: "Sollen auch die Decken gestrichen werden?", Typ: QuestionSingleChoice, Optionen: []string{"Ja", "Nein"}},
	},
	GewerkBoden: {
		{Id: "boden_belag_material", Gewerk: GewerkBoden, Sektion: "Belag", Text: "Welcher Bodenbelag ist gewünscht?", Typ: QuestionSingleChoice, Optionen: []string{"Parkett", "Laminat", "Vinyl", "Fliesen", "Teppich"}, Required: true},
		{Id: "boden_flaeche", Gewerk: GewerkBoden, Sektion: "Belag", Text: "Wie viele Quadratmeter Bodenfläche?", Typ: QuestionNumber, Required: true},
		{Id: "boden_alter_belag_entfernen", Gewerk: GewerkBoden, Sektion: "Vorarbeiten", Text: "Muss der alte Belag entfernt werden?", Typ: QuestionSingleChoice, Optionen: []string{"Ja", "Nein"}},
		{Id: "boden_ausgleich", Gewerk: GewerkBoden, Sektion: "Vorarbeiten", Text: "Muss der Untergrund ausgeglichen werden?", Typ: QuestionSingleChoice, Optionen: []string{"Ja", "Nein", "Unbekannt"}},
		{Id: "boden_sockelleisten", Gewerk: GewerkBoden, Sektion: "Abschluss", Text: "Sollen neue Sockelleisten montiert werden?", Typ: QuestionSingleChoice, Optionen: []string{"Ja", "Nein"}},
	},
	GewerkFenster: {
		{Id: "fenster_anzahl", Gewerk: GewerkFenster, Sektion: "Fenster", Text: "Wie viele Fenster sollen erneuert werden?", Typ: QuestionNumber, Required: true},
		{Id: "fenster_rahmen_material", Gewerk: GewerkFenster, Sektion: "Fenster", Text: "Welches Rahmenmaterial wünschen Sie?", Typ: QuestionSingleChoice, Optionen: []string{"Kunststoff", "Holz", "Aluminium", "Holz-Alu"}, Required: true},
		{Id: "fenster_verglasung", Gewerk: GewerkFenster, Sektion: "Fenster", Text: "Welche Verglasung ist gewünscht?", Typ: QuestionSingleChoice, Optionen: []string{"2-fach", "3-fach"}},
		{Id: "fenster_fensterbaenke", Gewerk: GewerkFenster, Sektion: "Zubehör", Text: "Sollen neue Fensterbänke eingebaut werden?", Typ: QuestionSingleChoice, Optionen: []string{"Ja, innen", "Ja, innen und außen", "Nein"}},
		{Id: "fenster_rollladen", Gewerk: GewerkFenster, Sektion: "Zubehör", Text: "Sollen Rollläden montiert werden?", Typ: QuestionSingleChoice, Optionen: []string{"Ja", "Nein"}},
	},
	GewerkDach: {
		{Id: "dach_eindeckung_erneuern", Gewerk: GewerkDach, Sektion: "Eindeckung", Text: "Soll die Dacheindeckung erneuert werden?", Typ: QuestionSingleChoice, Optionen: []string{"Ja", "Nein", "Nur reparieren"}, Required: true},
		{Id: "dach_daemmung", Gewerk: GewerkDach, Sektion: "Dämmung", Text: "Soll das Dach gedämmt werden?", Typ: QuestionSingleChoice, Optionen: []string{"Aufsparren", "Zwischensparren", "Nein"}, Required: true},
		{Id: "dach_flaeche", Gewerk: GewerkDach, Sektion: "Eindeckung", Text: "Wie groß ist die Dachfläche in Quadratmetern?", Typ: QuestionNumber},
		{Id: "dach_dachfenster", Gewerk: GewerkDach, Sektion: "Fenster", Text: "Sollen Dachfenster eingebaut werden? Wenn ja, wie viele?", Typ: QuestionFreeText},
		{Id: "dach_rinnen_erneuern", Gewerk: GewerkDach, Sektion: "Entwässerung", Text: "Sollen Dachrinnen und Fallrohre erneuert werden?", Typ: QuestionSingleChoice, Optionen: []string{"Ja", "Nein"}},
	},
	GewerkTrockenbau: {
		{Id: "trockenbau_waende_anzahl", Gewerk: GewerkTrockenbau, Sektion: "Wände", Text: "Wie viele neue Trennwände sollen gestellt werden?", Typ: QuestionNumber, Required: true},
		{Id: "trockenbau_decke_abhaengen", Gewerk: GewerkTrockenbau, Sektion: "Decken", Text: "Sollen Decken abgehängt werden?", Typ: QuestionSingleChoice, Optionen: []string{"Ja", "Nein", "Teilweise"}},
		{Id: "trockenbau_schallschutz", Gewerk: GewerkTrockenbau, Sektion: "Wände", Text: "Ist erhöhter Schallschutz gewünscht?", Typ: QuestionSingleChoice, Optionen: []string{"Ja", "Nein"}},
		{Id: "trockenbau_tuer_oeffnungen", Gewerk: GewerkTrockenbau, Sektion: "Wände", Text: "Wie viele Türöffnungen sind in den neuen Wänden vorgesehen?", Typ: QuestionNumber},
	},
	GewerkInnenausbau: {
		{Id: "innenausbau_umfang", Gewerk: GewerkInnenausbau, Sektion: "Allgemein", Text: "Beschreiben Sie den geplanten Umfang der Arbeiten.", Typ: QuestionFreeText, Required: true},
		{Id: "innenausbau_raeume", Gewerk: GewerkInnenausbau, Sektion: "Allgemein", Text: "Wie viele Räume sind betroffen?", Typ: QuestionNumber, Required: true},
		{Id: "innenausbau_tueren_erneuern", Gewerk: GewerkInnenausbau, Sektion: "Türen", Text: "Sollen Innentüren erneuert werden? Wenn ja, wie viele?", Typ: QuestionFreeText},
		{Id: "innenausbau_zeitrahmen", Gewerk: GewerkInnenausbau, Sektion: "Allgemein", Text: "In welchem Zeitrahmen sollen die Arbeiten erfolgen?", Typ: QuestionFreeText},
	},
}

// QuestionsFor returns the question list for a Gewerk. Unknown codes fall
// back to the baseline trade's generic questions.
func QuestionsFor(gewerk string) []Question {
	if qs, ok := questionBank[gewerk]; ok {
		out := make([]Question, len(qs))
		copy(out, qs)
		return out
	}
	out := make([]Question, len(questionBank[GewerkInnenausbau]))
	copy(out, questionBank[GewerkInnenausbau])
	return out
}
