package upload

// Context carries structured evidence uploaded alongside a session
// (spreadsheets, scanned documents, photos, free text). It is the
// authoritative source in the second validation pass.
type FileType string

const (
	FileExcel FileType = "excel"
	FileCSV   FileType = "csv"
	FilePDF   FileType = "pdf"
	FileImage FileType = "image"
	FileText  FileType = "text"
)

type Context struct {
	FileType   FileType    `json:"fileType"`
	Rows       []Row       `json:"parsedData,omitempty"`
	Structured *Structured `json:"structured,omitempty"`
	Text       string      `json:"text,omitempty"`
	Summary    string      `json:"summary,omitempty"`
}

// Row is one spreadsheet line. Dimensions are in cm, Laenge in m.
type Row struct {
	Material string  `json:"material"`
	Breite   float64 `json:"breite,omitempty"`
	Hoehe    float64 `json:"hoehe,omitempty"`
	Laenge   float64 `json:"laenge,omitempty"`
	Menge    float64 `json:"menge,omitempty"`
	Raum     string  `json:"raum,omitempty"`
}

type Structured struct {
	Items           []Item             `json:"items,omitempty"`
	DocumentType    string             `json:"documentType,omitempty"`
	Positions       []DocumentPosition `json:"positions,omitempty"`
	Measurements    []Measurement      `json:"measurements,omitempty"`
	DetectedObjects []DetectedObject   `json:"detectedObjects,omitempty"`
}

type Item struct {
	Label    string  `json:"label"`
	Material string  `json:"material,omitempty"`
	Einheit  string  `json:"einheit,omitempty"`
	Menge    float64 `json:"menge,omitempty"`
	Breite   float64 `json:"breite,omitempty"`
	Hoehe    float64 `json:"hoehe,omitempty"`
	Raum     string  `json:"raum,omitempty"`
}

type DocumentPosition struct {
	Nummer  string  `json:"nummer,omitempty"`
	Text    string  `json:"text"`
	Einheit string  `json:"einheit,omitempty"`
	Menge   float64 `json:"menge,omitempty"`
}

type Measurement struct {
	Label   string  `json:"label"`
	Breite  float64 `json:"breite,omitempty"`
	Hoehe   float64 `json:"hoehe,omitempty"`
	Laenge  float64 `json:"laenge,omitempty"`
	Einheit string  `json:"einheit,omitempty"`
}

type DetectedObject struct {
	Label    string `json:"label"`
	Count    int    `json:"count"`
	Material string `json:"material,omitempty"`
}
