package diag

// LSPDiagnostic mirrors the Language Server Protocol Diagnostic shape so
// editor clients can consume parse failures without translation.
type LSPDiagnostic struct {
	Range    LSPRange `json:"range"`
	Severity int      `json:"severity"`
	Message  string   `json:"message"`
	Source   string   `json:"source"`
	Code     string   `json:"code"`
}

// LSPRange is a half-open range between two positions.
type LSPRange struct {
	Start LSPPosition `json:"start"`
	End   LSPPosition `json:"end"`
}

// LSPPosition is a 0-based line/character position.
type LSPPosition struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}
