package diagfmt

import (
	"encoding/json"
	"io"

	"strl/internal/diag"
)

// JSON writes diagnostics in their editor-facing projection as a JSON array,
// truncated to opts.MaxProblems when set.
func JSON(w io.Writer, diags []*diag.Diagnostic, opts Options) error {
	if opts.MaxProblems > 0 && len(diags) > opts.MaxProblems {
		diags = diags[:opts.MaxProblems]
	}
	out := make([]diag.LSPDiagnostic, len(diags))
	for i, d := range diags {
		out[i] = d.LSP()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
