package ast

// Flags is the record produced by the %flags directive. It is immutable
// after parsing; the extended flag affects tokenization only and never
// reaches the IR.
type Flags struct {
	IgnoreCase bool `json:"ignoreCase"`
	Multiline  bool `json:"multiline"`
	DotAll     bool `json:"dotAll"`
	Unicode    bool `json:"unicode"`
	Extended   bool `json:"extended"`
}

// FromLetters builds a Flags record from directive letters. Unknown letters
// are ignored here; the parser validates them before calling.
func FromLetters(letters string) Flags {
	var f Flags
	for _, ch := range letters {
		switch ch {
		case 'i':
			f.IgnoreCase = true
		case 'm':
			f.Multiline = true
		case 's':
			f.DotAll = true
		case 'u':
			f.Unicode = true
		case 'x':
			f.Extended = true
		}
	}
	return f
}

// Letters renders the set flags in the canonical fixed order i, m, s, u, x.
func (f Flags) Letters() string {
	out := make([]byte, 0, 5)
	if f.IgnoreCase {
		out = append(out, 'i')
	}
	if f.Multiline {
		out = append(out, 'm')
	}
	if f.DotAll {
		out = append(out, 's')
	}
	if f.Unicode {
		out = append(out, 'u')
	}
	if f.Extended {
		out = append(out, 'x')
	}
	return string(out)
}

// Any reports whether at least one flag is set.
func (f Flags) Any() bool {
	return f != Flags{}
}
