package parser

import (
	"fmt"
	"strings"

	"strl/internal/ast"
	"strl/internal/diag"
)

const flagsHint = "Valid flags are: i (ignore case), m (multiline), s (dotAll), u (unicode), x (extended)"

// extractDirectives strips directive lines (%flags ...) from the head of the
// input and returns the parsed flags, the remaining pattern text, and the
// byte offset of that pattern within the original text. Blank lines and
// #-comment lines before the pattern are dropped. All error positions index
// into the original text.
func extractDirectives(text string) (ast.Flags, string, int, error) {
	var flags ast.Flags
	var patternLines []string
	inPattern := false
	base := 0
	lineOff := 0

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSuffix(rawLine, "\r")
		curOff := lineOff
		lineOff += len(rawLine) + 1

		stripped := strings.TrimSpace(line)
		if !inPattern && (stripped == "" || strings.HasPrefix(stripped, "#")) {
			continue
		}
		if !inPattern && strings.HasPrefix(stripped, "%flags") {
			idx := strings.Index(line, "%flags")
			after := line[idx+len("%flags"):]

			// Separate the flags token from inline pattern content on the
			// same line: the token may contain separators and flag letters,
			// anything else starts the pattern.
			end := 0
			for end < len(after) && strings.ContainsRune(" \t,[]imsuxIMSUX", rune(after[end])) {
				end++
			}
			flagsToken := after[:end]
			remainder := after[end:]

			letters := strings.ToLower(stripSeparators(flagsToken))
			if letters == "" {
				if strings.TrimSpace(remainder) != "" {
					ch := []rune(strings.TrimSpace(remainder))[0]
					pos := curOff + idx + len("%flags") + strings.IndexRune(after, ch)
					return flags, "", 0, diag.New(
						fmt.Sprintf("Invalid flag '%c'", ch), pos, text).WithHint(flagsHint)
				}
				// directive-only line with no flags
			} else {
				for _, ch := range letters {
					switch ch {
					case 'i':
						flags.IgnoreCase = true
					case 'm':
						flags.Multiline = true
					case 's':
						flags.DotAll = true
					case 'u':
						flags.Unicode = true
					case 'x':
						flags.Extended = true
					default:
						return flags, "", 0, diag.New(
							fmt.Sprintf("Invalid flag '%c'", ch), curOff+idx, text).WithHint(flagsHint)
					}
				}
				if strings.TrimSpace(remainder) != "" {
					if len(patternLines) == 0 {
						base = curOff + idx + len("%flags") + end
					}
					inPattern = true
					patternLines = append(patternLines, remainder)
				}
			}
			inPattern = true
			continue
		}
		if !inPattern && strings.HasPrefix(stripped, "%") {
			idx := strings.Index(line, "%")
			return flags, "", 0, diag.New("Unknown directive", curOff+idx, text)
		}
		// A %flags directive inside the pattern body is an explicit error
		// rather than literal content.
		if di := strings.Index(line, "%flags"); di >= 0 {
			return flags, "", 0, diag.New("Directive must appear at the start of the pattern", curOff+di, text)
		}
		if len(patternLines) == 0 {
			base = curOff
		}
		inPattern = true
		patternLines = append(patternLines, line)
	}

	return flags, strings.Join(patternLines, "\n"), base, nil
}

func stripSeparators(token string) string {
	var b strings.Builder
	for _, ch := range token {
		switch ch {
		case ' ', '\t', ',', '[', ']', '\r', '\n':
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}
