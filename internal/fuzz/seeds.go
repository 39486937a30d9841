package fuzztests

import "testing"

// maxFuzzInput clamps fuzz inputs so a runaway mutation cannot turn a
// robustness test into an allocator benchmark.
const maxFuzzInput = 16 << 10

// patternSeeds covers every syntactic family the parser knows: literals,
// quantifiers, groups, classes, escapes, directives, and the error shapes
// that exercise diagnostic paths.
var patternSeeds = []string{
	"",
	"abc",
	"a|b|c",
	"a*b+c?",
	"a{2,5}?x{3}+",
	"(foo)(?:bar)(?<name>baz)",
	"(?>ab)(?=x)(?!y)(?<=z)(?<!w)",
	`\d+\.\d{2}`,
	`\p{L}\P{Nd}\w\s`,
	`[a-z0-9_][^\]]`,
	`[\x41-\x{1F600}]`,
	`\x{10FFFF}\u{1F600}A\U0001F600`,
	`(a)\1(?<n>b)\k<n>`,
	"^start$|\\Aend\\z",
	"%flags imx\na b # comment\n",
	"%flags i, [s]\npattern",
	"a{,5}b{2,}",
	"(unclosed",
	"[unclosed",
	`\x{110000}`,
	"a**",
	"%flags q\nx",
	"(?<1bad>x)",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range patternSeeds {
		f.Add(seed)
	}
}

func clampInput(src string) string {
	if len(src) <= maxFuzzInput {
		return src
	}
	return src[:maxFuzzInput]
}
