// Package fuzztests houses Go fuzz harnesses that exercise the full
// pattern pipeline (parse -> lower -> normalize -> emit). Its goal is to
// smoke test robustness and guard against panics on arbitrary inputs.
package fuzztests
