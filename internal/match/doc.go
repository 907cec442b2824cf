// Package match ranks candidate names against a misspelled one.
//
// It backs the "did you mean" suggestions attached to unknown-key
// diagnostics. Names are normalized before comparison so that
// casing and separators do not count as edits:
//
//	Suggest("log_level", []string{"LogLevel", "Timeout"}) // ["LogLevel"]
package match
