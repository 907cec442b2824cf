// Package diagnostic provides structured errors, warnings and infos
// collected while classifying and merging mixable documents.
//
// Key capabilities:
//   - Severity-split collections (errors never block on warnings)
//   - Deduplication by severity, message and document path
//   - Document context for every entry in an inheritance chain
//   - Coloured text and JSON rendering for the CLI
package diagnostic
