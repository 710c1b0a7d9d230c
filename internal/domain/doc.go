// Package domain contains shared domain types used across entity
// sub-packages. Entity-specific types live in sub-packages (domain/groclist,
// domain/item, domain/hebrew). This root package holds the error taxonomy,
// the Result envelope returned for every tool call, the tool-call types
// consumed from the intent source, and the Hebrew user-facing message
// catalog.
package domain
