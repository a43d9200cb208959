// Package normalisers holds helpers that turn rich output payloads
// into compact plain-text forms for notebook summaries.
package normalisers
