// Package ipynb provides the filesystem notebook store.
//
// Notebooks are nbformat 4 JSON documents. Decoding normalises
// multi-line fields (cell sources, stream text, text MIME payloads)
// that may be stored as lists of line fragments into single strings,
// and keeps every member it does not understand so that a load→save
// cycle preserves it. Encoding mirrors the nbformat writer.
//
// Saves are atomic: data is written to a temp file in the target
// directory and renamed over the notebook only once fully written.
// There is no locking between calls; the last successful save wins.
package ipynb
