// Package html measures tabular HTML found in notebook outputs.
// It walks the parsed node tree of the first table, counting body rows
// and columns and extracting header labels and a few preview rows as
// plain text for output summaries.
package html
