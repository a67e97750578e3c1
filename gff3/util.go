package gff3

import "strings"

// lower is the case-fold used everywhere a type name is dispatched on
// (§3: "type... case-normalized to lower-case for dispatch but preserved
// for emission").
func lower(s string) string { return strings.ToLower(s) }
