package gff3

import "strings"

// LineKind is the result of classifying one input line (§4.2).
type LineKind int

const (
	// KindBlank is an empty or whitespace-only line.
	KindBlank LineKind = iota
	// KindComment is a line beginning with a single '#' (depth 1) — a
	// plain comment, not a directive.
	KindComment
	// KindDirective is a line beginning with '##' or more (depth >= 2).
	KindDirective
	// KindFastaHeader is a '>name' line opening a FASTA section.
	KindFastaHeader
	// KindData is an ordinary GFF3 data line.
	KindData
)

// Classification is the result of classifying a line: its kind, and for
// comments/directives the leading '#' run length, and for a FASTA header
// the name that followed '>'.
type Classification struct {
	Kind  LineKind
	Depth int    // '#' run length, for KindComment/KindDirective
	Name  string // header name, for KindFastaHeader
}

// Classify categorizes line (§4.2). It does not apply inline comment
// stripping — call StripInlineComments first if the Config declares any.
func Classify(line string) Classification {
	trimmed := strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(trimmed) == "" {
		return Classification{Kind: KindBlank}
	}
	if strings.HasPrefix(trimmed, "#") {
		depth := 0
		for depth < len(trimmed) && trimmed[depth] == '#' {
			depth++
		}
		if depth >= 2 {
			return Classification{Kind: KindDirective, Depth: depth}
		}
		return Classification{Kind: KindComment, Depth: depth}
	}
	if strings.HasPrefix(trimmed, ">") {
		return Classification{Kind: KindFastaHeader, Name: strings.TrimSpace(trimmed[1:])}
	}
	return Classification{Kind: KindData}
}

// CommentPattern is one inline-comment delimiter declared via
// Config.HasComments: either a single delimiter (strip from the delimiter
// to end-of-line) or a delimiter pair (strip the matched enclosed span).
type CommentPattern struct {
	Open  string
	Close string // empty for a single to-end-of-line delimiter
}

// StripInlineComments applies every configured CommentPattern to line,
// in order, before tokenization (§4.2). The interaction with quoted '='/';'
// inside attribute values is intentionally undefined, matching the GFF3
// format's own lack of a quoting convention — see DESIGN.md.
func StripInlineComments(line string, patterns []CommentPattern) string {
	for _, p := range patterns {
		if p.Close == "" {
			if i := strings.Index(line, p.Open); i >= 0 {
				line = line[:i]
			}
			continue
		}
		for {
			i := strings.Index(line, p.Open)
			if i < 0 {
				break
			}
			j := strings.Index(line[i+len(p.Open):], p.Close)
			if j < 0 {
				line = line[:i]
				break
			}
			end := i + len(p.Open) + j + len(p.Close)
			line = line[:i] + line[end:]
		}
	}
	return line
}
