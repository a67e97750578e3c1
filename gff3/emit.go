package gff3

import (
	"sort"
	"strconv"
	"strings"
)

// AsString renders n back to GFF3 text (§4.7): one line per segment for a
// multi-line node. If skipDuplicates is true, a node with Duplicate set
// emits nothing.
func AsString(n *Node, skipDuplicates bool) string {
	if skipDuplicates && n.Duplicate {
		return ""
	}
	if !n.multiLine() {
		return renderLine(n, n.Start, n.End, n.Score, n.Phase, n.Attributes, nil, nil)
	}
	var b strings.Builder
	for i := range n.StartArray {
		score := n.ScoreArray[i]
		phase := n.PhaseArray[i]
		b.WriteString(renderLine(n, n.StartArray[i], n.EndArray[i], score, phase, n.Attributes, n.AttrArrays, &i))
	}
	return b.String()
}

func renderLine(n *Node, start, end int, score string, phase byte, attrs *AttrMap, arrays map[string][]AttrValue, segIdx *int) string {
	var b strings.Builder
	writeCol(&b, n.SeqName)
	writeCol(&b, defaultDot(n.Source))
	writeCol(&b, n.OrigType)
	writeCol(&b, strconv.Itoa(start))
	writeCol(&b, strconv.Itoa(end))
	writeCol(&b, defaultDot(score))
	b.WriteByte(n.Strand)
	b.WriteByte('\t')
	b.WriteByte(phase)
	b.WriteByte('\t')
	b.WriteString(renderAttrs(n, attrs, arrays, segIdx))
	b.WriteByte('\n')
	return b.String()
}

func writeCol(b *strings.Builder, s string) {
	b.WriteString(s)
	b.WriteByte('\t')
}

func defaultDot(s string) string {
	if s == "" {
		return "."
	}
	return s
}

// renderAttrs assembles column 9 from tracked attributes using this
// segment's value, or the node's scalar attribute when the key is not
// tracked (§4.7). Keys starting with '_' and keys ending "_array" are
// hidden.
func renderAttrs(n *Node, attrs *AttrMap, arrays map[string][]AttrValue, segIdx *int) string {
	var parts []string
	keys := attrs.Keys()
	if segIdx != nil {
		// Keys first seen on a later segment are tracked but absent from
		// the node's own attributes; emit them after those, sorted.
		var extra []string
		for key := range n.TrackedAttrs {
			if _, ok := attrs.Get(key); !ok {
				extra = append(extra, key)
			}
		}
		sort.Strings(extra)
		keys = append(keys, extra...)
	}
	for _, key := range keys {
		if strings.HasPrefix(key, "_") || strings.HasSuffix(key, "_array") {
			continue
		}
		var v AttrValue
		if segIdx != nil && n.TrackedAttrs[key] {
			v = arrays[key][*segIdx]
		} else {
			v, _ = attrs.Get(key)
		}
		if v.Empty() {
			continue
		}
		parts = append(parts, key+"="+escapeAttrValue(v))
	}
	return strings.Join(parts, ";")
}

func escapeAttrValue(v AttrValue) string {
	vals := v.Values()
	escaped := make([]string, len(vals))
	for i, s := range vals {
		escaped[i] = escapeAttrString(s)
	}
	return strings.Join(escaped, ",")
}

// escapeAttrString applies the documented escaping: '=' -> "%3D", ';' ->
// "%3B" (§4.7), with '%' itself first escaped to "%25" so the result
// decodes back losslessly.
func escapeAttrString(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "=", "%3D")
	s = strings.ReplaceAll(s, ";", "%3B")
	return s
}

// StructuredOutput emits n then each child recursively depth-first in
// insertion order (§4.7). A subtree whose root (or any ancestor along the
// recursion) carries Skip is elided.
func StructuredOutput(n *Node, skipDuplicates bool) string {
	var b strings.Builder
	writeStructured(&b, n, skipDuplicates)
	return b.String()
}

func writeStructured(b *strings.Builder, n *Node, skipDuplicates bool) {
	if n.Skip {
		return
	}
	if !n.IsRoot() {
		b.WriteString(AsString(n, skipDuplicates))
	}
	for _, c := range n.Children() {
		writeStructured(b, c, skipDuplicates)
	}
}
