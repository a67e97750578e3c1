package gff3

import (
	"strconv"
	"strings"
)

// Fields holds the nine typed GFF3 columns, parsed but not yet resolved
// into a graph node (§4.1).
type Fields struct {
	SeqName string
	Source  string
	Type    string
	Start   int
	End     int
	Score   string
	Strand  byte
	Phase   byte

	Attributes *AttrMap
}

// Tokenizer splits a raw GFF3 data line into Fields. Its behavior is
// governed by the separator and expect_columns settings on the owning
// Config (§4.1).
type Tokenizer struct {
	cfg *Config
}

// NewTokenizer returns a Tokenizer bound to cfg. Changes to cfg made after
// tokenization begins take effect on the next call, matching the "configure
// before first Read/Parse" convention used throughout this package.
func NewTokenizer(cfg *Config) *Tokenizer {
	return &Tokenizer{cfg: cfg}
}

// Tokenize splits line on the configured separator and parses its
// attribute column. It returns (nil, nil) when expect_columns is violated
// and the configured flag is skip — the builder treats that as a no-op for
// this line, per §4.1.
func (t *Tokenizer) Tokenize(line string, lineNo int) (*Fields, error) {
	sep := t.cfg.separator
	cols := strings.Split(line, sep)

	if t.cfg.expectColumns > 0 && len(cols) != t.cfg.expectColumns {
		msg := &ParseError{
			Line:    lineNo,
			Field:   "column count",
			Msg:     "expected " + strconv.Itoa(t.cfg.expectColumns) + " columns, got " + strconv.Itoa(len(cols)),
			Content: line,
		}
		switch t.cfg.expectColumnsFlag {
		case PolicyIgnore:
			// fall through and attempt to parse anyway
		case PolicyWarn:
			t.cfg.diag.warn(msg.Error())
		case PolicyDie:
			return nil, fatal(msg)
		case PolicySkip:
			return nil, nil
		}
	}

	for len(cols) < 9 {
		cols = append(cols, ".")
	}

	f := &Fields{
		SeqName: col(cols, 0),
		Source:  col(cols, 1),
		Type:    col(cols, 2),
		Score:   col(cols, 5),
	}

	if start, err := strconv.Atoi(col(cols, 3)); err == nil {
		f.Start = start
	}
	if end, err := strconv.Atoi(col(cols, 4)); err == nil {
		f.End = end
	}

	if s := col(cols, 6); len(s) > 0 {
		f.Strand = s[0]
	} else {
		f.Strand = '.'
	}
	if p := col(cols, 7); len(p) > 0 {
		f.Phase = p[0]
	} else {
		f.Phase = '.'
	}

	attrs, err := parseAttributes(col(cols, 8))
	if err != nil {
		return nil, &ParseError{Line: lineNo, Field: "attributes", Msg: err.Error(), Content: col(cols, 8)}
	}
	f.Attributes = attrs

	return f, nil
}

func col(cols []string, i int) string {
	if i >= len(cols) {
		return ""
	}
	return cols[i]
}

// parseAttributes splits GFF3 column 9 into an ordered key/value map
// (§4.1): split first on ';', then on '=' to get key/value pairs; percent
// decode the value; comma-split it into a list when it contains ','; drop
// keys whose value decodes to empty.
func parseAttributes(col9 string) (*AttrMap, error) {
	m := NewAttrMap()
	if col9 == "" || col9 == "." {
		return m, nil
	}
	for _, pair := range strings.Split(col9, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, "=", 2)
		key := strings.TrimSpace(kv[0])
		if key == "" {
			continue
		}
		raw := ""
		if len(kv) == 2 {
			raw = kv[1]
		}
		decoded, err := percentDecode(raw)
		if err != nil {
			return nil, err
		}
		if decoded == "" {
			continue
		}
		if strings.Contains(decoded, ",") {
			m.Set(key, List(strings.Split(decoded, ",")))
		} else {
			m.Set(key, Scalar(decoded))
		}
	}
	return m, nil
}

// percentDecode replaces %XX hex escapes with the corresponding byte. This
// is deliberately not net/url.QueryUnescape: GFF3's column 9 escaping is a
// raw byte-escape over reserved characters (';', '=', '&', ',', tab,
// newline, '%'), not application/x-www-form-urlencoded, and
// QueryUnescape's folding of '+' to a space would corrupt free-text values.
func percentDecode(s string) (string, error) {
	if !strings.Contains(s, "%") {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			hi, okHi := hexVal(s[i+1])
			lo, okLo := hexVal(s[i+2])
			if okHi && okLo {
				b.WriteByte(byte(hi<<4 | lo))
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String(), nil
}

func hexVal(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}
