package gff3

import "testing"

func TestTokenizeNormal(t *testing.T) {
	cfg := NewConfig()
	tok := NewTokenizer(cfg)

	f, err := tok.Tokenize("chr1\tphytozome\tgene\t10\t100\t.\t+\t.\tID=gene1;Name=Foo", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.SeqName != "chr1" || f.Source != "phytozome" || f.Type != "gene" {
		t.Fatalf("unexpected columns: %+v", f)
	}
	if f.Start != 10 || f.End != 100 {
		t.Fatalf("unexpected coords: start=%d end=%d", f.Start, f.End)
	}
	if f.Strand != '+' || f.Phase != '.' {
		t.Fatalf("unexpected strand/phase: %c %c", f.Strand, f.Phase)
	}
	id, ok := f.Attributes.Get("ID")
	if !ok || id.String() != "gene1" {
		t.Fatalf("ID attribute missing or wrong: %+v", id)
	}
	name, ok := f.Attributes.Get("Name")
	if !ok || name.String() != "Foo" {
		t.Fatalf("Name attribute missing or wrong: %+v", name)
	}
}

func TestTokenizePadsShortLines(t *testing.T) {
	cfg := NewConfig()
	tok := NewTokenizer(cfg)

	f, err := tok.Tokenize("chr1\t.\tgene\t10\t100", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Strand != '.' || f.Phase != '.' {
		t.Fatalf("missing columns should default to '.': strand=%c phase=%c", f.Strand, f.Phase)
	}
}

func TestTokenizeExpectColumnsDie(t *testing.T) {
	cfg := NewConfig().ExpectColumns(9, PolicyDie)
	tok := NewTokenizer(cfg)

	_, err := tok.Tokenize("chr1\t.\tgene\t10\t100\t.\t+", 1)
	if err == nil {
		t.Fatal("expected an error for a short line under ExpectColumns(9, die)")
	}
	if _, ok := err.(*FatalError); !ok {
		t.Fatalf("expected *FatalError, got %T", err)
	}
}

func TestTokenizeExpectColumnsSkip(t *testing.T) {
	cfg := NewConfig().ExpectColumns(9, PolicySkip)
	tok := NewTokenizer(cfg)

	f, err := tok.Tokenize("chr1\t.\tgene\t10\t100\t.\t+", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != nil {
		t.Fatalf("expected nil Fields for a skipped line, got %+v", f)
	}
}

var parseAttributesTests = []struct {
	Name string
	In   string
	Keys []string
	Vals map[string]string
	List map[string][]string
}{
	{
		Name: "simple pairs",
		In:   "ID=g1;Name=Foo",
		Keys: []string{"ID", "Name"},
		Vals: map[string]string{"ID": "g1", "Name": "Foo"},
	},
	{
		Name: "comma list",
		In:   "Parent=mRNA1,mRNA2",
		Keys: []string{"Parent"},
		List: map[string][]string{"Parent": {"mRNA1", "mRNA2"}},
	},
	{
		Name: "percent escaped value",
		In:   "Note=foo%3Dbar%3Bbaz",
		Keys: []string{"Note"},
		Vals: map[string]string{"Note": "foo=bar;baz"},
	},
	{
		Name: "dot column",
		In:   ".",
		Keys: nil,
	},
	{
		Name: "empty value dropped",
		In:   "Note=;ID=g1",
		Keys: []string{"ID"},
		Vals: map[string]string{"ID": "g1"},
	},
}

func TestParseAttributes(t *testing.T) {
	for _, tt := range parseAttributesTests {
		m, err := parseAttributes(tt.In)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.Name, err)
		}
		keys := m.Keys()
		if len(keys) != len(tt.Keys) {
			t.Fatalf("%s: keys = %v, want %v", tt.Name, keys, tt.Keys)
		}
		for i, k := range tt.Keys {
			if keys[i] != k {
				t.Fatalf("%s: key[%d] = %q, want %q", tt.Name, i, keys[i], k)
			}
		}
		for k, want := range tt.Vals {
			v, ok := m.Get(k)
			if !ok || v.String() != want {
				t.Fatalf("%s: Get(%q) = %+v, want %q", tt.Name, k, v, want)
			}
		}
		for k, want := range tt.List {
			v, ok := m.Get(k)
			if !ok || !v.IsList() {
				t.Fatalf("%s: Get(%q) not a list: %+v", tt.Name, k, v)
			}
			got := v.Values()
			if len(got) != len(want) {
				t.Fatalf("%s: Values(%q) = %v, want %v", tt.Name, k, got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("%s: Values(%q)[%d] = %q, want %q", tt.Name, k, i, got[i], want[i])
				}
			}
		}
	}
}

func TestPercentDecode(t *testing.T) {
	got, err := percentDecode("foo%3Dbar%3Bbaz%25done")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "foo=bar;baz%done"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
