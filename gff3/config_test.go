package gff3

import "testing"

func TestParsePolicy(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Policy
	}{
		{"ignore", PolicyIgnore},
		{"WARN", PolicyWarn},
		{"Die", PolicyDie},
		{"skip", PolicySkip},
		{"find", PolicyFind},
		{"make", PolicyMake},
		{"force", PolicyForce},
	} {
		got, ok := ParsePolicy(tt.in)
		if !ok || got != tt.want {
			t.Fatalf("ParsePolicy(%q) = %v, %v; want %v, true", tt.in, got, ok, tt.want)
		}
	}
	if _, ok := ParsePolicy("bogus"); ok {
		t.Fatal("an unrecognized policy string should report ok=false")
	}
}

func TestConfigGuardUnstarted(t *testing.T) {
	cfg := NewConfig()
	e := NewEngine(cfg)
	if err := e.Parse(newStubLineSource("")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("calling Separator after Parse has started should panic")
		}
	}()
	cfg.Separator(",")
}

func TestLacksIDMakePolicyMintsID(t *testing.T) {
	e := NewEngine(NewConfig().LacksID("exon", "make"))
	src := newStubLineSource("chr1\t.\texon\t10\t20\t.\t+\t.\tNote=no-id-here\n")
	if err := e.Parse(src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exons := ByType(e.Store.Root(), "exon", false)
	if len(exons) != 1 {
		t.Fatalf("expected one minted exon, got %d", len(exons))
	}
	if exons[0].ID == "" {
		t.Fatal("make policy should mint a non-empty ID")
	}
}

func TestLacksIDAlternativeAttribute(t *testing.T) {
	e := NewEngine(NewConfig().LacksID("exon", "locus_tag"))
	src := newStubLineSource("chr1\t.\texon\t10\t20\t.\t+\t.\tlocus_tag=EX001\n")
	if err := e.Parse(src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exon, ok := e.Store.ByID("EX001")
	if !ok {
		t.Fatal("the alternative attribute's value should become the ID")
	}
	if exon.Type != "exon" {
		t.Fatalf("exon type = %q, want exon", exon.Type)
	}
}

func TestLacksIDIgnorePolicyDropsLine(t *testing.T) {
	e := NewEngine(NewConfig().LacksID("exon", "ignore"))
	src := newStubLineSource("chr1\t.\texon\t10\t20\t.\t+\t.\tNote=dropped\n")
	if err := e.Parse(src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(e.Store.Root().Children()) != 0 {
		t.Fatal("ignore policy should drop the line entirely")
	}
}

func TestLacksIDDiePolicyFails(t *testing.T) {
	e := NewEngine(NewConfig().LacksID("exon", "die"))
	src := newStubLineSource("chr1\t.\texon\t10\t20\t.\t+\t.\tNote=dropped\n")
	err := e.Parse(src)
	if err == nil {
		t.Fatal("die policy should fail parsing on a missing ID")
	}
	if _, ok := err.(*FatalError); !ok {
		t.Fatalf("expected *FatalError, got %T", err)
	}
}

func TestMapTypesSubstitutesColumnThree(t *testing.T) {
	e := NewEngine(NewConfig().MapTypes(map[string]string{"cds": "CDS"}))
	src := newStubLineSource("chr1\t.\tcds\t10\t20\t.\t+\t0\tID=c1\n")
	if err := e.Parse(src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c1, ok := e.Store.ByID("c1")
	if !ok {
		t.Fatal("c1 should exist")
	}
	if c1.OrigType != "CDS" {
		t.Fatalf("OrigType = %q, want CDS after MapTypes substitution", c1.OrigType)
	}
}
