package gff3

import "testing"

func TestCoalesceBuildsSegmentArrays(t *testing.T) {
	cfg := NewConfig().Multiline("cds")
	e := NewEngine(cfg)

	first := &Fields{
		SeqName: "chr1", Source: "phytozome", Type: "CDS",
		Start: 30, End: 50, Score: "0.9", Strand: '+', Phase: '0',
		Attributes: NewAttrMap(),
	}
	first.Attributes.Set("ID", Scalar("cds1"))
	first.Attributes.Set("Parent", Scalar("m1"))

	n := e.newNodeFromFields(first, "CDS", "cds", "cds1", false)
	e.Store.Attach(e.Store.Root(), n)

	second := &Fields{
		SeqName: "chr1", Source: "phytozome", Type: "CDS",
		Start: 10, End: 20, Score: "0.8", Strand: '+', Phase: '2',
		Attributes: NewAttrMap(),
	}
	second.Attributes.Set("ID", Scalar("cds1"))
	second.Attributes.Set("Parent", Scalar("m1"))

	if err := e.coalesce(n, second, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !n.multiLine() {
		t.Fatal("node should be multi-line after coalesce")
	}
	if n.SegmentCount() != 2 {
		t.Fatalf("SegmentCount = %d, want 2", n.SegmentCount())
	}
	// Second segment starts earlier, so sorted insertion places it first.
	wantStarts := []int{10, 30}
	wantEnds := []int{20, 50}
	for i := range wantStarts {
		if n.StartArray[i] != wantStarts[i] || n.EndArray[i] != wantEnds[i] {
			t.Fatalf("segment %d = [%d,%d], want [%d,%d]", i, n.StartArray[i], n.EndArray[i], wantStarts[i], wantEnds[i])
		}
	}
	if n.PhaseArray[0] != '2' || n.PhaseArray[1] != '0' {
		t.Fatalf("PhaseArray = %v, want ['2','0']", n.PhaseArray)
	}
	if n.Start != 10 || n.End != 50 {
		t.Fatalf("node's own Start/End should widen to cover all segments: got %d-%d", n.Start, n.End)
	}
}

func TestCoalesceTracksNewAttributePerSegment(t *testing.T) {
	cfg := NewConfig().Multiline("cds")
	e := NewEngine(cfg)

	first := &Fields{
		SeqName: "chr1", Type: "CDS", Start: 10, End: 20, Score: ".", Strand: '+', Phase: '0',
		Attributes: NewAttrMap(),
	}
	first.Attributes.Set("ID", Scalar("cds1"))
	n := e.newNodeFromFields(first, "CDS", "cds", "cds1", false)
	e.Store.Attach(e.Store.Root(), n)

	second := &Fields{
		SeqName: "chr1", Type: "CDS", Start: 30, End: 40, Score: ".", Strand: '+', Phase: '1',
		Attributes: NewAttrMap(),
	}
	second.Attributes.Set("ID", Scalar("cds1"))
	second.Attributes.Set("Note", Scalar("second-only"))

	if err := e.coalesce(n, second, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	arr, ok := n.AttrArrays["Note"]
	if !ok || len(arr) != 2 {
		t.Fatalf("Note should be tracked across both segments, got %v", arr)
	}
	if !arr[0].Empty() {
		t.Fatalf("first segment never carried Note, should be an empty placeholder, got %+v", arr[0])
	}
	if arr[1].String() != "second-only" {
		t.Fatalf("second segment's Note = %+v, want second-only", arr[1])
	}
}
