package gff3

import (
	"testing"

	"gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { check.TestingT(t) }

type EngineSuite struct{}

var _ = check.Suite(&EngineSuite{})

// TestParseBuildsForest exercises Engine.Parse end-to-end over a small
// multi-record stream, checking the forest it leaves behind.
func (s *EngineSuite) TestParseBuildsForest(c *check.C) {
	e := NewEngine(NewConfig())
	src := newStubLineSource(
		"##gff-version 3\n" +
			"chr1\t.\tgene\t10\t100\t.\t+\t.\tID=g1;Name=Alpha\n" +
			"chr1\t.\tmRNA\t10\t100\t.\t+\t.\tID=m1;Parent=g1\n" +
			"# a plain comment, ignored\n" +
			"chr1\t.\texon\t10\t50\t.\t+\t.\tID=e1;Parent=m1\n" +
			"chr1\t.\texon\t60\t100\t.\t+\t.\tID=e2;Parent=m1\n",
	)

	err := e.Parse(src)
	c.Assert(err, check.Equals, nil)

	gene, ok := e.Store.ByID("g1")
	c.Assert(ok, check.Equals, true)
	c.Check(gene.Name, check.Equals, "Alpha")

	exons := ByType(e.Store.Root(), "exon", false)
	c.Assert(len(exons), check.Equals, 2)
	c.Check(exons[0].ID, check.Equals, "e1")
	c.Check(exons[1].ID, check.Equals, "e2")
}

// TestParseStopsAtFatalIdentityError exercises the die path for an ID
// collision on a type that was never declared multiline.
func (s *EngineSuite) TestParseStopsAtFatalIdentityError(c *check.C) {
	e := NewEngine(NewConfig())
	src := newStubLineSource(
		"chr1\t.\tgene\t10\t100\t.\t+\t.\tID=g1\n" +
			"chr1\t.\tgene\t200\t300\t.\t+\t.\tID=g1\n",
	)

	err := e.Parse(src)
	c.Assert(err, check.NotNil)
	_, ok := err.(*FatalError)
	c.Assert(ok, check.Equals, true)
}

// TestParseFastaSectionAttachesSequence exercises the SCAN/FASTA state
// machine: a '>' header opens a sequence block that attaches to a region
// node once the stream ends.
func (s *EngineSuite) TestParseFastaSectionAttachesSequence(c *check.C) {
	e := NewEngine(NewConfig())
	src := newStubLineSource(
		"chr1\t.\tgene\t10\t20\t.\t+\t.\tID=g1\n" +
			"##FASTA\n" +
			">chr1\n" +
			"ACGTACGT\n" +
			"TTTT\n",
	)

	err := e.Parse(src)
	c.Assert(err, check.Equals, nil)

	region, ok := e.Store.ByID("region___0")
	c.Assert(ok, check.Equals, true)
	seq, ok := region.Attributes.Get("sequence")
	c.Assert(ok, check.Equals, true)
	c.Check(seq.String(), check.Equals, "ACGTACGTTTTT")
}
