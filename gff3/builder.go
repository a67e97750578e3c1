package gff3

import (
	"io"
	"strconv"
	"strings"
)

// Engine drives the parse/validate/emit pipeline over one Store. It holds
// every piece of module-scoped mutable state the spec calls out as
// instance-lifetime (§5, §9): the position/ID indices and next_feature
// cursors live on the Store; the tokenizer config, the per-prefix
// ID-suffix counters and the minted-ID bookkeeping live here.
type Engine struct {
	Config *Config
	Store  *Store

	tok *Tokenizer

	idCounters map[string]int  // prefix -> next candidate suffix
	minted     map[string]bool // IDs this engine minted, vs. user-supplied

	fasta *fastaState
}

type fastaState struct {
	name   string
	region *Node
	seq    strings.Builder
}

// NewEngine returns an Engine ready to Parse with cfg. A nil cfg uses
// NewConfig()'s defaults.
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Engine{
		Config:     cfg,
		Store:      NewStore(),
		tok:        NewTokenizer(cfg),
		idCounters: make(map[string]int),
		minted:     make(map[string]bool),
	}
}

// Parse drives the SCAN/FASTA state machine (§4.3) over src until EOF,
// building the forest into e.Store. A die-flagged failure returns a
// *FatalError immediately; an error from src other than io.EOF is returned
// as is; all other errors are reported through the configured Logger and
// parsing continues.
func (e *Engine) Parse(src LineSource) error {
	e.Config.started = true
	for {
		line, lineNo, err := src.NextLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if ferr := e.step(line, lineNo); ferr != nil {
			return ferr
		}
	}
	if e.fasta != nil {
		e.flushFasta()
	}
	return e.resolveOrphans()
}

// step processes one raw input line through the SCAN/FASTA state machine.
func (e *Engine) step(line string, lineNo int) error {
	class := Classify(line)

	if e.fasta != nil {
		switch class.Kind {
		case KindFastaHeader:
			e.flushFasta()
			e.openFasta(class.Name)
			return nil
		case KindDirective:
			if class.Depth >= 2 {
				e.flushFasta()
				// directive terminates FASTA mode; fall through to SCAN handling below.
			} else {
				return nil
			}
		case KindComment, KindBlank:
			return nil
		case KindData:
			if looksLikeRecord(line, e.Config.separator) {
				e.flushFasta()
				// fall through to SCAN handling below.
			} else {
				e.appendFasta(line)
				return nil
			}
		}
	}

	switch class.Kind {
	case KindBlank:
		return nil
	case KindComment:
		return nil
	case KindDirective:
		return nil
	case KindFastaHeader:
		e.openFasta(class.Name)
		return nil
	case KindData:
		return e.build(line, lineNo)
	}
	return nil
}

// looksLikeRecord reports whether line tokenizes into something shaped like
// a 9-column GFF3 record, used to decide whether a line encountered while
// in FASTA mode terminates the sequence block early (§4.3: "FASTA
// --comment/data-that-looks-like-record--> SCAN").
func looksLikeRecord(line, sep string) bool {
	return strings.Count(line, sep) >= 8
}

func (e *Engine) openFasta(name string) {
	e.fasta = &fastaState{name: name}
}

func (e *Engine) appendFasta(line string) {
	e.fasta.seq.WriteString(line)
	region := e.fasta.region
	if region == nil {
		region = e.ensureRegion(e.fasta.name)
		e.fasta.region = region
	}
	if l := e.fasta.seq.Len(); l > region.End {
		region.End = l
	}
	if region.Start == 0 {
		region.Start = 1
	}
}

// ensureRegion finds or creates a region node for seqName, used both by
// FASTA attachment and by make's hasParent/region repair (§4.5.2).
func (e *Engine) ensureRegion(seqName string) *Node {
	for _, n := range e.Store.Root().Children() {
		if n.Type == "region" && n.SeqName == seqName {
			return n
		}
	}
	n := e.Store.NewNode()
	n.SeqName = seqName
	n.Type = "region"
	n.OrigType = "region"
	n.Source = "."
	n.Score = "."
	n.Strand = '+'
	n.Phase = '.'
	n.Start = 0
	n.End = 0
	n.Attributes = NewAttrMap()
	n.ID = e.mintID("region")
	n.Name = n.ID
	n.Attributes.Set("ID", Scalar(n.ID))
	e.Store.Attach(e.Store.Root(), n)
	return n
}

func (e *Engine) flushFasta() {
	if e.fasta == nil {
		return
	}
	if e.fasta.region != nil {
		e.fasta.region.Attributes.Set("sequence", Scalar(e.fasta.seq.String()))
	}
	e.fasta = nil
}

// build implements BUILD (§4.3 steps 1-8) for one data line.
func (e *Engine) build(line string, lineNo int) error {
	stripped := StripInlineComments(line, e.Config.commentPatterns)

	f, err := e.tok.Tokenize(stripped, lineNo)
	if err != nil {
		if _, ok := err.(*FatalError); ok {
			return err
		}
		e.Config.diag.warn(err.Error())
		return nil
	}
	if f == nil {
		return nil // expect_columns skip
	}

	rawType := f.Type
	typ := lower(rawType)
	if mapped, ok := e.Config.typeMap[typ]; ok {
		rawType = mapped
		typ = lower(mapped)
	}

	parentVal, hasParentAttr := f.Attributes.Get("Parent")

	resolvedParent := e.Store.Root()
	if hasParentAttr && !parentVal.IsList() {
		if p, ok := e.Store.ByID(parentVal.String()); ok {
			resolvedParent = p
		}
	}

	idVal, hasID := f.Attributes.Get("ID")
	idStr := idVal.String()
	minted := false
	if !hasID || idStr == "" {
		switch policy := e.Config.lacksIDPolicy(typ); policy {
		case "ignore":
			return nil
		case "warn":
			e.Config.diag.warn("line missing ID attribute, dropped", "line", lineNo, "type", typ)
			return nil
		case "die":
			return fatal(&ParseError{Line: lineNo, Field: "ID", Msg: "missing ID attribute", Content: line})
		case "make":
			idStr = e.resolveMintedID(resolvedParent, typ)
			minted = true
		default:
			if altVal, ok := f.Attributes.Get(policy); ok && !altVal.Empty() {
				idStr = altVal.String()
			} else {
				idStr = e.resolveMintedID(resolvedParent, typ)
				minted = true
			}
		}
	}
	idStr = sanitizeID(idStr)

	if hasParentAttr && parentVal.IsList() {
		return e.buildSplitParents(f, rawType, typ, idStr, parentVal.Values(), lineNo, minted)
	}

	if existing, ok := e.Store.ByID(idStr); ok {
		if e.canCoalesce(existing, f, typ, resolvedParent) {
			return e.coalesce(existing, f, lineNo)
		}
		return fatal(&IdentityError{
			Line: lineNo,
			ID:   idStr,
			Msg:  "ID already in use by a feature not declared multiline (call Config.Multiline to allow coalescing for this type)",
		})
	}

	n := e.newNodeFromFields(f, rawType, typ, idStr, minted)
	if minted {
		e.minted[idStr] = true
	}
	e.Store.Attach(resolvedParent, n)
	if hasParentAttr {
		n.Attributes.Set("Parent", Scalar(parentVal.String()))
	}
	return nil
}

// buildSplitParents implements §4.3 step 6: a Parent attribute that is a
// list of N parents materializes N sibling nodes, IDs base, base._1, ...,
// all but the first marked Duplicate.
func (e *Engine) buildSplitParents(f *Fields, rawType, typ, baseID string, parents []string, lineNo int, minted bool) error {
	for i, parentID := range parents {
		id := baseID
		if i > 0 {
			id = baseID + "._" + strconv.Itoa(i)
		}
		parent := e.Store.Root()
		if p, ok := e.Store.ByID(parentID); ok {
			parent = p
		}
		n := e.newNodeFromFields(f, rawType, typ, id, minted && i == 0)
		n.Attributes.Set("Parent", Scalar(parentID))
		if i > 0 {
			n.Duplicate = true
		}
		e.Store.Attach(parent, n)
	}
	return nil
}

func (e *Engine) newNodeFromFields(f *Fields, rawType, typ, id string, minted bool) *Node {
	n := e.Store.NewNode()
	n.SeqName = f.SeqName
	n.Source = f.Source
	n.Type = typ
	n.OrigType = rawType
	n.Start = f.Start
	n.End = f.End
	n.Score = f.Score
	n.Strand = f.Strand
	n.Phase = f.Phase
	n.Attributes = f.Attributes.Clone()
	n.ID = id
	if nameVal, ok := n.Attributes.Get("Name"); ok && !nameVal.Empty() {
		n.Name = nameVal.String()
	} else {
		n.Name = id
	}
	n.Attributes.Set("ID", Scalar(id))
	if minted {
		e.minted[id] = true
	}
	return n
}

// resolveMintedID implements §4.3 step 4's "make" policy: mint a fresh ID,
// reusing the parent's existing minted multi-line child of this type
// rather than minting a new one, so that an un-ID'd multi-line feature
// coalesces across lines instead of splitting into singletons.
func (e *Engine) resolveMintedID(parent *Node, typ string) string {
	if e.Config.isMultiline(typ) {
		for _, c := range parent.Children() {
			if c.Type == typ && e.minted[c.ID] {
				return c.ID
			}
		}
	}
	return e.mintID(typ)
}

// mintID mints a fresh ID of the form "<type>___<n>", where n is the
// smallest non-negative integer not yet used under the per-prefix counter.
// The counter caches the next candidate; the candidate is verified against
// the global ID index before being accepted (§4.3 step 4).
func (e *Engine) mintID(typ string) string {
	n := e.idCounters[typ]
	for {
		candidate := typ + "___" + strconv.Itoa(n)
		if _, exists := e.Store.ByID(candidate); !exists {
			e.idCounters[typ] = n + 1
			return candidate
		}
		n++
	}
}

// sanitizeID strips apostrophes (§4.3 step 5).
func sanitizeID(id string) string {
	return strings.ReplaceAll(id, "'", "")
}

// canCoalesce reports whether a second line sharing existing's ID is a new
// segment of the same multi-line feature (§4.3 step 7): existing's type
// must be declared multiline, and (seq_name, type, strand, Parent) must all
// match.
func (e *Engine) canCoalesce(existing *Node, f *Fields, typ string, resolvedParent *Node) bool {
	if !e.Config.isMultiline(typ) {
		return false
	}
	if existing.Type != typ {
		return false
	}
	if existing.SeqName != f.SeqName {
		return false
	}
	if existing.Strand != f.Strand {
		return false
	}
	existingParentVal, _ := existing.Attributes.Get("Parent")
	newParentVal, _ := f.Attributes.Get("Parent")
	return existingParentVal.Joined() == newParentVal.Joined()
}
